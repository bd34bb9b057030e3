package interfaces

// IEventBroadcaster pushes domain events to every currently connected
// realtime client after a committed mutation.
//
// Broadcast is fire-and-forget: it never fails the originating request, no
// event is persisted or replayed, and a client connecting later simply never
// sees it.
type IEventBroadcaster interface {
	Broadcast(event string, data any)
}

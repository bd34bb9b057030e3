package interfaces

import "context"

// ISequenceRepository hands out monotonically increasing sequence numbers
// per key. Order numbering uses the YYYY-MM month as the key, so sequences
// restart at 1 every month.
//
// Next must be atomic at the storage layer: two concurrent calls with the
// same key must never observe the same number.
type ISequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}

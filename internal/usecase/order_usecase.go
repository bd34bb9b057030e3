package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/domain/pricing"
	"cistilnica/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrderID       = errors.New("invalid order id")
	ErrInvalidStatus        = errors.New("invalid status value")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidPhone         = errors.New("invalid phone")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

var (
	emailRe = regexp.MustCompile(`^.+@.+\..+$`)
	phoneRe = regexp.MustCompile(`^[+\d\s\-().]{6,20}$`)
)

// maxWriteAttempts bounds the optimistic-concurrency retry loop on order
// updates and the order-number reallocation on create.
const maxWriteAttempts = 3

// ItemInput is what a client may submit for a line item: the article
// reference and a quantity. All pricing fields are rebuilt server-side from
// the live catalog; anything else the client sends is discarded.
type ItemInput struct {
	ArticleID string
	Quantity  float64
}

// OrderInput carries the fields accepted on order creation. Status is not
// here on purpose: every order starts at "Naročeno".
type OrderInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	CustomerID    string
	Service       string
	PickupMode    entities.PickupMode
	PaymentMethod entities.PaymentMethod
	CustomerType  entities.CustomerType
	OrderNotes    string
	Items         []ItemInput
}

// OrderUpdate is a typed partial update: nil means "leave the field alone".
// Items, when present, replace the entire previous item list.
type OrderUpdate struct {
	Name          *string
	Service       *string
	Address       *string
	Email         *string
	Phone         *string
	Status        *entities.OrderStatus
	Items         *[]ItemInput
	PaymentMethod *entities.PaymentMethod
	CustomerType  *entities.CustomerType
	PickupMode    *entities.PickupMode
	OrderNotes    *string
}

// IOrderUseCase exposes the order workflow operations.
type IOrderUseCase interface {
	Create(ctx context.Context, in OrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	Update(ctx context.Context, id string, upd OrderUpdate) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]entities.Order, error)
	ListArchive(ctx context.Context) ([]entities.Order, error)
	ListCompleted(ctx context.Context) ([]entities.Order, error)
	ListDelivery(ctx context.Context) ([]entities.Order, error)
}

type OrderUseCase struct {
	repo        interfaces.IOrderRepository
	articles    interfaces.IArticleRepository
	customers   interfaces.ICustomerRepository
	sequences   interfaces.ISequenceRepository
	broadcaster interfaces.IEventBroadcaster
	log         *zap.Logger
	now         func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	articles interfaces.IArticleRepository,
	customers interfaces.ICustomerRepository,
	sequences interfaces.ISequenceRepository,
	broadcaster interfaces.IEventBroadcaster,
	log *zap.Logger,
) *OrderUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderUseCase{
		repo:        repo,
		articles:    articles,
		customers:   customers,
		sequences:   sequences,
		broadcaster: broadcaster,
		log:         log,
		now:         time.Now,
	}
}

// FormatOrderNumber renders the human-readable order number: the YYYY-MM
// month prefix plus a zero-padded 3-digit sequence.
func FormatOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("%s-%03d", t.Format("2006-01"), seq)
}

func (u *OrderUseCase) Create(ctx context.Context, in OrderInput) (entities.Order, error) {
	if err := validateContact(in.Email, in.Phone); err != nil {
		return entities.Order{}, err
	}

	items, newArticleIDs, err := u.resolveItems(ctx, in.Items, nil)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.now().UTC()
	order := entities.Order{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Email:         normalizeEmail(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		CustomerID:    strings.TrimSpace(in.CustomerID),
		Service:       strings.TrimSpace(in.Service),
		PickupMode:    defaultPickupMode(in.PickupMode),
		PaymentMethod: defaultPaymentMethod(in.PaymentMethod),
		CustomerType:  defaultCustomerType(in.CustomerType),
		Status:        entities.OrderStatusNaroceno,
		StatusHistory: []entities.StatusChange{{Status: entities.OrderStatusNaroceno, Timestamp: now}},
		Items:         items,
		OrderNotes:    strings.TrimSpace(in.OrderNotes),
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.createWithNumber(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}

	if created.CustomerID != "" {
		if err := u.customers.IncrementUsage(ctx, created.CustomerID); err != nil {
			u.log.Warn("customer usage bump failed",
				zap.String("customer_id", created.CustomerID), zap.Error(err))
		}
	}
	u.bumpArticleUsage(ctx, newArticleIDs)

	u.broadcaster.Broadcast("orderCreated", created)
	return created, nil
}

// createWithNumber allocates an order number from the month sequence and
// inserts. The sequence is an atomic storage-layer counter, so two creates in
// the same millisecond still get distinct numbers; the reallocation loop only
// matters if an operator ever resets the counter behind our back.
func (u *OrderUseCase) createWithNumber(ctx context.Context, order entities.Order) (entities.Order, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		seq, err := u.sequences.Next(ctx, order.CreatedAt.Format("2006-01"))
		if err != nil {
			return entities.Order{}, err
		}
		order.OrderNumber = FormatOrderNumber(order.CreatedAt, seq)

		created, err := u.repo.Create(ctx, order)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, interfaces.ErrAlreadyExists) {
			return entities.Order{}, err
		}
		u.log.Warn("order number collision, reallocating",
			zap.String("order_number", order.OrderNumber))
	}
	return entities.Order{}, ErrDuplicateOrderNumber
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) Update(ctx context.Context, id string, upd OrderUpdate) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}
	if upd.Email != nil || upd.Phone != nil {
		email, phone := "", ""
		if upd.Email != nil {
			email = *upd.Email
		}
		if upd.Phone != nil {
			phone = *upd.Phone
		}
		if err := validateContact(email, phone); err != nil {
			return entities.Order{}, err
		}
	}

	var updated entities.Order
	var newArticleIDs []string
	for attempt := 0; ; attempt++ {
		order, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return entities.Order{}, err
		}
		if order.ID == "" {
			return entities.Order{}, ErrOrderNotFound
		}

		if upd.Items != nil {
			items, newIDs, err := u.resolveItems(ctx, *upd.Items, order.Items)
			if err != nil {
				return entities.Order{}, err
			}
			order.Items = items
			newArticleIDs = newIDs
		}

		applyScalarFields(&order, upd)

		now := u.now().UTC()
		if upd.Status != nil && *upd.Status != order.Status {
			order.StatusHistory = append(order.StatusHistory, entities.StatusChange{
				Status:    *upd.Status,
				Timestamp: now,
			})
			order.Status = *upd.Status
		}
		order.UpdatedAt = now

		updated, err = u.repo.Update(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, interfaces.ErrVersionConflict) || attempt+1 >= maxWriteAttempts {
			return entities.Order{}, err
		}
		u.log.Debug("order update conflict, retrying", zap.String("order_id", id))
	}
	// A zero order means the document vanished between the read and the
	// conditional put (concurrent delete), not a successful write.
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	u.bumpArticleUsage(ctx, newArticleIDs)

	u.broadcaster.Broadcast("orderUpdated", updated)
	return updated, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	if !status.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}
	return u.Update(ctx, id, OrderUpdate{Status: &status})
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}
	u.broadcaster.Broadcast("orderDeleted", map[string]string{"id": id})
	return nil
}

// ListActive returns orders still in the shop: everything except handed-off
// and finished ones.
func (u *OrderUseCase) ListActive(ctx context.Context) ([]entities.Order, error) {
	return u.repo.List(ctx, interfaces.OrderFilter{
		ExcludeStatuses: []entities.OrderStatus{entities.OrderStatusOddano, entities.OrderStatusKoncano},
	})
}

func (u *OrderUseCase) ListArchive(ctx context.Context) ([]entities.Order, error) {
	return u.repo.List(ctx, interfaces.OrderFilter{
		Statuses: []entities.OrderStatus{entities.OrderStatusOddano},
	})
}

func (u *OrderUseCase) ListCompleted(ctx context.Context) ([]entities.Order, error) {
	return u.repo.List(ctx, interfaces.OrderFilter{
		Statuses: []entities.OrderStatus{entities.OrderStatusKoncano, entities.OrderStatusOddano},
	})
}

func (u *OrderUseCase) ListDelivery(ctx context.Context) ([]entities.Order, error) {
	return u.repo.List(ctx, interfaces.OrderFilter{
		PickupMode:      entities.PickupModeDelivery,
		ExcludeStatuses: []entities.OrderStatus{entities.OrderStatusOddano},
	})
}

// resolveItems rebuilds the line-item list from the live catalog. Entries
// whose article is gone are dropped without error, matching how the shop
// works: stale rows in a resubmitted form simply vanish.
//
// The second return value lists article ids that are newly referenced with a
// nonzero quantity compared to prev, so the caller can bump usage counters
// exactly once per order.
func (u *OrderUseCase) resolveItems(ctx context.Context, inputs []ItemInput, prev []entities.OrderItem) ([]entities.OrderItem, []string, error) {
	prevNonzero := make(map[string]bool, len(prev))
	for _, it := range prev {
		if it.Quantity > 0 {
			prevNonzero[it.ArticleID] = true
		}
	}

	items := make([]entities.OrderItem, 0, len(inputs))
	var newIDs []string
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		articleID := strings.TrimSpace(in.ArticleID)
		if articleID == "" {
			continue
		}
		art, err := u.articles.GetByID(ctx, articleID)
		if err != nil {
			return nil, nil, err
		}
		if art.ID == "" {
			continue
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, entities.OrderItem{
			ArticleID:  art.ID,
			Name:       art.Name,
			Unit:       art.Unit,
			Price:      art.Price,
			VATPercent: art.VATPercent,
			FinalPrice: art.FinalPrice,
			Quantity:   qty,
			LineTotal:  pricing.LineTotal(art.FinalPrice, qty),
		})
		if qty > 0 && !prevNonzero[art.ID] && !seen[art.ID] {
			newIDs = append(newIDs, art.ID)
			seen[art.ID] = true
		}
	}
	return items, newIDs, nil
}

func (u *OrderUseCase) bumpArticleUsage(ctx context.Context, articleIDs []string) {
	for _, id := range articleIDs {
		if err := u.articles.IncrementUsage(ctx, id); err != nil {
			u.log.Warn("article usage bump failed", zap.String("article_id", id), zap.Error(err))
		}
	}
}

func applyScalarFields(order *entities.Order, upd OrderUpdate) {
	if upd.Name != nil {
		order.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Service != nil {
		order.Service = strings.TrimSpace(*upd.Service)
	}
	if upd.Address != nil {
		order.Address = strings.TrimSpace(*upd.Address)
	}
	if upd.Email != nil {
		order.Email = normalizeEmail(*upd.Email)
	}
	if upd.Phone != nil {
		order.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.PaymentMethod != nil {
		order.PaymentMethod = *upd.PaymentMethod
	}
	if upd.CustomerType != nil {
		order.CustomerType = *upd.CustomerType
	}
	if upd.PickupMode != nil {
		order.PickupMode = *upd.PickupMode
	}
	if upd.OrderNotes != nil {
		order.OrderNotes = strings.TrimSpace(*upd.OrderNotes)
	}
}

// validateContact checks email and phone shape, but only when the field is
// set at all. Empty contact fields are allowed everywhere.
func validateContact(email, phone string) error {
	if e := strings.TrimSpace(email); e != "" && !emailRe.MatchString(e) {
		return ErrInvalidEmail
	}
	if p := strings.TrimSpace(phone); p != "" && !phoneRe.MatchString(p) {
		return ErrInvalidPhone
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultPickupMode(m entities.PickupMode) entities.PickupMode {
	if m == "" {
		return entities.PickupModePersonal
	}
	return m
}

func defaultPaymentMethod(m entities.PaymentMethod) entities.PaymentMethod {
	if m == "" {
		return entities.PaymentMethodCash
	}
	return m
}

func defaultCustomerType(t entities.CustomerType) entities.CustomerType {
	if t == "" {
		return entities.CustomerTypePhysical
	}
	return t
}

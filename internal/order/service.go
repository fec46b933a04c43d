package order

import (
	"context"
	"strings"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/cart"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/metrics"
	"vyaha-be/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CouponNotice is returned when a coupon code accompanies checkout.
const CouponNotice = "coupon discounts are shown in the cart only and were not deducted from this order"

// CartSource resolves a customer's cart against current product state.
type CartSource interface {
	Resolve(ctx context.Context, userID string) (*cart.Cart, []cart.Item, error)
}

type Service interface {
	Create(ctx context.Context, actor auth.Identity, params CreateOrderParams) (*CreateResult, error)
	ListOwn(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error)
	GetByID(ctx context.Context, actor auth.Identity, orderID string) (*Order, error)
	ListAll(ctx context.Context, actor auth.Identity, opts ListOptions) (*ListResult, error)
	ListForSeller(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error)
	UpdateStatus(ctx context.Context, actor auth.Identity, orderID string, status Status) (*Order, error)
}

type service struct {
	repo   Repository
	carts  CartSource
	policy pricing.Policy
	now    func() time.Time
}

func NewService(repo Repository, carts CartSource, policy pricing.Policy) Service {
	return &service{
		repo:   repo,
		carts:  carts,
		policy: policy,
		now:    time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, params CreateOrderParams) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)
	timer := metrics.StartTimer()

	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}

	// 1. Input
	if err := params.ShippingAddress.Validate(); err != nil {
		log.Warn("rejected incomplete shipping address", zap.Error(err))
		return nil, err
	}
	method, err := ParsePaymentMethod(params.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// 2. Cart, filtered to approved products
	c, items, err := s.carts.Resolve(ctx, actor.UserID)
	if err != nil {
		log.Error("failed to resolve cart", zap.Error(err))
		return nil, err
	}
	if c.Empty() {
		return nil, ErrCartEmpty
	}
	if len(items) == 0 {
		log.Info("cart holds no purchasable products", zap.Int("lines", len(c.Lines)))
		return nil, ErrNoValidProducts
	}

	// 3. Snapshot and price
	totals := s.policy.Totals(cart.Subtotal(items))

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          actor.UserID,
		Items:           snapshot(items),
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.ShippingFee,
		Tax:             totals.Tax,
		Total:           totals.Total,
		PaymentMethod:   method,
		Status:          StatusPending,
		ShippingAddress: trimAddress(params.ShippingAddress),
	}

	// 4. Persist and clear cart atomically
	if err := s.repo.Create(ctx, o, c.ID, c.Version); err != nil {
		return nil, err
	}

	metrics.Default.OrdersPlaced.Inc()
	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(pricing.MoneyScale)),
		zap.Int("items", len(o.Items)),
		zap.Duration("duration", timer.Stop(&metrics.Default.Checkout)),
	)

	res := &CreateResult{Order: o}
	if strings.TrimSpace(params.Coupon) != "" {
		log.Warn("coupon supplied at checkout was not applied", zap.String("order_id", o.ID))
		res.Notice = CouponNotice
	}
	return res, nil
}

func (s *service) ListOwn(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}
	return s.list(ctx, ListOptions{UserID: actor.UserID, Limit: limit, Offset: offset})
}

// GetByID hides other customers' orders as not found.
func (s *service) GetByID(ctx context.Context, actor auth.Identity, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	switch actor.Role {
	case auth.RoleAdmin:
		return o, nil
	case auth.RoleSeller:
		if o.HasSeller(actor.UserID) {
			return o, nil
		}
	case auth.RoleCustomer:
		if o.UserID == actor.UserID {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *service) ListAll(ctx context.Context, actor auth.Identity, opts ListOptions) (*ListResult, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.list(ctx, opts)
}

func (s *service) ListForSeller(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error) {
	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}
	return s.list(ctx, ListOptions{SellerID: actor.UserID, Limit: limit, Offset: offset})
}

func (s *service) UpdateStatus(ctx context.Context, actor auth.Identity, orderID string, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	if actor.Role != auth.RoleAdmin && actor.Role != auth.RoleSeller {
		return nil, ErrFulfillmentRole
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if actor.Role == auth.RoleSeller && !o.HasSeller(actor.UserID) {
		log.Warn("seller attempted to update foreign order")
		return nil, ErrNotSellerOrder
	}

	if !o.Status.CanTransitionTo(status) {
		log.Info("rejected order transition", zap.String("from", string(o.Status)))
		return nil, ErrInvalidTransition
	}

	var deliveredAt *time.Time
	if status == StatusDelivered {
		now := s.now()
		deliveredAt = &now
	}

	from := o.Status
	if err := s.repo.UpdateStatus(ctx, o, status, deliveredAt); err != nil {
		log.Warn("order status update failed", zap.Error(err))
		return nil, err
	}

	switch status {
	case StatusDelivered:
		metrics.Default.OrdersDelivered.Inc()
	case StatusCancelled:
		metrics.Default.OrdersCancelled.Inc()
	}
	log.Info("order status updated", zap.String("from", string(from)), zap.String("by_role", string(actor.Role)))

	return o, nil
}

func (s *service) list(ctx context.Context, opts ListOptions) (*ListResult, error) {
	orders, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: orders, TotalCount: total}, nil
}

func snapshot(items []cart.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{
			ProductID: it.ProductID,
			SellerID:  it.SellerID,
			Title:     it.Title,
			Image:     it.Image,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		})
	}
	return out
}

func trimAddress(a ShippingAddress) ShippingAddress {
	return ShippingAddress{
		FullName: strings.TrimSpace(a.FullName),
		Phone:    strings.TrimSpace(a.Phone),
		Street:   strings.TrimSpace(a.Street),
		City:     strings.TrimSpace(a.City),
		State:    strings.TrimSpace(a.State),
		Zip:      strings.TrimSpace(a.Zip),
	}
}

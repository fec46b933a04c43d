package cart

import (
	"context"
	"strings"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/metrics"
	"vyaha-be/internal/pricing"
	"vyaha-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductReader is the slice of the product store the cart depends on.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, actor auth.Identity, coupon string) (*Summary, error)
	Add(ctx context.Context, actor auth.Identity, productID string, quantity int) (*Summary, error)
	UpdateQuantity(ctx context.Context, actor auth.Identity, productID string, quantity int) (*Summary, error)
	Remove(ctx context.Context, actor auth.Identity, productID string) (*Summary, error)
	Clear(ctx context.Context, actor auth.Identity) error

	// Resolve loads the stored cart and its currently purchasable items.
	Resolve(ctx context.Context, userID string) (*Cart, []Item, error)
}

type service struct {
	repo     Repository
	products ProductReader
	policy   pricing.Policy
	now      func() time.Time
}

func NewService(repo Repository, products ProductReader, policy pricing.Policy) Service {
	return &service{
		repo:     repo,
		products: products,
		policy:   policy,
		now:      time.Now,
	}
}

func (s *service) Get(ctx context.Context, actor auth.Identity, coupon string) (*Summary, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}

	_, items, err := s.Resolve(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.summarize(items, coupon), nil
}

func (s *service) Add(ctx context.Context, actor auth.Identity, productID string, quantity int) (*Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > MaxLineQuantity {
		return nil, ErrQuantityTooLarge
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if !p.Purchasable() {
		log.Info("rejected add of unavailable product", zap.String("status", string(p.Status)))
		return nil, ErrProductUnavailable
	}

	c, err := s.load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := c.Add(productID, quantity, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	metrics.Default.CartAdds.Inc()
	log.Info("cart line added")

	return s.summary(ctx, c)
}

func (s *service) UpdateQuantity(ctx context.Context, actor auth.Identity, productID string, quantity int) (*Summary, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.repo.GetByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartItemNotFound
	}

	if err := c.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.summary(ctx, c)
}

// Remove is idempotent: a missing line or missing cart is not an error.
func (s *service) Remove(ctx context.Context, actor auth.Identity, productID string) (*Summary, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, ErrCustomerOnly
	}

	c, err := s.load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if c.Remove(productID) {
		if err := s.repo.Save(ctx, c); err != nil {
			return nil, err
		}
	}

	return s.summary(ctx, c)
}

func (s *service) Clear(ctx context.Context, actor auth.Identity) error {
	if actor.Role != auth.RoleCustomer {
		return ErrCustomerOnly
	}

	c, err := s.repo.GetByUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if c == nil || !c.Clear() {
		return nil
	}

	return s.repo.Save(ctx, c)
}

// Resolve returns nil cart and no items when the customer has no cart yet.
// Lines whose product is gone or no longer approved are left out silently.
func (s *service) Resolve(ctx context.Context, userID string) (*Cart, []Item, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if c.Empty() {
		return c, []Item{}, nil
	}

	items, err := s.resolveItems(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return c, items, nil
}

func (s *service) resolveItems(ctx context.Context, c *Cart) ([]Item, error) {
	products, err := s.products.GetByIDs(ctx, c.ProductIDs())
	if err != nil {
		logger.FromCtx(ctx).Error("failed to resolve cart products", zap.Error(err))
		return nil, err
	}

	items := make([]Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		p := products[l.ProductID]
		if !p.Purchasable() {
			continue
		}

		item := Item{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Quantity:  l.Quantity,
			LineTotal: pricing.Line{UnitPrice: p.Price, Quantity: l.Quantity}.Amount(),
			AddedAt:   l.AddedAt,
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) summary(ctx context.Context, c *Cart) (*Summary, error) {
	if c.Empty() {
		return s.summarize([]Item{}, ""), nil
	}

	items, err := s.resolveItems(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.summarize(items, ""), nil
}

func (s *service) summarize(items []Item, coupon string) *Summary {
	if len(items) == 0 {
		zero := decimal.Zero
		return &Summary{Items: items, CartSummary: pricing.CartSummary{
			Subtotal: zero, ShippingFee: zero, Discount: zero, Total: zero,
		}}
	}
	return &Summary{
		Items:       items,
		CartSummary: s.policy.Summarize(Subtotal(items), coupon),
	}
}

// load returns the stored cart, or a fresh unsaved one for first use.
func (s *service) load(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &Cart{UserID: userID}
	}
	return c, nil
}

// Subtotal sums resolved items; the order compiler uses the same figure.
func Subtotal(items []Item) decimal.Decimal {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return pricing.Subtotal(lines)
}

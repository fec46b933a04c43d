package product

import (
	"context"
	"strings"

	"vyaha-be/internal/apperror"
	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// seller
	Create(ctx context.Context, actor auth.Identity, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, actor auth.Identity, productID string, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, actor auth.Identity, productID string) error
	ListBySeller(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error)

	// admin
	ListPending(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error)
	List(ctx context.Context, actor auth.Identity, opts ListOptions) (*ListResult, error)
	SetStatus(ctx context.Context, actor auth.Identity, productID string, status Status) (*Product, error)

	// catalog
	ListApproved(ctx context.Context, opts ListOptions) (*ListResult, error)
	GetApproved(ctx context.Context, productID string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}

	if params.Quantity == 0 {
		params.Quantity = 1
	}
	params.Title = strings.TrimSpace(params.Title)
	params.Images = cleanImages(params.Images)

	if err := validateContent(params.Title, params, true); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	// Status is always pending on creation, whatever the client sent.
	p := &Product{
		ID:          uuid.NewString(),
		SellerID:    actor.UserID,
		Title:       params.Title,
		Description: params.Description,
		Price:       *params.Price,
		Category:    strings.TrimSpace(params.Category),
		Images:      params.Images,
		Quantity:    params.Quantity,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	metrics.Default.ProductsSubmitted.Inc()
	log.Info("product submitted for review", zap.String("product_id", p.ID))

	return p, nil
}

func (s *service) Update(
	ctx context.Context,
	actor auth.Identity,
	productID string,
	params UpdateProductParams,
) (*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", productID),
	)

	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}
	if params.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	p, err := s.ownedProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		trimmed := strings.TrimSpace(*params.Title)
		params.Title = &trimmed
	}
	if params.Images != nil {
		params.Images = cleanImages(params.Images)
	}

	previous := p.Status
	p.applyEdit(params)

	if err := validateContent(p.Title, CreateProductParams{
		Price:    &p.Price,
		Images:   p.Images,
		Quantity: p.Quantity,
	}, false); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product edited and resubmitted",
		zap.String("previous_status", string(previous)),
		zap.Int("version", p.Version),
	)

	return p, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Identity, productID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", productID),
	)

	switch actor.Role {
	case auth.RoleSeller:
		if _, err := s.ownedProduct(ctx, actor, productID); err != nil {
			return err
		}
	case auth.RoleAdmin:
	default:
		return ErrSellerOnly
	}

	deleted, err := s.repo.Delete(ctx, productID)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}

	log.Info("product deleted", zap.String("by_role", string(actor.Role)))
	return nil
}

func (s *service) ListBySeller(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error) {
	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}

	items, total, err := s.repo.List(ctx, ListOptions{SellerID: actor.UserID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, TotalCount: total}, nil
}

func (s *service) ListPending(ctx context.Context, actor auth.Identity, limit, offset int) (*ListResult, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, ErrAdminOnly
	}

	pending := StatusPending
	items, total, err := s.repo.List(ctx, ListOptions{Status: &pending, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, TotalCount: total}, nil
}

func (s *service) List(ctx context.Context, actor auth.Identity, opts ListOptions) (*ListResult, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, apperror.Validation("invalid product filter", map[string]string{"status": "unknown status"})
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, TotalCount: total}, nil
}

// SetStatus is the admin review transition. Any current state may move to
// approved or rejected, which lets an admin correct a decision directly.
func (s *service) SetStatus(
	ctx context.Context,
	actor auth.Identity,
	productID string,
	status Status,
) (*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetProductStatus"),
		zap.String("product_id", productID),
		zap.String("status", string(status)),
	)

	if actor.Role != auth.RoleAdmin {
		log.Warn("non-admin attempted product review", zap.String("role", string(actor.Role)))
		return nil, ErrAdminOnly
	}
	if !status.IsReviewOutcome() {
		return nil, ErrInvalidStatus
	}

	p, err := s.repo.UpdateStatus(ctx, productID, status)
	if err != nil {
		log.Error("failed to update product status", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if status == StatusApproved {
		metrics.Default.ProductsApproved.Inc()
	} else {
		metrics.Default.ProductsRejected.Inc()
	}
	log.Info("product reviewed")

	return p, nil
}

func (s *service) ListApproved(ctx context.Context, opts ListOptions) (*ListResult, error) {
	approved := StatusApproved
	opts.Status = &approved
	opts.SellerID = ""

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, TotalCount: total}, nil
}

func (s *service) GetApproved(ctx context.Context, productID string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Purchasable() {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) ownedProduct(ctx context.Context, actor auth.Identity, productID string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.SellerID != actor.UserID {
		logger.FromCtx(ctx).Warn("seller does not own product",
			zap.String("product_id", productID),
			zap.String("owner_id", p.SellerID),
		)
		return nil, ErrNotOwner
	}
	return p, nil
}

func validateContent(title string, params CreateProductParams, creating bool) error {
	fields := map[string]string{}

	if title == "" {
		fields["title"] = "required"
	}
	switch {
	case params.Price == nil:
		fields["price"] = "required"
	case params.Price.IsNegative():
		fields["price"] = "must not be negative"
	}
	if params.Quantity < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if len(params.Images) == 0 {
		fields["images"] = "at least one image is required"
	}

	if len(fields) == 0 {
		return nil
	}

	msg := "invalid product update"
	if creating {
		msg = "invalid product"
	}
	return apperror.Validation(msg, fields)
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

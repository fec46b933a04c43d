package handler

import (
	"context"
	"io"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/cart"
	"vyaha-be/internal/category"
	"vyaha-be/internal/order"
	"vyaha-be/internal/product"
	"vyaha-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) SignUp(ctx context.Context, params user.SignUpParams) (*user.User, error) {
	args := m.Called(ctx, params)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserService) VerifyOTP(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockUserService) ResendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) SignIn(ctx context.Context, email, password string, role auth.Role) (string, *user.User, error) {
	args := m.Called(ctx, email, password, role)
	u, _ := args.Get(1).(*user.User)
	return args.String(0), u, args.Error(2)
}

func (m *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

func (m *MockUserService) GetSellerProfile(ctx context.Context, actor auth.Identity) (*user.SellerProfile, error) {
	args := m.Called(ctx, actor)
	p, _ := args.Get(0).(*user.SellerProfile)
	return p, args.Error(1)
}

func (m *MockUserService) UpdateSellerProfile(ctx context.Context, actor auth.Identity, params user.UpdateProfileParams) (*user.SellerProfile, error) {
	args := m.Called(ctx, actor, params)
	p, _ := args.Get(0).(*user.SellerProfile)
	return p, args.Error(1)
}

func (m *MockUserService) SeedAdmin(ctx context.Context, name, email, password string) (*user.User, bool, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Bool(1), args.Error(2)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) Create(ctx context.Context, actor auth.Identity, params product.CreateProductParams) (*product.Product, error) {
	args := m.Called(ctx, actor, params)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, actor auth.Identity, productID string, params product.UpdateProductParams) (*product.Product, error) {
	args := m.Called(ctx, actor, productID, params)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, actor auth.Identity, productID string) error {
	return m.Called(ctx, actor, productID).Error(0)
}

func (m *MockProductService) ListBySeller(ctx context.Context, actor auth.Identity, limit, offset int) (*product.ListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	r, _ := args.Get(0).(*product.ListResult)
	return r, args.Error(1)
}

func (m *MockProductService) ListPending(ctx context.Context, actor auth.Identity, limit, offset int) (*product.ListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	r, _ := args.Get(0).(*product.ListResult)
	return r, args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, actor auth.Identity, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, actor, opts)
	r, _ := args.Get(0).(*product.ListResult)
	return r, args.Error(1)
}

func (m *MockProductService) SetStatus(ctx context.Context, actor auth.Identity, productID string, status product.Status) (*product.Product, error) {
	args := m.Called(ctx, actor, productID, status)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductService) ListApproved(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	r, _ := args.Get(0).(*product.ListResult)
	return r, args.Error(1)
}

func (m *MockProductService) GetApproved(ctx context.Context, productID string) (*product.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context, filter string, limit, offset int) ([]*category.Category, error) {
	args := m.Called(ctx, filter, limit, offset)
	c, _ := args.Get(0).([]*category.Category)
	return c, args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Get(ctx context.Context, actor auth.Identity, coupon string) (*cart.Summary, error) {
	args := m.Called(ctx, actor, coupon)
	s, _ := args.Get(0).(*cart.Summary)
	return s, args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, actor auth.Identity, productID string, quantity int) (*cart.Summary, error) {
	args := m.Called(ctx, actor, productID, quantity)
	s, _ := args.Get(0).(*cart.Summary)
	return s, args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, actor auth.Identity, productID string, quantity int) (*cart.Summary, error) {
	args := m.Called(ctx, actor, productID, quantity)
	s, _ := args.Get(0).(*cart.Summary)
	return s, args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, actor auth.Identity, productID string) (*cart.Summary, error) {
	args := m.Called(ctx, actor, productID)
	s, _ := args.Get(0).(*cart.Summary)
	return s, args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, actor auth.Identity) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockCartService) Resolve(ctx context.Context, userID string) (*cart.Cart, []cart.Item, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*cart.Cart)
	items, _ := args.Get(1).([]cart.Item)
	return c, items, args.Error(2)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Create(ctx context.Context, actor auth.Identity, params order.CreateOrderParams) (*order.CreateResult, error) {
	args := m.Called(ctx, actor, params)
	r, _ := args.Get(0).(*order.CreateResult)
	return r, args.Error(1)
}

func (m *MockOrderService) ListOwn(ctx context.Context, actor auth.Identity, limit, offset int) (*order.ListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	r, _ := args.Get(0).(*order.ListResult)
	return r, args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, actor auth.Identity, orderID string) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context, actor auth.Identity, opts order.ListOptions) (*order.ListResult, error) {
	args := m.Called(ctx, actor, opts)
	r, _ := args.Get(0).(*order.ListResult)
	return r, args.Error(1)
}

func (m *MockOrderService) ListForSeller(ctx context.Context, actor auth.Identity, limit, offset int) (*order.ListResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	r, _ := args.Get(0).(*order.ListResult)
	return r, args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, actor auth.Identity, orderID string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, actor, orderID, status)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockExporter struct{ mock.Mock }

func (m *MockExporter) ExportProducts(ctx context.Context, actor auth.Identity, status *product.Status, w io.Writer) error {
	args := m.Called(ctx, actor, status, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("xlsx-products"))
	return err
}

func (m *MockExporter) ExportOrders(ctx context.Context, actor auth.Identity, status *order.Status, w io.Writer) error {
	args := m.Called(ctx, actor, status, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("xlsx-orders"))
	return err
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Create(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).(map[string]*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) UpdateStatus(ctx context.Context, id string, status product.Status) (*product.Product, error) {
	args := m.Called(ctx, id, status)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, int, error) {
	args := m.Called(ctx, opts)
	p, _ := args.Get(0).([]*product.Product)
	return p, args.Int(1), args.Error(2)
}

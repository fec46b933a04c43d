package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vyaha-be/internal/apperror"
	"vyaha-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User, profile *SellerProfile) error {
	args := m.Called(ctx, u, profile)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return m.Called(ctx, userID, code, expiresAt).Error(0)
}

func (m *MockRepository) MarkVerified(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRepository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return m.Called(ctx, userID, token, expiresAt).Error(0)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockRepository) GetSellerProfile(ctx context.Context, userID string) (*SellerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SellerProfile), args.Error(1)
}

func (m *MockRepository) UpdateSellerProfile(ctx context.Context, params UpdateProfileParams) (*SellerProfile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SellerProfile), args.Error(1)
}

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Generate(id auth.Identity) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

// --- Fixtures ---

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*service, *MockRepository, *MockIssuer, *MockNotifier) {
	repo := new(MockRepository)
	issuer := new(MockIssuer)
	n := new(MockNotifier)

	svc := NewService(repo, issuer, n, Options{ClientURL: "https://shop.test/"}).(*service)
	svc.now = func() time.Time { return now }
	svc.otp = func() (string, error) { return "123456", nil }
	svc.newToken = func() string { return "reset-tok" }
	return svc, repo, issuer, n
}

func verifiedUser(t *testing.T, role auth.Role, password string) *User {
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &User{ID: "u1", Email: "asha@shop.test", PasswordHash: hash, Role: role, Verified: true}
}

func TestService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("CustomerGetsOTP", func(t *testing.T) {
		svc, repo, _, n := newTestService()

		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "asha@shop.test" && !u.Verified && *u.OTPCode == "123456" &&
				u.OTPExpiresAt.Equal(now.Add(10*time.Minute)) && u.PasswordHash != "secret1"
		}), (*SellerProfile)(nil)).Return(nil)
		n.On("Send", ctx, "asha@shop.test", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "123456")
		})).Return(nil)

		u, err := svc.SignUp(ctx, SignUpParams{Name: "Asha", Email: " Asha@Shop.test ", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleCustomer, u.Role)
		repo.AssertExpectations(t)
		n.AssertExpectations(t)
	})

	t.Run("NotifierFailureIsNotFatal", func(t *testing.T) {
		svc, repo, _, n := newTestService()

		repo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
		n.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := svc.SignUp(ctx, SignUpParams{Name: "Asha", Email: "a@shop.test", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("SellerNeedsStore", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.SignUp(ctx, SignUpParams{Name: "S", Email: "s@shop.test", Password: "secret1", Role: auth.RoleSeller})
		assert.ErrorIs(t, err, ErrMissingStoreName)
	})

	t.Run("SellerProfileCreated", func(t *testing.T) {
		svc, repo, _, n := newTestService()

		repo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *SellerProfile) bool {
			return p != nil && p.StoreName == "Acme"
		})).Return(nil)
		n.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.SignUp(ctx, SignUpParams{Name: "S", Email: "s@shop.test", Password: "secret1", Role: auth.RoleSeller, StoreName: " Acme "})
		require.NoError(t, err)
	})

	t.Run("AdminSignupRejected", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.SignUp(ctx, SignUpParams{Name: "X", Email: "x@shop.test", Password: "secret1", Role: auth.RoleAdmin})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.SignUp(ctx, SignUpParams{Name: "X", Email: "x@shop.test", Password: "12345"})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "password")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, repo, _, n := newTestService()
		repo.On("Create", ctx, mock.Anything, mock.Anything).Return(ErrEmailExists)

		_, err := svc.SignUp(ctx, SignUpParams{Name: "X", Email: "x@shop.test", Password: "secret1"})
		assert.ErrorIs(t, err, ErrEmailExists)
		n.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_VerifyOTP(t *testing.T) {
	ctx := context.Background()
	pending := func(code string, expires time.Time) *User {
		return &User{ID: "u1", Email: "asha@shop.test", OTPCode: &code, OTPExpiresAt: &expires}
	}

	t.Run("Valid", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(pending("123456", now.Add(time.Minute)), nil)
		repo.On("MarkVerified", ctx, "u1").Return(nil)

		assert.NoError(t, svc.VerifyOTP(ctx, "asha@shop.test", "123456"))
		repo.AssertExpectations(t)
	})

	t.Run("WrongCode", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(pending("123456", now.Add(time.Minute)), nil)

		assert.ErrorIs(t, svc.VerifyOTP(ctx, "asha@shop.test", "000000"), ErrInvalidOTP)
	})

	t.Run("Expired", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(pending("123456", now.Add(-time.Second)), nil)

		assert.ErrorIs(t, svc.VerifyOTP(ctx, "asha@shop.test", "123456"), ErrInvalidOTP)
		repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "ghost@shop.test").Return(nil, nil)

		assert.ErrorIs(t, svc.VerifyOTP(ctx, "ghost@shop.test", "123456"), ErrUserNotFound)
	})
}

func TestService_ResendOTP(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, n := newTestService()

	repo.On("FindByEmail", ctx, "asha@shop.test").Return(&User{ID: "u1", Email: "asha@shop.test"}, nil)
	repo.On("SetOTP", ctx, "u1", "123456", now.Add(10*time.Minute)).Return(nil)
	n.On("Send", ctx, "asha@shop.test", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.ResendOTP(ctx, "asha@shop.test"))
	repo.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo, issuer, _ := newTestService()
		u := verifiedUser(t, auth.RoleSeller, "secret1")

		repo.On("FindByEmail", ctx, "asha@shop.test").Return(u, nil)
		issuer.On("Generate", auth.Identity{UserID: "u1", Email: "asha@shop.test", Role: auth.RoleSeller}).Return("jwt-token", nil)

		token, got, err := svc.SignIn(ctx, "asha@shop.test", "secret1", auth.RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", token)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(verifiedUser(t, auth.RoleCustomer, "secret1"), nil)

		_, _, err := svc.SignIn(ctx, "asha@shop.test", "nope", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "ghost@shop.test").Return(nil, nil)

		_, _, err := svc.SignIn(ctx, "ghost@shop.test", "secret1", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unverified", func(t *testing.T) {
		svc, repo, issuer, _ := newTestService()
		u := verifiedUser(t, auth.RoleCustomer, "secret1")
		u.Verified = false
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(u, nil)

		_, _, err := svc.SignIn(ctx, "asha@shop.test", "secret1", "")
		assert.ErrorIs(t, err, ErrNotVerified)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
		issuer.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("RoleMismatch", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "asha@shop.test").Return(verifiedUser(t, auth.RoleCustomer, "secret1"), nil)

		_, _, err := svc.SignIn(ctx, "asha@shop.test", "secret1", auth.RoleAdmin)
		assert.ErrorIs(t, err, ErrRoleMismatch)
	})
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("ForgotSendsLink", func(t *testing.T) {
		svc, repo, _, n := newTestService()

		repo.On("FindByEmail", ctx, "asha@shop.test").Return(&User{ID: "u1", Email: "asha@shop.test"}, nil)
		repo.On("SetResetToken", ctx, "u1", "reset-tok", now.Add(15*time.Minute)).Return(nil)
		n.On("Send", ctx, "asha@shop.test", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "https://shop.test/reset-password/reset-tok")
		})).Return(nil)

		require.NoError(t, svc.ForgotPassword(ctx, "asha@shop.test"))
		n.AssertExpectations(t)
	})

	t.Run("ForgotUnknownEmailIsSilent", func(t *testing.T) {
		svc, repo, _, n := newTestService()
		repo.On("FindByEmail", ctx, "ghost@shop.test").Return(nil, nil)

		require.NoError(t, svc.ForgotPassword(ctx, "ghost@shop.test"))
		n.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ResetWithValidToken", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		exp := now.Add(time.Minute)

		repo.On("FindByResetToken", ctx, "reset-tok").Return(&User{ID: "u1", ResetTokenExpiresAt: &exp}, nil)
		repo.On("UpdatePassword", ctx, "u1", mock.MatchedBy(func(hash string) bool {
			return auth.CheckPasswordHash("newsecret", hash)
		})).Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, "reset-tok", "newsecret"))
		repo.AssertExpectations(t)
	})

	t.Run("ResetExpired", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		exp := now.Add(-time.Minute)
		repo.On("FindByResetToken", ctx, "reset-tok").Return(&User{ID: "u1", ResetTokenExpiresAt: &exp}, nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "newsecret"), ErrInvalidReset)
	})

	t.Run("ResetShortPassword", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		assert.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "123"), ErrWeakPassword)
	})
}

func TestService_SellerProfile(t *testing.T) {
	ctx := context.Background()
	seller := auth.Identity{UserID: "s1", Role: auth.RoleSeller}

	t.Run("UpdateScopesToActor", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		phone := "555"

		repo.On("UpdateSellerProfile", ctx, UpdateProfileParams{UserID: "s1", Phone: &phone}).
			Return(&SellerProfile{UserID: "s1", Phone: "555"}, nil)

		p, err := svc.UpdateSellerProfile(ctx, seller, UpdateProfileParams{UserID: "someone-else", Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "555", p.Phone)
	})

	t.Run("BlankStoreName", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		blank := " "

		_, err := svc.UpdateSellerProfile(ctx, seller, UpdateProfileParams{StoreName: &blank})
		assert.ErrorIs(t, err, ErrMissingStoreName)
	})

	t.Run("CustomerHasNoProfile", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.GetSellerProfile(ctx, auth.Identity{UserID: "c1", Role: auth.RoleCustomer})
		assert.ErrorIs(t, err, ErrSellerOnly)
	})
}

func TestService_SeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "admin@shop.test").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Role == auth.RoleAdmin && u.Verified
		}), (*SellerProfile)(nil)).Return(nil)

		u, created, err := svc.SeedAdmin(ctx, "Admin", "Admin@Shop.test", "admin123")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "admin@shop.test", u.Email)
	})

	t.Run("Existing", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("FindByEmail", ctx, "admin@shop.test").Return(&User{ID: "a1", Role: auth.RoleAdmin}, nil)

		u, created, err := svc.SeedAdmin(ctx, "Admin", "admin@shop.test", "admin123")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "a1", u.ID)
	})
}

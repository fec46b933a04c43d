package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/metrics"
	"vyaha-be/internal/notifier"
	"vyaha-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type TokenIssuer interface {
	Generate(id auth.Identity) (string, error)
}

type Options struct {
	OTPTTL    time.Duration
	ResetTTL  time.Duration
	ClientURL string
}

type Service interface {
	SignUp(ctx context.Context, params SignUpParams) (*User, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string, role auth.Role) (string, *User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error

	GetSellerProfile(ctx context.Context, actor auth.Identity) (*SellerProfile, error)
	UpdateSellerProfile(ctx context.Context, actor auth.Identity, params UpdateProfileParams) (*SellerProfile, error)

	// SeedAdmin creates a verified admin unless the email is taken.
	SeedAdmin(ctx context.Context, name, email, password string) (*User, bool, error)
}

type service struct {
	repo     Repository
	tokens   TokenIssuer
	notifier notifier.Notifier
	opts     Options

	now      func() time.Time
	otp      func() (string, error)
	newToken func() string
}

func NewService(repo Repository, tokens TokenIssuer, n notifier.Notifier, opts Options) Service {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = 15 * time.Minute
	}

	return &service{
		repo:     repo,
		tokens:   tokens,
		notifier: n,
		opts:     opts,
		now:      time.Now,
		otp:      generateOTP,
		newToken: uuid.NewString,
	}
}

func (s *service) SignUp(ctx context.Context, params SignUpParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SignUp"),
		zap.String("role", string(params.Role)),
	)

	if params.Role == "" {
		params.Role = auth.RoleCustomer
	}
	if params.Role != auth.RoleCustomer && params.Role != auth.RoleSeller {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(params.Name) == "" || utils.NormalizeEmail(params.Email) == "" {
		return nil, ErrMissingFields
	}
	if len(params.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	var profile *SellerProfile
	if params.Role == auth.RoleSeller {
		store := strings.TrimSpace(params.StoreName)
		if store == "" {
			return nil, ErrMissingStoreName
		}
		profile = &SellerProfile{StoreName: store}
	}

	hashed, err := auth.HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	code, err := s.otp()
	if err != nil {
		log.Error("failed to generate otp", zap.Error(err))
		return nil, err
	}
	expires := s.now().Add(s.opts.OTPTTL)

	u := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		Email:        utils.NormalizeEmail(params.Email),
		PasswordHash: hashed,
		Role:         params.Role,
		OTPCode:      &code,
		OTPExpiresAt: &expires,
	}

	if err := s.repo.Create(ctx, u, profile); err != nil {
		return nil, err
	}

	s.sendOTP(ctx, u.Email, code)
	log.Info("signup completed, awaiting verification", zap.String("user_id", u.ID))

	return u, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.Verified {
		return ErrAlreadyVerified
	}

	if u.OTPCode == nil || u.OTPExpiresAt == nil ||
		*u.OTPCode != strings.TrimSpace(code) || s.now().After(*u.OTPExpiresAt) {
		logger.FromCtx(ctx).Info("otp rejected", zap.String("user_id", u.ID))
		return ErrInvalidOTP
	}

	return s.repo.MarkVerified(ctx, u.ID)
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.Verified {
		return ErrAlreadyVerified
	}

	code, err := s.otp()
	if err != nil {
		return err
	}
	if err := s.repo.SetOTP(ctx, u.ID, code, s.now().Add(s.opts.OTPTTL)); err != nil {
		return err
	}

	s.sendOTP(ctx, u.Email, code)
	return nil
}

// SignIn checks role when one is given so each portal only admits its own accounts.
func (s *service) SignIn(ctx context.Context, email, password string, role auth.Role) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SignIn"),
	)

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		log.Error("failed to load user", zap.Error(err))
		return "", nil, err
	}
	if u == nil || !auth.CheckPasswordHash(password, u.PasswordHash) {
		log.Info("invalid credentials")
		return "", nil, ErrInvalidCredentials
	}
	if !u.Verified {
		return "", nil, ErrNotVerified
	}
	if role != "" && u.Role != role {
		log.Warn("role mismatch on sign in", zap.String("user_id", u.ID), zap.String("requested_role", string(role)))
		return "", nil, ErrRoleMismatch
	}

	token, err := s.tokens.Generate(u.Identity())
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("sign in succeeded", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return token, u, nil
}

// ForgotPassword succeeds silently for unknown emails.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ForgotPassword"),
	)

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if u == nil {
		log.Info("password reset requested for unknown email")
		return nil
	}

	token := s.newToken()
	if err := s.repo.SetResetToken(ctx, u.ID, token, s.now().Add(s.opts.ResetTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.opts.ClientURL, "/"), token)
	body := fmt.Sprintf("Reset your password using this link: %s\nThe link expires in %s.", link, s.opts.ResetTTL)
	if err := s.notifier.Send(ctx, u.Email, "Reset your Vyaha password", body); err != nil {
		metrics.Default.NotifyFailures.Inc()
		log.Warn("reset email failed", zap.Error(err))
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidReset
	}

	u, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if u == nil || u.ResetTokenExpiresAt == nil || s.now().After(*u.ResetTokenExpiresAt) {
		return ErrInvalidReset
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("password reset", zap.String("user_id", u.ID))
	return nil
}

func (s *service) GetSellerProfile(ctx context.Context, actor auth.Identity) (*SellerProfile, error) {
	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}
	return s.repo.GetSellerProfile(ctx, actor.UserID)
}

func (s *service) UpdateSellerProfile(ctx context.Context, actor auth.Identity, params UpdateProfileParams) (*SellerProfile, error) {
	if actor.Role != auth.RoleSeller {
		return nil, ErrSellerOnly
	}
	if params.StoreName != nil && strings.TrimSpace(*params.StoreName) == "" {
		return nil, ErrMissingStoreName
	}

	params.UserID = actor.UserID
	return s.repo.UpdateSellerProfile(ctx, params)
}

func (s *service) SeedAdmin(ctx context.Context, name, email, password string) (*User, bool, error) {
	if len(password) < minPasswordLength {
		return nil, false, ErrWeakPassword
	}

	email = utils.NormalizeEmail(email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         auth.RoleAdmin,
		Verified:     true,
	}
	if err := s.repo.Create(ctx, u, nil); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// sendOTP never fails the caller; delivery problems are logged and counted.
func (s *service) sendOTP(ctx context.Context, email, code string) {
	body := fmt.Sprintf("Your Vyaha verification code is %s. It expires in %s.", code, s.opts.OTPTTL)
	if err := s.notifier.Send(ctx, email, "Verify your Vyaha account", body); err != nil {
		metrics.Default.NotifyFailures.Inc()
		logger.FromCtx(ctx).Warn("verification email failed", zap.String("email", email), zap.Error(err))
	}
}

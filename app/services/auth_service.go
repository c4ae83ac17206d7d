package services

import (
	"context"
	"errors"

	"github.com/drovo/backend/app/jobs"
	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/auth"
	"github.com/drovo/backend/pkg/logger"
	"github.com/drovo/backend/pkg/otp"
	"github.com/drovo/backend/pkg/queue"
)

// Account roles accepted at registration and login.
const (
	RoleUser = "user"
	RoleShop = "shop"
)

// AuthService handles registration, login, shop signup via OTP, and
// role-agnostic profile resolution.
type AuthService struct {
	users    repositories.UserRepository
	shops    repositories.ShopRepository
	codes    otp.Store
	dispatch func(queue.Job) error
}

func NewAuthService(users repositories.UserRepository, shops repositories.ShopRepository, codes otp.Store) *AuthService {
	return &AuthService{
		users:    users,
		shops:    shops,
		codes:    codes,
		dispatch: queue.Dispatch,
	}
}

// Register creates an account for the given role and returns a signed token.
// The password is bcrypt-hashed before the account is stored; plaintext never
// reaches a repository.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	switch role {
	case RoleShop:
		if _, err := s.shops.FindByEmail(ctx, email); err == nil {
			return "", ErrDuplicateEmail
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return "", err
		}
		shop := &models.Shop{Name: name, Email: email, Password: hash}
		if err := s.shops.Create(ctx, shop); err != nil {
			return "", err
		}
		return auth.GenerateToken(shop.ID.Hex())

	default: // user
		if _, err := s.users.FindByEmail(ctx, email); err == nil {
			return "", ErrDuplicateEmail
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return "", err
		}
		user := &models.User{Name: name, Email: email, Password: hash, CartData: map[string]int{}}
		if err := s.users.Create(ctx, user); err != nil {
			return "", err
		}
		return auth.GenerateToken(user.ID.Hex())
	}
}

// Login checks credentials for the given role and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (string, error) {
	var (
		id   string
		hash string
	)

	switch role {
	case RoleShop:
		shop, err := s.shops.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return "", ErrInvalidCredentials
			}
			return "", err
		}
		id, hash = shop.ID.Hex(), shop.Password

	default:
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return "", ErrInvalidCredentials
			}
			return "", err
		}
		id, hash = user.ID.Hex(), user.Password
	}

	if !auth.CheckPassword(hash, password) {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(id)
}

// SendOTP starts the shop signup flow: issues a 6-digit code, stores it
// against the email with a short TTL, and queues the verification mail.
// An email owned by a fully set-up shop is rejected; an incomplete shop may
// restart its signup.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	shop, err := s.shops.FindByEmail(ctx, email)
	if err == nil && shop.IsSetupComplete {
		return ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	code := otp.NewCode()
	if err := s.codes.Put(ctx, email, code); err != nil {
		return err
	}

	if err := s.dispatch(jobs.OTPMailJob{Email: email, Code: code}); err != nil {
		logger.WithCtx(ctx).Error("auth: queue otp mail", "email", email, "error", err)
		return err
	}
	return nil
}

// VerifyOTP completes the shop signup: the submitted code must match the
// stored one, which is consumed exactly once on success. A shop whose earlier
// signup never finished is re-created in place rather than duplicated.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code, name, password string) (string, error) {
	stored, ok := s.codes.Get(ctx, email)
	if !ok || stored != code {
		return "", ErrWrongOTP
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	shop, err := s.shops.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// Only an unfinished signup may be overwritten. A completed shop's
		// credentials must never change through this flow, even while an
		// earlier code is still within its TTL.
		if shop.IsSetupComplete {
			return "", ErrDuplicateEmail
		}
		shop.Name = name
		shop.Password = hash
		if err := s.shops.Update(ctx, shop); err != nil {
			return "", err
		}
	case errors.Is(err, repositories.ErrNotFound):
		shop = &models.Shop{Name: name, Email: email, Password: hash}
		if err := s.shops.Create(ctx, shop); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	if err := s.codes.Forget(ctx, email); err != nil {
		logger.WithCtx(ctx).Warn("auth: forget otp", "email", email, "error", err)
	}
	return auth.GenerateToken(shop.ID.Hex())
}

// Profile resolves an account id to its account, probing users first, then
// shops. The fixed order is what lets one token format serve both kinds.
func (s *AuthService) Profile(ctx context.Context, accountID string) (role string, account any, err error) {
	user, err := s.users.FindByID(ctx, accountID)
	if err == nil {
		return RoleUser, user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return "", nil, err
	}

	shop, err := s.shops.FindByID(ctx, accountID)
	if err != nil {
		return "", nil, err
	}
	return RoleShop, shop, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/pius706975/poolseek-be/internal/apperr"
	"github.com/pius706975/poolseek-be/internal/otp"
	"github.com/pius706975/poolseek-be/internal/store"
	"github.com/pius706975/poolseek-be/internal/validate"
	"github.com/pius706975/poolseek-be/types"
)

// ImageStore uploads profile images to the configured object store.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// AccountService orchestrates OTP send/verify and profile flows for an
// already-identified or token-identified user.
type AccountService struct {
	users    UserRepository
	tokens   TokenIssuer
	hasher   PasswordHasher
	notifier Notifier
	images   ImageStore
	logger   *slog.Logger
}

func NewAccountService(
	users UserRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	notifier Notifier,
	images ImageStore,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		notifier: notifier,
		images:   images,
		logger:   logger,
	}
}

// SendOTP stores a fresh code on the user record, overwriting any pending
// one, and emails it without blocking on delivery.
func (s *AccountService) SendOTP(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	otpCode, err := otp.Generate(otp.DefaultLength)
	if err != nil {
		return err
	}

	user.OTPCode = otpCode
	user.OTPExpiration = sql.NullTime{Time: time.Now().Add(otpTTL), Valid: true}
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.dispatchOTPEmail(user.Email, otpCode)

	return nil
}

// VerifyOTP consumes a pending code: on an exact match before expiration the
// user becomes verified and the code is cleared, so a second attempt with
// the same code fails.
func (s *AccountService) VerifyOTP(ctx context.Context, email, otpCode string) (types.User, error) {
	if err := validate.Email(email); err != nil {
		return types.User{}, err
	}
	if err := validate.Required(otpCode, "OTP code is required"); err != nil {
		return types.User{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.NotFound("User not found")
		}
		return types.User{}, err
	}

	if user.OTPCode != otpCode {
		return types.User{}, apperr.Validation("Invalid OTP code")
	}
	if !user.OTPExpiration.Valid || user.OTPExpiration.Time.Before(time.Now()) {
		return types.User{}, apperr.Validation("OTP code has expired")
	}

	user.IsVerified = true
	user.OTPCode = ""
	user.OTPExpiration = sql.NullTime{}

	return s.users.Update(ctx, user)
}

// UpdatePassword replaces the password of the token-identified user. The
// policy check runs before any token verification so malformed input is
// rejected even with a bad token.
func (s *AccountService) UpdatePassword(ctx context.Context, accessToken, newPassword string) (types.User, error) {
	if err := validate.Password(newPassword); err != nil {
		return types.User{}, err
	}

	user, err := s.resolveUser(ctx, accessToken)
	if err != nil {
		return types.User{}, err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return types.User{}, err
	}
	user.Password = hashed

	return s.users.Update(ctx, user)
}

// GetProfile returns the user record the access token identifies.
func (s *AccountService) GetProfile(ctx context.Context, accessToken string) (types.User, error) {
	return s.resolveUser(ctx, accessToken)
}

// UpdateProfileImage stores the uploaded image in the object store and saves
// its key on the user record.
func (s *AccountService) UpdateProfileImage(ctx context.Context, accessToken, filename string, r io.Reader, size int64, contentType string) (types.User, error) {
	if s.images == nil {
		return types.User{}, apperr.Validation("Profile image storage is not configured")
	}

	user, err := s.resolveUser(ctx, accessToken)
	if err != nil {
		return types.User{}, err
	}

	key := fmt.Sprintf("profile-images/%s%s", user.ID, path.Ext(filename))
	if err := s.images.Put(ctx, key, r, size, contentType); err != nil {
		return types.User{}, fmt.Errorf("upload profile image: %w", err)
	}

	user.Image = key
	return s.users.Update(ctx, user)
}

func (s *AccountService) resolveUser(ctx context.Context, accessToken string) (types.User, error) {
	userID, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.NotFound("User not found")
		}
		return types.User{}, err
	}
	return user, nil
}

func (s *AccountService) dispatchOTPEmail(recipient, code string) {
	go func() {
		if err := s.notifier.SendOTPEmail(context.Background(), recipient, code); err != nil {
			s.logger.Error("failed to send OTP email",
				slog.String("recipient", recipient),
				slog.Any("error", err))
		}
	}()
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/pius706975/poolseek-be/internal/apperr"
	"github.com/pius706975/poolseek-be/internal/otp"
	"github.com/pius706975/poolseek-be/internal/store"
	"github.com/pius706975/poolseek-be/internal/validate"
	"github.com/pius706975/poolseek-be/types"
)

const (
	otpTTL = 10 * time.Minute

	defaultDeviceName  = "Unknown Device"
	defaultDeviceModel = "Unknown Model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// SessionRepository defines persistence operations for per-device refresh
// tokens.
type SessionRepository interface {
	GetByDevice(ctx context.Context, userID, deviceID string) (types.Session, error)
	Upsert(ctx context.Context, session types.Session) (types.Session, error)
	DeleteByDevice(ctx context.Context, userID, deviceID string) error
}

// TokenIssuer signs and verifies the tokens carrying a user identity claim.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(tokenString string) (string, error)
	RefreshTokenTTL() time.Duration
}

// Notifier dispatches account emails. Implementations must be safe to call
// from detached goroutines.
type Notifier interface {
	SendOTPEmail(ctx context.Context, recipient, code string) error
}

// AuthService orchestrates sign-up, sign-in, sign-out, token refresh, and
// password reset.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenIssuer
	hasher   PasswordHasher
	notifier Notifier
	logger   *slog.Logger
}

func NewAuthService(
	users UserRepository,
	sessions SessionRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	notifier Notifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

// SignUpParams carries the sign-up request fields.
type SignUpParams struct {
	Email       string
	FirstName   string
	LastName    string
	Password    string
	PhoneNumber string
}

// SignUp registers a new unverified user with a pending OTP and dispatches
// the verification email without blocking on delivery.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (types.User, error) {
	if err := validate.Email(params.Email); err != nil {
		return types.User{}, err
	}
	if err := validate.Required(params.FirstName, "First name is required"); err != nil {
		return types.User{}, err
	}
	if err := validate.Required(params.LastName, "Last name is required"); err != nil {
		return types.User{}, err
	}
	if err := validate.Password(params.Password); err != nil {
		return types.User{}, err
	}

	if _, err := s.users.GetByEmail(ctx, params.Email); err == nil {
		return types.User{}, apperr.Conflictf("Email %s already exists", params.Email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	otpCode, err := otp.Generate(otp.DefaultLength)
	if err != nil {
		return types.User{}, err
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.users.Create(ctx, types.User{
		Email:         params.Email,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		PhoneNumber:   params.PhoneNumber,
		RoleID:        types.RoleUser,
		Password:      hashed,
		OTPCode:       otpCode,
		OTPExpiration: sql.NullTime{Time: time.Now().Add(otpTTL), Valid: true},
		IsVerified:    false,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, apperr.Conflictf("Email %s already exists", params.Email)
		}
		return types.User{}, err
	}

	s.dispatchOTPEmail(user.Email, otpCode)

	return user, nil
}

// SignInParams carries the sign-in request fields.
type SignInParams struct {
	Email       string
	Password    string
	DeviceID    string
	DeviceName  string
	DeviceModel string
}

// SignInResult is the successful sign-in payload.
type SignInResult struct {
	User         types.User `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

// SignIn verifies credentials, issues both tokens, and stores the refresh
// token for the signing-in device. Unknown emails and wrong passwords fail
// with the same message so callers cannot probe registered addresses.
func (s *AuthService) SignIn(ctx context.Context, params SignInParams) (SignInResult, error) {
	if err := validate.Email(params.Email); err != nil {
		return SignInResult{}, err
	}
	if err := validate.Required(params.Password, "Password is required"); err != nil {
		return SignInResult{}, err
	}
	if err := validate.Required(params.DeviceID, "Device ID is required"); err != nil {
		return SignInResult{}, err
	}
	if params.DeviceName == "" {
		params.DeviceName = defaultDeviceName
	}
	if params.DeviceModel == "" {
		params.DeviceModel = defaultDeviceModel
	}

	user, err := s.users.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SignInResult{}, apperr.Unauthorized("Email or password is invalid")
		}
		return SignInResult{}, err
	}

	if err := s.hasher.Compare(user.Password, params.Password); err != nil {
		return SignInResult{}, apperr.Unauthorized("Email or password is invalid")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return SignInResult{}, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return SignInResult{}, err
	}

	if _, err := s.sessions.Upsert(ctx, types.Session{
		UserID:                 user.ID,
		DeviceID:               params.DeviceID,
		DeviceName:             params.DeviceName,
		DeviceModel:            params.DeviceModel,
		RefreshToken:           refreshToken,
		RefreshTokenExpiration: time.Now().Add(s.tokens.RefreshTokenTTL()),
	}); err != nil {
		return SignInResult{}, err
	}

	return SignInResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignOut deletes the session row for the calling user's device. Repeated
// sign-out for an already-signed-out device reports 404, not success.
func (s *AuthService) SignOut(ctx context.Context, accessToken, deviceID string) error {
	if err := validate.Required(deviceID, "Device ID is required"); err != nil {
		return err
	}

	userID, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if err := s.sessions.DeleteByDevice(ctx, user.ID, deviceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Refresh token not found")
		}
		return err
	}
	return nil
}

// RefreshToken mints a new access token for the device when the supplied
// refresh token matches the stored one and has not expired. The refresh
// token itself is not rotated.
func (s *AuthService) RefreshToken(ctx context.Context, userID, deviceID, refreshToken string) (string, error) {
	if err := validate.Required(userID, "User ID is required"); err != nil {
		return "", err
	}
	if err := validate.Required(deviceID, "Device ID is required"); err != nil {
		return "", err
	}
	if err := validate.Required(refreshToken, "Refresh token is required"); err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.NotFound("User not found")
		}
		return "", err
	}

	session, err := s.sessions.GetByDevice(ctx, user.ID, deviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.Unauthorized("Invalid refresh token")
		}
		return "", err
	}
	if session.RefreshToken != refreshToken {
		return "", apperr.Unauthorized("Invalid refresh token")
	}
	if session.RefreshTokenExpiration.Before(time.Now()) {
		return "", apperr.Unauthorized("Refresh token expired")
	}

	return s.tokens.IssueAccessToken(user.ID)
}

// ResetPassword replaces the password for the account registered under
// email. This is the direct, trusted path; it does not require an OTP.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (types.User, error) {
	if err := validate.Password(newPassword); err != nil {
		return types.User{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.NotFound("User not found")
		}
		return types.User{}, err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return types.User{}, err
	}
	user.Password = hashed

	return s.users.Update(ctx, user)
}

// dispatchOTPEmail sends the code in a detached goroutine. Delivery failures
// are logged and never reach the caller. The goroutine uses a background
// context because the request context is cancelled once the response is
// written.
func (s *AuthService) dispatchOTPEmail(recipient, code string) {
	go func() {
		if err := s.notifier.SendOTPEmail(context.Background(), recipient, code); err != nil {
			s.logger.Error("failed to send OTP email",
				slog.String("recipient", recipient),
				slog.Any("error", err))
		}
	}()
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pius706975/poolseek-be/internal/services"
)

// AuthHandler provides the sign-up/sign-in/sign-out/refresh endpoints.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, auth *services.AuthService) {
	handler := NewAuthHandler(auth)

	r.Post("/signup", handler.SignUp)
	r.Post("/signin", handler.SignIn)
	r.Post("/signout", handler.SignOut)
	r.Post("/refresh-token", handler.RefreshToken)
	r.Post("/reset-password", handler.ResetPassword)
}

type SignUpRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// SignUp registers a new account and returns the created user.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.auth.SignUp(r.Context(), services.SignUpParams{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Successfully signed up", user)
}

type SignInRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name,omitempty"`
	DeviceModel string `json:"device_model,omitempty"`
}

// SignIn verifies credentials and returns the user with both tokens.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.auth.SignIn(r.Context(), services.SignInParams{
		Email:       req.Email,
		Password:    req.Password,
		DeviceID:    req.DeviceID,
		DeviceName:  req.DeviceName,
		DeviceModel: req.DeviceModel,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Successfully signed in", result)
}

type SignOutRequest struct {
	DeviceID string `json:"device_id"`
}

// SignOut deletes the refresh token stored for the calling device.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := requireBearer(w, r)
	if !ok {
		return
	}

	var req SignOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.auth.SignOut(r.Context(), accessToken, req.DeviceID); err != nil {
		renderError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Successfully signed out")
}

type RefreshTokenRequest struct {
	UserID       string `json:"user_id"`
	DeviceID     string `json:"device_id"`
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RefreshToken mints a new access token for a valid stored refresh token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accessToken, err := h.auth.RefreshToken(r.Context(), req.UserID, req.DeviceID, req.RefreshToken)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Access token refreshed", AccessTokenResponse{AccessToken: accessToken})
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPassword directly replaces the password for an email. This trusted
// path does not require an OTP.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.auth.ResetPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Successfully reset password", user)
}

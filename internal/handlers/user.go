package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pius706975/poolseek-be/internal/services"
)

const maxProfileImageBytes = 8 << 20

// UserHandler provides the OTP and profile endpoints.
type UserHandler struct {
	account *services.AccountService
}

func NewUserHandler(account *services.AccountService) *UserHandler {
	return &UserHandler{account: account}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, account *services.AccountService) {
	handler := NewUserHandler(account)

	r.Put("/send-otp", handler.SendOTP)
	r.Put("/verify-otp", handler.VerifyOTP)
	r.Put("/update-password", handler.UpdatePassword)
	r.Get("/profile", handler.GetProfile)
	r.Put("/profile-image", handler.UpdateProfileImage)
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

// SendOTP issues a fresh OTP for the email and dispatches it.
func (h *UserHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.account.SendOTP(r.Context(), req.Email); err != nil {
		renderError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "OTP has been sent to your email")
}

type VerifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

// VerifyOTP consumes a pending OTP and marks the user verified.
func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.account.VerifyOTP(r.Context(), req.Email, req.OTPCode)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Successfully verified OTP", user)
}

type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// UpdatePassword replaces the password of the token-identified user.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := requireBearer(w, r)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.account.UpdatePassword(r.Context(), accessToken, req.Password)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Successfully updated password", user)
}

// GetProfile returns the token-identified user record.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := requireBearer(w, r)
	if !ok {
		return
	}

	user, err := h.account.GetProfile(r.Context(), accessToken)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "User data fetched", user)
}

// UpdateProfileImage stores the uploaded image and saves its key on the user.
func (h *UserHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := requireBearer(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxProfileImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	user, err := h.account.UpdateProfileImage(r.Context(), accessToken, header.Filename, file, header.Size, contentType)
	if err != nil {
		renderError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Successfully updated profile image", user)
}

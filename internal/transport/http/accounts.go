package http

import (
	"errors"
	"log/slog"
	"net/http"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	obsmw "truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"
)

const dashboardURL = "/dashboard"

var (
	verifyMessages = []wireMessage{
		{domain.ErrAccountNotFound, "User not found"},
		{domain.ErrIncorrectCode, "Incorrect verification code"},
		{domain.ErrCodeExpired, "Verification code has expired. Please sign up again."},
	}
	signUpMessages = []wireMessage{
		{domain.ErrUsernameTaken, "Username is already taken"},
		{domain.ErrEmailTaken, "User already exists with this email"},
	}
	resendMessages = []wireMessage{
		{domain.ErrAccountNotFound, "User not found"},
		{domain.ErrAlreadyVerified, "Account is already verified"},
	}
)

type accountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

func (h *accountHandler) log(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", obsmw.RequestIDFromContext(r.Context()),
		"trace_id", obsmw.TraceIDFromContext(r.Context()),
	)
}

func (h *accountHandler) verifyCode(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.accounts.VerifyCode(r.Context(), req); err != nil {
		h.log(r).Info("verification failed", "username", req.Username, "error", err)
		writeFailure(w, statusFor(err), err, verifyMessages, "Error verifying code")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, Message: "Account verified successfully!"})
}

func (h *accountHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.accounts.SignUp(r.Context(), req); err != nil {
		status := statusFor(err)
		if status == http.StatusConflict {
			status = http.StatusBadRequest
		}
		h.log(r).Info("sign-up rejected", "username", req.Username, "status", status, "error", err)
		fallback := "Error registering user"
		if errors.Is(err, domain.ErrExternalService) {
			fallback = "Failed to send verification email"
		}
		writeFailure(w, status, err, signUpMessages, fallback)
		return
	}
	writeJSON(w, http.StatusCreated, dto.APIResponse{
		Success: true,
		Message: "User registered successfully. Please verify your account.",
	})
}

func (h *accountHandler) resendCode(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.accounts.ResendCode(r.Context(), req.Username); err != nil {
		h.log(r).Info("resend code rejected", "username", req.Username, "error", err)
		writeFailure(w, statusFor(err), err, resendMessages, "Error sending verification code")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, Message: "Verification code sent"})
}

func (h *accountHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tokens, err := h.accounts.SignIn(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.SignInResponse{URL: dashboardURL, Token: tokens.AccessToken, ExpiresIn: tokens.ExpiresIn})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnauthorized, dto.SignInResponse{Error: "CredentialsSignin"})
	case errors.Is(err, domain.ErrAccountNotVerified):
		writeJSON(w, http.StatusForbidden, dto.SignInResponse{Error: "Please verify your account before logging in"})
	default:
		h.log(r).Error("sign-in failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.SignInResponse{Error: "Internal server error"})
	}
}

func (h *accountHandler) checkUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	available, err := h.accounts.UsernameAvailable(r.Context(), username)
	if err != nil {
		writeFailure(w, statusFor(err), err, nil, "Error checking username")
		return
	}
	if !available {
		writeJSON(w, http.StatusOK, dto.APIResponse{Message: "Username is already taken"})
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, Message: "Username is unique"})
}

func (h *accountHandler) getAcceptMessages(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
		return
	}
	accepting, err := h.accounts.AcceptingMessages(r.Context(), accountID)
	if err != nil {
		writeFailure(w, statusFor(err), err, []wireMessage{{domain.ErrAccountNotFound, "User not found"}}, "Error retrieving message acceptance status")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, IsAcceptingMessages: &accepting})
}

func (h *accountHandler) setAcceptMessages(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
		return
	}
	var req dto.AcceptMessagesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.accounts.SetAcceptingMessages(r.Context(), accountID, req.AcceptMessages); err != nil {
		writeFailure(w, statusFor(err), err, []wireMessage{{domain.ErrAccountNotFound, "User not found"}}, "Error updating message acceptance status")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{
		Success:             true,
		Message:             "Message acceptance status updated successfully",
		IsAcceptingMessages: &req.AcceptMessages,
	})
}

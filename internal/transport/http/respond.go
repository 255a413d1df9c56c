package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	"truefeedback/internal/validation"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.APIResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// statusFor maps a domain error category to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrExpired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type wireMessage struct {
	err error
	msg string
}

// writeFailure answers with the {success:false} envelope. The first entry of
// messages matching err supplies the wire message; validation failures carry
// the field rule message; server errors always get fallback.
func writeFailure(w http.ResponseWriter, status int, err error, messages []wireMessage, fallback string) {
	resp := dto.APIResponse{Message: fallback}

	var fe *validation.FieldError
	if errors.As(err, &fe) {
		resp.Message = fe.Message
		resp.Field = fe.Field
	} else {
		for _, m := range messages {
			if errors.Is(err, m.err) {
				resp.Message = m.msg
				break
			}
		}
	}
	if status == http.StatusInternalServerError {
		resp.Message = fallback
	}
	writeJSON(w, status, resp)
}

package http

import (
	"log/slog"
	"net/http"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	obsmw "truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"

	"github.com/go-chi/chi/v5"
)

var sendMessages = []wireMessage{
	{domain.ErrAccountNotFound, "User not found"},
	{domain.ErrNotAcceptingMessages, "User is not accepting messages"},
}

type messageHandler struct {
	messages service.MessageService
	logger   *slog.Logger
}

func (h *messageHandler) send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reqID := obsmw.RequestIDFromContext(r.Context())
	traceID := obsmw.TraceIDFromContext(r.Context())

	if _, err := h.messages.Send(r.Context(), req); err != nil {
		status := statusFor(err)
		level := slog.LevelInfo
		if status == http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "send message rejected",
			"username", req.Username, "status", status, "error", err,
			"request_id", reqID, "trace_id", traceID)
		writeFailure(w, status, err, sendMessages, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, Message: "Message sent successfully"})
}

func (h *messageHandler) list(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
		return
	}
	msgs, err := h.messages.List(r.Context(), accountID)
	if err != nil {
		h.logger.Error("list messages failed", "account_id", accountID, "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
		writeFailure(w, statusFor(err), err, nil, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, dto.MessagesResponse{Success: true, Messages: dto.NewMessageViews(msgs)})
}

func (h *messageHandler) delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
		return
	}
	messageID, err := domain.ParseID(chi.URLParam(r, "messageID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.APIResponse{Message: "Invalid message id"})
		return
	}
	if err := h.messages.Delete(r.Context(), accountID, messageID); err != nil {
		writeFailure(w, statusFor(err), err, []wireMessage{
			{domain.ErrMessageNotFound, "Message not found or already deleted"},
		}, "Error deleting message")
		return
	}
	writeJSON(w, http.StatusOK, dto.APIResponse{Success: true, Message: "Message deleted"})
}

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"truefeedback/internal/dto"
	"truefeedback/internal/observability/metrics"
	obsmw "truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"
	"truefeedback/internal/suggest"
)

// suggestionResult labels a provider outcome; output of the wrong shape is
// counted apart from provider failures.
func suggestionResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, suggest.ErrInvalidOutput):
		return "invalid"
	default:
		return "failure"
	}
}

type suggestionHandler struct {
	suggestions service.SuggestionService
	logger      *slog.Logger
}

// generate answers {content: string|false}. Output of the wrong shape is not
// a server fault and keeps a 200.
func (h *suggestionHandler) generate(w http.ResponseWriter, r *http.Request) {
	content, err := h.suggestions.Suggest(r.Context())
	metrics.SuggestionsTotal.WithLabelValues(suggestionResult(err)).Inc()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.SuggestResponse{Content: dto.SuggestContent(content)})
	case errors.Is(err, suggest.ErrInvalidOutput):
		writeJSON(w, http.StatusOK, dto.SuggestResponse{})
	default:
		h.logger.Error("suggestion provider failed", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()),
			"trace_id", obsmw.TraceIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, dto.SuggestResponse{Error: "Internal server error"})
	}
}

// questions serves the parsed list for a recipient page. It never fails;
// the fallback set stands in when the provider does.
func (h *suggestionHandler) questions(w http.ResponseWriter, r *http.Request) {
	content, err := h.suggestions.Suggest(r.Context())
	if err != nil {
		metrics.SuggestionsTotal.WithLabelValues(suggestionResult(err)).Inc()
		h.logger.Warn("serving fallback questions", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusOK, dto.QuestionsResponse{Questions: suggest.FallbackQuestions(), Fallback: true})
		return
	}
	metrics.SuggestionsTotal.WithLabelValues(suggestionResult(nil)).Inc()
	writeJSON(w, http.StatusOK, dto.QuestionsResponse{Questions: suggest.ParseQuestions(content)})
}

package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	obsmw "truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"
)

type principalKey struct{}

// Authenticator admits requests carrying a valid bearer access token and
// stores the token's principal in the request context.
type Authenticator struct {
	tokens service.TokenService
	logger *slog.Logger
}

func NewAuthenticator(tokens service.TokenService, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{tokens: tokens, logger: logger}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := obsmw.RequestIDFromContext(r.Context())
		traceID := obsmw.TraceIDFromContext(r.Context())

		raw := r.Header.Get("Authorization")
		if len(raw) < len("Bearer ") || !strings.EqualFold(raw[:len("Bearer ")], "bearer ") {
			a.logger.Warn("auth missing bearer", "request_id", reqID, "trace_id", traceID)
			writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
			return
		}
		p, err := a.tokens.Parse(r.Context(), strings.TrimSpace(raw[len("Bearer "):]))
		if err != nil {
			a.logger.Warn("auth invalid token", "error", err, "request_id", reqID, "trace_id", traceID)
			writeJSON(w, http.StatusUnauthorized, dto.APIResponse{Message: "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

func PrincipalFromContext(ctx context.Context) (dto.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(dto.Principal)
	return p, ok
}

// AccountFromContext returns the authenticated account id.
func AccountFromContext(ctx context.Context) (domain.AccountID, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return domain.NilID, false
	}
	id, err := domain.ParseID(p.AccountID)
	if err != nil {
		return domain.NilID, false
	}
	return id, true
}

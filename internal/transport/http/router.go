package http

import (
	"log/slog"
	"net/http"
	"time"

	"truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultRateLimit     = 100
	defaultSendRateLimit = 20
	requestTimeout       = 30 * time.Second
)

type Deps struct {
	Accounts    service.AccountService
	Messages    service.MessageService
	Suggestions service.SuggestionService
	Tokens      service.TokenService
	Logger      *slog.Logger
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer

	CORSOrigins            []string
	RateLimitPerMinute     int
	SendRateLimitPerMinute int
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	limit := d.RateLimitPerMinute
	if limit <= 0 {
		limit = defaultRateLimit
	}
	sendLimit := d.SendRateLimitPerMinute
	if sendLimit <= 0 {
		sendLimit = defaultSendRateLimit
	}

	accounts := &accountHandler{accounts: d.Accounts, logger: logger}
	messages := &messageHandler{messages: d.Messages, logger: logger}
	suggestions := &suggestionHandler{suggestions: d.Suggestions, logger: logger}
	authn := NewAuthenticator(d.Tokens, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsOrAny(d.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.WithRequestAndTrace)
	r.Use(middleware.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Use(httprate.LimitByIP(limit, time.Minute))

		api.Post("/auth/sign-in", accounts.signIn)
		api.Post("/sign-up", accounts.signUp)
		api.Post("/verify-code", accounts.verifyCode)
		api.Post("/resend-code", accounts.resendCode)
		api.Get("/check-username-unique", accounts.checkUsername)

		api.With(httprate.LimitByIP(sendLimit, time.Minute)).Post("/send-message", messages.send)
		api.Post("/suggest-messages", suggestions.generate)
		api.Get("/u/{username}/suggestions", suggestions.questions)

		api.Group(func(pr chi.Router) {
			pr.Use(authn.Middleware)
			pr.Get("/accept-messages", accounts.getAcceptMessages)
			pr.Post("/accept-messages", accounts.setAcceptMessages)
			pr.Get("/get-messages", messages.list)
			pr.Delete("/delete-message/{messageID}", messages.delete)
		})
	})

	return r
}

func originsOrAny(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}

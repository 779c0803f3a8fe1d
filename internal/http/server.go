package http

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"extraque/internal/auth"
	"extraque/internal/cache"
	"extraque/internal/currency"
	"extraque/internal/insights"
	"extraque/internal/middleware/ratelimit"
	"extraque/internal/middleware/security"
	"extraque/internal/middleware/trace"
	"extraque/internal/registry"
	"extraque/internal/services"
	"extraque/internal/store"
)

// Options configures the server's collaborators.
type Options struct {
	Addr            string
	Backend         store.Backend
	Finance         *services.FinanceService
	Categories      *registry.Registry
	Auth            *auth.Service
	Insights        *insights.Service
	DefaultCurrency currency.Currency
}

// Server is the JSON API front end. Reads come straight from the backend,
// writes go through the finance service so change events get published.
type Server struct {
	http.Server

	backend    store.Backend
	finance    *services.FinanceService
	categories *registry.Registry
	auth       *auth.Service
	insights   *insights.Service

	defaultCurrency currency.Currency

	dashboardCache *cache.LRUCache[DashboardResponse]
	cacheManager   *cache.Manager
	// generation is folded into dashboard cache keys; bumping it on any
	// write makes every cached dashboard unreachable, and the stale
	// entries age out through TTL and LRU eviction.
	generation int64

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	headers     *security.HeadersMiddleware
	tracer      *trace.Middleware

	startedAt time.Time
}

// NewServer wires routes and the middleware chain.
func NewServer(opts Options) *Server {
	s := &Server{
		backend:         opts.Backend,
		finance:         opts.Finance,
		categories:      opts.Categories,
		auth:            opts.Auth,
		insights:        opts.Insights,
		defaultCurrency: opts.DefaultCurrency,
		dashboardCache:  cache.NewLRUCache[DashboardResponse](100, 5*time.Minute),
		cacheManager:    cache.NewManager(),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:        security.NewDetector(),
		headers:         security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		startedAt:       time.Now(),
	}
	if s.defaultCurrency.Code == "" {
		s.defaultCurrency = currency.Base()
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/session", s.handleSession)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PATCH /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/bills", s.handleListBills)
	mux.HandleFunc("POST /api/bills", s.handleCreateBill)
	mux.HandleFunc("POST /api/bills/{id}/toggle-paid", s.handleToggleBillPaid)
	mux.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)

	mux.HandleFunc("GET /api/debts", s.handleListDebts)
	mux.HandleFunc("POST /api/debts", s.handleCreateDebt)
	mux.HandleFunc("PUT /api/debts/{id}/balance", s.handleUpdateDebtBalance)
	mux.HandleFunc("DELETE /api/debts/{id}", s.handleDeleteDebt)

	mux.HandleFunc("GET /api/savings", s.handleListSavings)
	mux.HandleFunc("POST /api/savings", s.handleCreateSavingsGoal)
	mux.HandleFunc("PATCH /api/savings/{id}", s.handleUpdateSavingsGoal)
	mux.HandleFunc("POST /api/savings/{id}/top-up", s.handleTopUpSavingsGoal)
	mux.HandleFunc("DELETE /api/savings/{id}", s.handleDeleteSavingsGoal)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.handleRenameCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/currencies", s.handleListCurrencies)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/insights", s.handleInsights)

	handler := s.rateLimitMutations(mux)
	handler = s.tracer.Middleware(handler)
	handler = s.headers.Middleware(handler)
	handler = s.detectSuspicious(handler)

	s.Server = http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// rateLimitMutations applies the per-IP limiter to write methods only.
func (s *Server) rateLimitMutations(next http.Handler) http.Handler {
	limited := s.rateLimiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
		default:
			limited.ServeHTTP(w, r)
		}
	})
}

// detectSuspicious rejects requests matching known probe patterns.
func (s *Server) detectSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			respondError(w, http.StatusForbidden, "request rejected")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// invalidateDashboards makes all cached dashboards unreachable.
func (s *Server) invalidateDashboards() {
	atomic.AddInt64(&s.generation, 1)
}

func (s *Server) dashboardKey(period, code string) string {
	gen := atomic.LoadInt64(&s.generation)
	return period + "|" + code + "|" + formatGeneration(gen)
}

// Shutdown stops the HTTP listener and the background helpers.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Server.Shutdown(ctx)
	s.rateLimiter.Stop()
	s.cacheManager.Stop()
	return err
}

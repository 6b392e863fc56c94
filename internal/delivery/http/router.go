package http

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencesite/internal/delivery/http/controllers"
	"conferencesite/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Home   *controllers.HomeController
	Event  *controllers.EventController
	Page   *controllers.PageController
	API    *controllers.APIController
	Errors *controllers.ErrorPages
}

// RouterConfig holds the middleware settings of the router.
type RouterConfig struct {
	StaticDir        string
	PresentationsDir string
	AllowedOrigins   []string
	CSRF             middleware.CSRFConfig
	// RegistrationLimiter throttles registration POSTs per client IP; nil disables it.
	RegistrationLimiter *middleware.RateLimiter
	// TrustProxy keys the limiter on CF-Connecting-IP / X-Forwarded-For.
	TrustProxy bool
}

const assetCacheControl = "public, max-age=2592000"

// NewRouter initializes the HTTP router with all application routes.
// File trees live on an outer mux so their prefixes do not overlap the site's
// wildcard routes.
func NewRouter(logger *slog.Logger, c Controllers, cfg RouterConfig) http.Handler {
	site := http.NewServeMux()

	site.HandleFunc("GET /{$}", c.Home.Index)
	site.HandleFunc("GET /health", c.API.Health)

	// API
	site.Handle("GET /api/events/{eventID}", middleware.CORS(cfg.AllowedOrigins, http.HandlerFunc(c.API.GetEvent)))
	site.Handle("OPTIONS /api/events/{eventID}", middleware.CORS(cfg.AllowedOrigins, http.NotFoundHandler()))

	// Events
	site.HandleFunc("GET /events/{eventID}/{$}", c.Event.Show)
	var register http.Handler = http.HandlerFunc(c.Event.Register)
	if cfg.RegistrationLimiter != nil {
		register = middleware.RateLimit(cfg.RegistrationLimiter, middleware.ClientIP(cfg.TrustProxy), http.MethodPost)(register)
	}
	site.Handle("POST /events/{eventID}/{$}", register)
	site.HandleFunc("GET /{year}/{month}/{day}/{$}", c.Event.LegacyRedirect)

	// Static pages
	site.HandleFunc("GET /{page}/", c.Page.Show)
	site.HandleFunc("/", fallback(c.Errors))

	if cfg.CSRF.ErrorHandler == nil {
		cfg.CSRF.ErrorHandler = http.HandlerFunc(c.Errors.Forbidden)
	}

	root := http.NewServeMux()
	root.Handle("GET /static/", http.StripPrefix("/static/", fileServer(cfg.StaticDir)))
	root.Handle("GET /pres/", http.StripPrefix("/pres/", fileServer(cfg.PresentationsDir)))
	root.Handle("GET /swagger/", httpSwagger.WrapHandler)
	root.Handle("/", middleware.CSRF(cfg.CSRF)(site))

	return middleware.RequestID(middleware.LoggingMiddleware(logger, root))
}

// fileServer serves dir without directory listings.
func fileServer(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", assetCacheControl)
		fs.ServeHTTP(w, r)
	})
}

// fallback handles paths no route matches: GET paths without a trailing slash
// (and without a file extension) are redirected to their slash form, everything
// else gets the 404 page.
func fallback(pages *controllers.ErrorPages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) &&
			!strings.HasSuffix(p, "/") && path.Ext(p) == "" {
			u := *r.URL
			u.Path = p + "/"
			http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
			return
		}
		pages.NotFound(w, r)
	}
}

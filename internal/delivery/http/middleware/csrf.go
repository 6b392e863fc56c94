package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

// CSRFConfig configures CSRF protection of HTML forms.
type CSRFConfig struct {
	Key []byte
	// Secure marks the token cookie Secure and enables the HTTPS origin checks.
	Secure         bool
	TrustedOrigins []string
	// ErrorHandler renders rejected requests; csrf.FailureReason explains why.
	ErrorHandler http.Handler
}

// CSRF protects unsafe methods with a double-submit token. Templates embed
// the token with csrf.TemplateField.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Path("/"),
		csrf.Secure(cfg.Secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName("csrf_token"),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(hosts(cfg.TrustedOrigins)))
	}
	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	}
	protect := csrf.Protect(cfg.Key, opts...)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		// Plain-HTTP development servers skip the TLS-only Referer check.
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// hosts strips the scheme from origins; gorilla/csrf compares hosts.
func hosts(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if _, rest, ok := strings.Cut(o, "://"); ok {
			o = rest
		}
		out = append(out, strings.TrimRight(o, "/"))
	}
	return out
}

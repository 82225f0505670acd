package classroom

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/classroom/pkg/store"
)

// DefaultBaseURL is the API address used when none is configured.
const DefaultBaseURL = "http://localhost:3000"

type options struct {
	store     store.Store
	logger    *slog.Logger
	transport http.RoundTripper
	baseURL   string
	language  string
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL sets the API address.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout overrides the 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithStore sets where the session is persisted. Default: in memory.
func WithStore(s store.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLanguage selects the language of failure messages ("en", "pt",
// "pt-BR", an Accept-Language value...). Default: English.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithHTTPClient takes the transport and timeout of hc. Redirect and
// cookie settings are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc == nil {
			return
		}
		if hc.Transport != nil {
			o.transport = hc.Transport
		}
		if hc.Timeout > 0 {
			o.timeout = hc.Timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Options carries the router's middleware configuration.
type Options struct {
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Verify          middleware.TokenVerifier
}

// NewRouter wires the public and authenticated routes. Campaign reads and
// contribution listing are public; everything that creates or mutates state
// requires an authenticated caller.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Locale(opts.DefaultLocale, opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	authed := middleware.Auth(opts.Verify)

	r.Get("/v1/healthz", app.Health)

	r.Post("/signup", app.SignUp)
	r.Post("/login", app.LogIn)

	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.With(authed).Post("/", app.CampaignsCreate)
		r.With(authed).Put("/{id}", app.CampaignsUpdate)
		r.With(authed).Delete("/{id}", app.CampaignsDelete)
	})

	r.Route("/api/contributions", func(r chi.Router) {
		r.With(authed).Post("/", app.ContributionsCreate)
		r.Get("/{campaignID}", app.ContributionsList)
	})

	return r
}

package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/business/sync"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Api is the deploy-internal admin surface of the sync daemon: trigger and
// inspect sync passes, complete a pending reauthorization.
type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	syncService syncService
	authFlow    authFlow
}

type syncService interface {
	Run(ctx context.Context) error
	Status() sync.Status
}

type authFlow interface {
	AuthURL() string
	PendingAuthURL() string
	Exchange(ctx context.Context, authCode string) error
}

func NewApi(
	logger *zap.SugaredLogger,
	syncService syncService,
	authFlow authFlow,
) *Api {
	a := &Api{
		logger:      logger,
		syncService: syncService,
		authFlow:    authFlow,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/sync", func(r chi.Router) {
		r.Post("/", a.triggerSyncHandler)
		r.Get("/status", a.syncStatusHandler)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/url", a.authURLHandler)
		r.Post("/code", a.authCodeHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

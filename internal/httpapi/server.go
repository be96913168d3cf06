package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/anomalydash/internal/domain"
	apimw "github.com/hamed0406/anomalydash/internal/httpapi/middleware"
	"github.com/hamed0406/anomalydash/internal/refresher"
	"github.com/hamed0406/anomalydash/internal/state"
)

// BackendClient is the slice of the backend client the HTTP surface uses.
type BackendClient interface {
	FetchResults(ctx context.Context) ([]domain.Record, int, error)
	FetchStatistics(ctx context.Context) (*domain.Statistics, error)
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	TriggerAutomation(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Server struct {
	Logger         *zap.Logger
	Backend        BackendClient
	Store          *state.Store
	Refresher      *refresher.Refresher
	ExportBase     string
	MaxUploadBytes int64

	// Now is the export clock; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

func NewServer(
	l *zap.Logger,
	b BackendClient,
	st *state.Store,
	rf *refresher.Refresher,
	exportBase string,
	maxUploadBytes int64,
) *Server {
	return &Server{
		Logger:         l,
		Backend:        b,
		Store:          st,
		Refresher:      rf,
		ExportBase:     exportBase,
		MaxUploadBytes: maxUploadBytes,
		Now:            time.Now,
	}
}

func (s *Server) Router(adminKeys []string, publicRPM, publicBurst, adminRPM, adminBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", s.handleHealthz)

	// read routes
	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(publicRPM, publicBurst))
		r.Get("/api/records", s.handleRecords)
		r.Get("/api/summary", s.handleSummary)
	})

	// export and mutating routes get the tighter limit; the admin key gate is
	// a no-op unless keys are configured
	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(adminRPM, adminBurst))
		r.Get("/api/export", s.handleExport)

		r.Group(func(r chi.Router) {
			r.Use(apimw.RequireAdmin(adminKeys))
			r.Post("/api/refresh", s.handleRefresh)
			r.Post("/api/upload", s.handleUpload)
			r.Post("/api/automation", s.handleAutomation)
		})
	})

	return r
}

package httpapi

import (
	"net/http"

	"github.com/remostars/club-standings/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	AdminToken         string
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClub)
	mux.HandleFunc("GET /v1/results", handler.ListResults)
	mux.HandleFunc("GET /v1/results/stream", handler.StreamResults)
	mux.HandleFunc("GET /v1/results/latest", handler.LatestResult)
	mux.HandleFunc("GET /v1/results/{resultID}", handler.GetResult)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)

	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(cfg.AdminToken, h)
	}
	mux.Handle("POST /v1/clubs", admin(handler.RegisterClub))
	mux.Handle("PUT /v1/clubs/{clubID}", admin(handler.UpdateClub))
	mux.Handle("POST /v1/results", admin(handler.AddResult))
	mux.Handle("POST /v1/results/batch", admin(handler.ImportResults))
	mux.Handle("DELETE /v1/results/{resultID}", admin(handler.DeleteResult))

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

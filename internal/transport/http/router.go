package http

import (
	"net/http"

	"trivia-service/internal/app"
	"trivia-service/internal/metrics"
)

// RouterConfig controls optional routes.
type RouterConfig struct {
	// Metrics, when set, instruments every route and is served at MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string
}

// NewRouter registers the health, REST and websocket routes.
func NewRouter(service *app.GradingService, cfg RouterConfig) *http.ServeMux {
	var obs RequestObserver
	if cfg.Metrics != nil {
		obs = cfg.Metrics
	}

	api := NewAPIHandler(service)
	ws := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /v1/scores", Instrument("/v1/scores", api.ServeScores, obs))
	mux.HandleFunc("GET /v1/colors", Instrument("/v1/colors", api.ServeColor, obs))
	mux.HandleFunc("GET /v1/colors/{seed}", Instrument("/v1/colors/{seed}", api.ServeColor, obs))
	mux.HandleFunc("POST /v1/grade", Instrument("/v1/grade", api.ServeGrade, obs))
	mux.HandleFunc("GET /v1/banks/{code}", Instrument("/v1/banks/{code}", api.ServeBank, obs))
	mux.HandleFunc("GET /ws", Instrument("/ws", ws.ServeWS, obs))

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, cfg.Metrics.Handler())
	}
	return mux
}

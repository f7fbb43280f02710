package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/metrics"
	"github.com/himakhaitan/respkv/types"
	"go.uber.org/zap"
)

// NewMux constructs the ops HTTP mux: health, stats and metrics.
func NewMux(db *engine.DB, role types.Role, m *metrics.Metrics, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check Route
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// GET /v1/stats
	mux.HandleFunc("/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			_ = json.NewEncoder(w).Encode(types.BaseResponse{Success: false, Message: "method not allowed", Timestamp: time.Now().Unix()})
			return
		}
		stats := db.Stats()
		err := json.NewEncoder(w).Encode(types.StatsResponse{
			TotalKeys:    stats.TotalKeys,
			ExpiringKeys: stats.ExpiringKeys,
			LazyExpired:  stats.LazyExpired,
			Role:         string(role.Kind),
			MasterAddr:   role.MasterAddr,
			BaseResponse: types.BaseResponse{
				Success:   true,
				Timestamp: time.Now().Unix(),
				Message:   "stats fetched successfully",
			},
		})
		if err != nil {
			logger.Debug("write stats response", zap.Error(err))
		}
	})

	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	return mux
}

// NewHTTPServer constructs the ops http.Server. An empty address leaves it
// disabled.
func NewHTTPServer(cfg *config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

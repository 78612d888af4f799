package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CommandsTotal counts Sui CLI invocations by subcommand and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sui_proxy_commands_total",
		Help: "Sui CLI invocations by subcommand and outcome.",
	}, []string{"command", "outcome"})

	// TokenRefreshesTotal counts government API token refresh attempts.
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sui_proxy_token_refreshes_total",
		Help: "Government API token refresh attempts by outcome.",
	}, []string{"outcome"})

	// VerificationsTotal counts proxied PAN verification calls by upstream
	// status class.
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sui_proxy_pan_verifications_total",
		Help: "Proxied PAN verification calls by upstream status class.",
	}, []string{"status_class"})
)

// MetricsServer serves Prometheus metrics on a dedicated listen address.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server listening on listenAddr.
func New(listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &MetricsServer{
		srv: &http.Server{
			Addr:    listenAddr,
			Handler: mux,
		},
	}, nil
}

func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

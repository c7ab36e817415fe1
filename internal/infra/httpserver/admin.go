package httpserver

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
)

// NewAdminServer serves health, metrics and profiling endpoints on their own
// listener, away from the ingestion routes. /metrics exposes the Prometheus
// default registry (Go runtime and process collectors); OTel instruments are
// exported over OTLP only.
func NewAdminServer(addr string, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()
	healthController{}.AddRoutes(router)
	for _, controller := range controllers {
		controller.AddRoutes(router)
	}
	router.Handle("GET /metrics", promhttp.Handler())
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &StandardServer{
		&http.Server{
			Addr:    addr,
			Handler: createTracingMiddleware()(router),
		},
	}
}

type healthController struct{}

func (healthController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /healthz", getHealthz())
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := GetSpanFromContext(r)
		span.SetAttributes(attribute.String("endpoint", "healthz"))

		output := map[string]string{"status": "success"}
		ReplyJSONResponse(w, http.StatusOK, output)
	}
}

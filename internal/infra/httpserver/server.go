package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const _tracerName = "sensor-logger"

type Server interface {
	Start() (net.Addr, error)
	Shutdown(context.Context) error
}

var _ Server = &StandardServer{}

// StandardServer owns one listener. It is started once and never restarted.
type StandardServer struct {
	server *http.Server
}

type ServerOpts struct {
	Addr           string
	AllowedOrigins []string
}

// Start binds the listener and serves it in the background.
func (s *StandardServer) Start() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.String("addr", listener.Addr().String()), slog.Any("error", err))
		}
	}()

	return listener.Addr(), nil
}

func (s *StandardServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// NewServer builds the ingestion server. The handler sees every request as
// sent: no mux sits in front of it, so paths are neither cleaned nor
// redirected.
func NewServer(opts ServerOpts, handler http.Handler) *StandardServer {
	tracingMiddleware := createTracingMiddleware()
	metricsMiddleware := MetricsMiddleware()

	handler = metricsMiddleware(tracingMiddleware(handler))
	if len(opts.AllowedOrigins) > 0 {
		handler = createCORSMiddleware(opts.AllowedOrigins)(handler)
	}

	return &StandardServer{
		&http.Server{
			Addr:    opts.Addr,
			Handler: handler,
		},
	}
}

// createCORSMiddleware answers preflight requests itself with a success status,
// ahead of the wrapped handler.
func createCORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodPost,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler
}

// createTracingMiddleware creates a middleware that adds OpenTelemetry tracing to all requests
func createTracingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propagator := b3.New()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			tracer := otel.Tracer(_tracerName)
			ctx, span := tracer.Start(ctx, "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)

			// Inject trace context into response headers for client propagation
			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			span.SetAttributes(attribute.Int("http.status_code", wrapped.statusCode))
		})
	}
}

func GetSpanFromContext(r *http.Request) trace.Span {
	return trace.SpanFromContext(r.Context())
}

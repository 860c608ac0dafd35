package selfserve

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const instrumentationName = "github.com/GenerateNU/selfserve"

// TracingMiddleware starts a client span around each HTTP call and injects the
// trace context into the outgoing headers. A nil tp uses the global provider.
func TracingMiddleware(tp trace.TracerProvider) Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version))

	return func(req *http.Request, next RoundTripper) (*http.Response, error) {
		ctx, span := tracer.Start(req.Context(), "HTTP "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.URL.String()),
				attribute.String("server.address", req.URL.Host),
			),
		)
		defer span.End()

		req = req.WithContext(ctx)
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		resp, err := next.RoundTrip(req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return resp, err
		}

		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		if resp.StatusCode >= 500 {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}
		return resp, nil
	}
}

// RateLimitMiddleware blocks each call until limiter admits it. Waiting
// honors the request context, so a cancelled call fails without being sent.
func RateLimitMiddleware(limiter *rate.Limiter) Middleware {
	return func(req *http.Request, next RoundTripper) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		return next.RoundTrip(req)
	}
}

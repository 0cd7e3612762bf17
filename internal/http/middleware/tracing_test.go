package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

// closeCounter counts Close calls on a response body stream.
type closeCounter struct {
	io.Reader
	closes atomic.Int32
}

func (c *closeCounter) Close() error {
	c.closes.Add(1)
	return nil
}

func TestStreamTracing_LeavesBodyStream(t *testing.T) {
	sr := withSpanRecorder(t)
	body := &closeCounter{Reader: strings.NewReader("streamed")}

	var streamedAfterNext bool
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		streamedAfterNext = c.Response().IsBodyStream() && body.closes.Load() == 0
		return err
	})
	app.Use(StreamTracing("/stream"))
	app.Get("/stream", func(c *fiber.Ctx) error {
		assert.True(t, trace.SpanFromContext(c.UserContext()).SpanContext().IsValid())
		c.Context().SetBodyStream(body, 8)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/stream", nil))
	require.NoError(t, err)
	got, _ := io.ReadAll(resp.Body)

	assert.Equal(t, "streamed", string(got))
	assert.True(t, streamedAfterNext)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /stream", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", 200))
}

func TestStreamTracing_PropagatesParent(t *testing.T) {
	sr := withSpanRecorder(t)
	prevProp := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prevProp) })

	app := fiber.New()
	app.Use(StreamTracing("/stream"))
	app.Get("/stream", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/stream", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	_, err := app.Test(req)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
}

func TestStreamTracing_ErrorAndPassThrough(t *testing.T) {
	sr := withSpanRecorder(t)

	app := fiber.New()
	app.Use(StreamTracing("/stream"))
	app.Get("/stream", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "busy")
	})
	app.Get("/other", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/stream", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/other", nil))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", 503))
}

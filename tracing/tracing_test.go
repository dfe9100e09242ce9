package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitWithExporter_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter("slots-test", "v0", exporter)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, parent := StartSpan(context.Background(), "slots.drain")
	_, child := StartSpan(ctx, "slots.submit")
	child.SetInt("worker", 2).SetString("operator", "+")
	EndSpan(child, nil)
	EndSpan(parent, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	require.Equal(t, "slots.submit", spans[0].Name)
	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Contains(t, spans[0].Attributes, attribute.Int("worker", 2))
	require.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())

	require.Equal(t, "slots.drain", spans[1].Name)
	require.Equal(t, codes.Error, spans[1].Status.Code)
	require.Equal(t, "boom", spans[1].Status.Description)
}

func TestInit_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init("slots-test", "v0", &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "slots.submit")
	EndSpan(span, nil)
	require.NoError(t, shutdown(context.Background()))

	require.Contains(t, buf.String(), `"Name":"slots.submit"`)
}

func TestNilSpan(t *testing.T) {
	var s *Span
	require.NotPanics(t, func() {
		s.SetInt("a", 1).SetString("b", "c")
		EndSpan(s, nil)
	})
}

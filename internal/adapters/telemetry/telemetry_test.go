package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/ypms/internal/adapters/telemetry"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/ypms/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var (
	_ ports.Tracer = (*telemetry.OTelTracer)(nil)
	_ ports.Tracer = (*telemetry.NoOpTracer)(nil)
)

func TestOTelTracer_RecordsSpans(t *testing.T) {
	t.Parallel()

	rec := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracerWithProcessors("test", rec)

	ctx, guide := tracer.Start(context.Background(), "guide install")
	guide.SetAttribute("package", "yopr:user/pkg")
	guide.SetAttribute("steps", 3)
	guide.SetAttribute("force", true)
	guide.SetAttribute("version", struct{ Major int }{2})

	_, step := tracer.Start(ctx, "step shell")
	step.RecordError(errors.New("exit 1"))
	step.RecordError(nil)
	step.End()
	guide.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "step shell", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())

	attrs := ended[1].Attributes()
	assert.Contains(t, attrs, attribute.String("package", "yopr:user/pkg"))
	assert.Contains(t, attrs, attribute.Int("steps", 3))
	assert.Contains(t, attrs, attribute.Bool("force", true))
	assert.Contains(t, attrs, attribute.String("version", "{2}"))
}

func TestBridge_LogsSpans(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Debug("span started", gomock.Any()),
		log.EXPECT().Debug("span finished", gomock.Any()).Do(func(_ string, args ...any) {
			assert.Contains(t, args, "guide uninstall")
			assert.Contains(t, args, "error")
			assert.Contains(t, args, "blocked")
		}),
	)

	tracer := telemetry.NewOTelTracer("test", log)
	_, span := tracer.Start(context.Background(), "guide uninstall")
	span.RecordError(errors.New("blocked"))
	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "x")
	assert.Equal(t, ctx, got)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}

package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ypms/internal/adapters/detector"
	"go.trai.ch/ypms/internal/adapters/linear"
)

func TestDetectEnvironment_CIForcesLinear(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		t.Setenv("CI", v)
		assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment(), "CI=%s", v)
	}
}

func TestResolveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto keeps tui", detector.ModeTUI, "auto", detector.ModeTUI},
		{"auto keeps linear", detector.ModeLinear, "auto", detector.ModeLinear},
		{"empty keeps detection", detector.ModeTUI, "", detector.ModeTUI},
		{"tui overrides", detector.ModeLinear, "tui", detector.ModeTUI},
		{"linear overrides", detector.ModeTUI, "linear", detector.ModeLinear},
		{"ci is linear", detector.ModeTUI, "ci", detector.ModeLinear},
		{"quiet", detector.ModeTUI, "quiet", detector.ModeQuiet},
		{"unknown keeps detection", detector.ModeLinear, "fancy", detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestNewSink(t *testing.T) {
	t.Parallel()

	assert.IsType(t, linear.Noop{}, detector.NewSink(detector.ModeQuiet))
	assert.IsType(t, &linear.Sink{}, detector.NewSink(detector.ModeLinear))
	assert.IsType(t, &linear.Sink{}, detector.NewSink(detector.ModeAuto))
}

func TestSinkFactory_Quiet(t *testing.T) {
	t.Parallel()

	sink := detector.SinkFactory("quiet")()
	assert.IsType(t, linear.Noop{}, sink)
}

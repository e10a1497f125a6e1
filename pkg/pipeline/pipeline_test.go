package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotplan/plotplan/pkg/cache"
	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/plot"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"svg", "png", "pdf", "json"}))

	err := ValidateFormats([]string{"svg", "bmp"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestValidateStyle(t *testing.T) {
	assert.NoError(t, ValidateStyle("simple"))
	assert.NoError(t, ValidateStyle("blueprint"))

	err := ValidateStyle("handdrawn")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle))
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, float64(DefaultMaxSize), opts.MaxSize)
	assert.Equal(t, float64(DefaultPadding), opts.Padding)
	assert.Equal(t, []string{FormatSVG}, opts.Formats)
	assert.Equal(t, DefaultStyle, opts.Style)
	assert.Equal(t, DefaultTTL, opts.TTL)
	assert.NotNil(t, opts.Logger)

	// Idempotent
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestOptionsValidationRejectsBadValues(t *testing.T) {
	opts := Options{Formats: []string{"bmp"}}
	assert.Error(t, opts.ValidateAndSetDefaults())

	opts = Options{Style: "neon"}
	assert.Error(t, opts.ValidateAndSetDefaults())
}

func TestHashPlotDeterministic(t *testing.T) {
	p := plot.Default()

	h1, err := HashPlot(p)
	require.NoError(t, err)
	h2, err := HashPlot(p)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := HashPlot(p.Set(plot.FieldPlotWidth, 45))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), plot.Default(), Options{
		Formats: []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.NotEmpty(t, result.PlotHash)
	assert.InDelta(t, 50.0, result.Metrics.GroundCoverage, 1e-9)
	assert.Contains(t, result.Artifacts, FormatSVG)
	assert.Contains(t, result.Artifacts, FormatJSON)
	assert.False(t, result.CacheInfo.LayoutHit)
	assert.False(t, result.CacheInfo.RenderHit)
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(fileCache, nil, testLogger())
	defer runner.Close()

	ctx := context.Background()
	p := plot.Default()
	opts := Options{Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, p, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := runner.Execute(ctx, p, Options{Formats: []string{FormatSVG}})
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts[FormatSVG], second.Artifacts[FormatSVG])

	// Refresh bypasses the cache.
	third, err := runner.Execute(ctx, p, Options{Formats: []string{FormatSVG}, Refresh: true})
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.LayoutHit)
}

func TestRunnerExecuteInvalidDimensions(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), plot.Plot{}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDimensions))
}

func TestRunnerExecuteNormalizesPlot(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	p := plot.Default()
	p.SetbackFront = -10 // as if decoded from a hand-edited file

	result, err := runner.Execute(context.Background(), p, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Plot.SetbackFront)
}

func TestRunnerBuildPNG(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), plot.Default(), Options{
		Formats:  []string{FormatPNG},
		PNGScale: 1.0,
	})
	require.NoError(t, err)

	png := result.Artifacts[FormatPNG]
	require.NotEmpty(t, png)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8])
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotplan/plotplan/pkg/errors"
	"github.com/plotplan/plotplan/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (single format) or base path (multiple)
	formats  []string // output formats: "svg", "png", "pdf", "json"
	style    string   // visual style: "simple" or "blueprint"
	maxSize  float64  // fit-to-box extent in pixels
	padding  float64  // viewport margin in pixels
	pngScale float64  // PNG supersampling factor
	sets     []string // field=value overrides
	noCache  bool     // disable the layout/artifact cache
	refresh  bool     // bypass and overwrite cached results
}

// renderCommand creates the render command for generating diagram outputs.
// It reads a plot file (or the defaults), runs the pipeline, and writes one
// file per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a plot diagram to SVG, PNG, PDF, or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), blueprint")
	cmd.Flags().Float64Var(&opts.maxSize, "max-size", 0, "fit-to-box extent in pixels")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "viewport margin in pixels")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG resolution multiplier")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a plot field (field=value, repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout and artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

// runRender loads the plot, executes the pipeline, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	p, err := loadPlot(input, opts.sets)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := c.pipelineOptions()
	pipeOpts.Refresh = opts.refresh
	if len(opts.formats) > 0 {
		pipeOpts.Formats = opts.formats
	}
	if opts.style != "" {
		pipeOpts.Style = opts.style
	}
	if opts.maxSize > 0 {
		pipeOpts.MaxSize = opts.maxSize
	}
	if opts.padding > 0 {
		pipeOpts.Padding = opts.padding
	}
	if opts.pngScale > 0 {
		pipeOpts.PNGScale = opts.pngScale
	}

	tracker := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "rendering diagram")
	spinner.Start()
	result, err := runner.Execute(ctx, p, pipeOpts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()
	tracker.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	if err := writeArtifacts(result, opts.output, input); err != nil {
		return err
	}

	printRunStats(len(result.Diagram.Rects), len(result.Diagram.Labels),
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered artifact to disk and prints the paths.
// With a single format, output names the file directly; with several, output
// (or the input file name, or "plot") serves as the base path.
func writeArtifacts(result *pipeline.Result, output, input string) error {
	if len(result.Artifacts) == 1 && output != "" {
		for format, data := range result.Artifacts {
			if err := writeFile(output, data); err != nil {
				return fmt.Errorf("write %s: %w", format, err)
			}
			printFile(output)
		}
		return nil
	}

	base := artifactBase(output, input)
	for _, format := range orderedFormats(result) {
		path := base + "." + format
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		printFile(path)
	}
	return nil
}

// orderedFormats returns artifact formats in the canonical svg, png, pdf,
// json order so output listings are stable.
func orderedFormats(result *pipeline.Result) []string {
	ordered := make([]string, 0, len(result.Artifacts))
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if _, ok := result.Artifacts[f]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

// artifactBase derives the base output path for multi-format output.
func artifactBase(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return "plot-diagram"
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

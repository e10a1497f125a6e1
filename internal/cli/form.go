package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	plotio "github.com/plotplan/plotplan/pkg/io"
	"github.com/plotplan/plotplan/pkg/pipeline"
	"github.com/plotplan/plotplan/pkg/plot"
)

// formCommand creates the form command: an interactive editor for plot
// dimensions with live metrics, a layout summary, and one-key PNG export.
func (c *CLI) formCommand() *cobra.Command {
	var output string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "form [file]",
		Short: "Edit plot dimensions interactively",
		Long: `Open an interactive form over the plot fields. Metrics and the
diagram layout update live as values change. Press 'e' to export the current
diagram as PNG, 's' to save the inputs as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			p, err := loadPlot(path, nil)
			if err != nil {
				return err
			}
			return c.runForm(cmd.Context(), p, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plot-diagram", "base path for exported files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout and artifact cache")

	return cmd
}

// runForm wires the export callbacks and runs the bubbletea program.
func (c *CLI) runForm(ctx context.Context, p plot.Plot, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	model := NewFormModel(p)
	model.ExportPNG = func(p plot.Plot) (string, error) {
		opts := c.pipelineOptions()
		opts.Formats = []string{pipeline.FormatPNG}
		result, err := runner.Execute(ctx, p, opts)
		if err != nil {
			return "", err
		}
		path := output + ".png"
		if err := writeFile(path, result.Artifacts[pipeline.FormatPNG]); err != nil {
			return "", err
		}
		return fmt.Sprintf("exported %s", path), nil
	}
	model.ExportJSON = func(p plot.Plot) (string, error) {
		path := output + ".json"
		if err := plotio.ExportJSON(p, path); err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %s", path), nil
	}

	prog := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

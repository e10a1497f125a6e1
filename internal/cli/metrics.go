package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	plotio "github.com/plotplan/plotplan/pkg/io"
	"github.com/plotplan/plotplan/pkg/plot"
)

// metricsCommand creates the metrics command, which prints the derived
// planning quantities for a plot without rendering anything.
func (c *CLI) metricsCommand() *cobra.Command {
	var sets []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics [file]",
		Short: "Print the derived planning metrics for a plot",
		Long: `Compute plot area, buildable dimensions, ground coverage, and
floor-area ratio from a plot file (or the built-in defaults) and print them
as a table. Use --set to override individual fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			p, err := loadPlot(path, sets)
			if err != nil {
				return err
			}

			m := plot.Compute(p)
			if asJSON {
				return plotio.WriteMetricsJSON(m, os.Stdout)
			}

			printMetricsTable(p, m)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a plot field (field=value, repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")

	return cmd
}

// printMetricsTable renders the metrics as a bordered terminal table.
func printMetricsTable(p plot.Plot, m plot.Metrics) {
	fmt.Println(StyleTitle.Render("Plot Metrics"))
	printDetail("plot %.1f × %.1f m, road %.1f m, %g floors", p.PlotWidth, p.PlotLength, p.RoadWidth, p.Floors)
	printNewline()

	rows := [][]string{
		{"Plot area", fmt.Sprintf("%.2f m²", m.PlotArea)},
		{"Buildable width", fmt.Sprintf("%.2f m", m.BuildableWidth)},
		{"Buildable length", fmt.Sprintf("%.2f m", m.BuildableLength)},
		{"Ground floor area", fmt.Sprintf("%.2f m²", m.GroundFloorArea)},
		{"Total built-up area", fmt.Sprintf("%.2f m²", m.TotalBuiltUpArea)},
		{"Ground coverage", fmt.Sprintf("%.2f %%", m.GroundCoverage)},
		{"Floor area ratio", fmt.Sprintf("%.2f", m.FloorAreaRatio)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 1 {
				return StyleNumber.PaddingLeft(1).PaddingRight(1)
			}
			return StyleValue.PaddingLeft(1).PaddingRight(1)
		})

	fmt.Println(t.Render())
}

package plot

// Metrics holds the planning quantities derived from a plot.
// Areas are in square meters, GroundCoverage is a percentage.
type Metrics struct {
	PlotArea         float64 `json:"plot_area"`
	BuildableWidth   float64 `json:"buildable_width"`
	BuildableLength  float64 `json:"buildable_length"`
	GroundFloorArea  float64 `json:"ground_floor_area"`
	TotalBuiltUpArea float64 `json:"total_built_up_area"`
	GroundCoverage   float64 `json:"ground_coverage"`
	FloorAreaRatio   float64 `json:"floor_area_ratio"`
}

// Compute derives planning metrics from a plot.
//
// Buildable dimensions are clamped to zero when setbacks exceed the plot
// size, so the area product never flips sign. A zero plot area yields zero
// coverage and zero FAR rather than a division error - incomplete inputs
// keep the display stable instead of surfacing infinities.
func Compute(p Plot) Metrics {
	m := Metrics{
		PlotArea:        p.PlotWidth * p.PlotLength,
		BuildableWidth:  max(0, p.PlotWidth-p.SetbackLeft-p.SetbackRight),
		BuildableLength: max(0, p.PlotLength-p.SetbackFront-p.SetbackBack),
	}
	m.GroundFloorArea = m.BuildableWidth * m.BuildableLength
	m.TotalBuiltUpArea = m.GroundFloorArea * p.Floors
	if m.PlotArea > 0 {
		m.GroundCoverage = m.GroundFloorArea / m.PlotArea * 100
		m.FloorAreaRatio = m.TotalBuiltUpArea / m.PlotArea
	}
	return m
}

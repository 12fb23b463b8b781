package disp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type ColumnSummary struct {
	Expression string
	Entries    int
	Mean       float64
	StdDev     float64
	Min        float64
	Max        float64
}

// SummarizeDataset computes simple statistics of each expression over the
// finite values of d.
func SummarizeDataset(d *Dataset, exprs []string) ([]ColumnSummary, error) {
	summaries := make([]ColumnSummary, 0, len(exprs))
	for _, expr := range exprs {
		values, err := columnValues(d, expr)
		if err != nil {
			return nil, err
		}
		s := ColumnSummary{Expression: expr, Entries: len(values)}
		if len(values) > 0 {
			s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
			s.Min = floats.Min(values)
			s.Max = floats.Max(values)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (s ColumnSummary) String() string {
	return fmt.Sprintf("%-18s n=%d mean=%.4g std=%.4g min=%.4g max=%.4g",
		s.Expression, s.Entries, s.Mean, s.StdDev, s.Min, s.Max)
}

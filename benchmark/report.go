package benchmark

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

/*
WriteReport takes an io.Writer, a title and a slice of confusion matrices and
writes a table with the counts and rates of each matrix on the writer.
*/
func WriteReport(w io.Writer, title string, cs []Confusion) error {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Threshold", "TP", "TN", "FP", "FN", "Failed", "Accuracy", "Precision", "Recall", "TPR", "TNR", "FPR", "FNR"})
	configs := make([]table.ColumnConfig, 0, 13)
	for i := 1; i <= 13; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	for _, c := range cs {
		t.AppendRow(table.Row{
			fmt.Sprintf("%.2f", c.Threshold),
			c.TruePositives, c.TrueNegatives, c.FalsePositives, c.FalseNegatives, c.Failed,
			rate(c.Accuracy()), rate(c.Precision()), rate(c.Recall()),
			rate(c.TruePositiveRate()), rate(c.TrueNegativeRate()),
			rate(c.FalsePositiveRate()), rate(c.FalseNegativeRate()),
		})
	}
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func rate(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

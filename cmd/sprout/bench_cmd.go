package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sprout/benchmark"
	"github.com/pbanos/sprout/plot"
	"github.com/pbanos/sprout/sample"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type benchCmdConfig struct {
	*rootCmdConfig
	inputConfig
	ratio     float64
	threshold float64
	roc       string
	pr        string
}

func benchCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &benchCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Grow and test a tree in one go",
		Long: `Draw attribute columns, split the input into training and evaluation sets,
grow a tree from the training set, report its performance on the evaluation
set and draw its ROC and PR curves`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := cmd.Context()
			md, err := config.metadata()
			if err != nil {
				config.fail(2, err)
			}
			r := config.random()
			var columns []int
			if config.isCSV() {
				columns, err = config.selectColumns(&config.inputConfig, md, r)
				if err != nil {
					config.fail(3, err)
				}
				fmt.Printf("columns: %v\n", columns)
			}
			s, err := config.readDataset(ctx, &config.inputConfig, columns)
			if err != nil {
				config.fail(4, err)
			}
			training, evaluation, err := sample.Split(s, config.ratio, r)
			if err != nil {
				config.fail(5, err)
			}
			t, err := config.grow(ctx, training, md, columns)
			if err != nil {
				config.fail(6, fmt.Errorf("growing the tree: %v", err))
			}
			e := benchmark.Evaluate(t, evaluation, t.PositiveLabel())
			if len(e.Failures) > 0 {
				config.logger.Warn("records could not be predicted", zap.Int("failed", len(e.Failures)), zap.Error(e.Failures[0]))
			}
			err = benchmark.WriteReport(os.Stdout, fmt.Sprintf("threshold %.2f", config.threshold), []benchmark.Confusion{e.Confusion(config.threshold)})
			if err != nil {
				config.fail(7, err)
			}
			sweep := e.Sweep(benchmark.DefaultThresholds())
			err = plot.SaveROC(config.roc, benchmark.ROC(sweep))
			if err != nil {
				config.fail(8, err)
			}
			err = plot.SavePR(config.pr, benchmark.PR(sweep))
			if err != nil {
				config.fail(8, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd)
	cmd.Flags().Float64Var(&(config.ratio), "ratio", sample.DefaultTrainingRatio, "probability of a record going to the training set")
	cmd.Flags().Float64Var(&(config.threshold), "threshold", 0.5, "probability at or above which a record is classified as positive")
	cmd.Flags().StringVar(&(config.roc), "roc", "roc.png", "path to a PNG file to which the ROC curve is drawn")
	cmd.Flags().StringVar(&(config.pr), "pr", "pr.png", "path to a PNG file to which the PR curve is drawn")
	return cmd
}

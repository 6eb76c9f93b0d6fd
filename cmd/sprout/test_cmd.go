package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sprout/benchmark"
	"github.com/pbanos/sprout/plot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeConfig
	threshold float64
	sweep     bool
	roc       string
	pr        string
	strict    bool
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set, at a threshold or at every threshold from 0.00 to 0.99`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := cmd.Context()
			t, err := config.loadTree(ctx, &config.treeConfig)
			if err != nil {
				config.fail(2, err)
			}
			testingSet, err := config.readDataset(ctx, &config.inputConfig, config.columns)
			if err != nil {
				config.fail(3, err)
			}
			evaluation := benchmark.Evaluate(t, testingSet, t.PositiveLabel())
			if len(evaluation.Failures) > 0 {
				config.logger.Warn("records could not be predicted", zap.Int("failed", len(evaluation.Failures)), zap.Error(evaluation.Failures[0]))
				if config.strict {
					config.fail(4, evaluation.Failures[0])
				}
			}
			err = config.report(evaluation)
			if err != nil {
				config.fail(5, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd)
	config.treeConfig.addFlags(cmd)
	cmd.Flags().Float64Var(&(config.threshold), "threshold", 0.5, "probability at or above which a record is classified as positive")
	cmd.Flags().BoolVar(&(config.sweep), "sweep", false, "report every threshold from 0.00 to 0.99")
	cmd.Flags().StringVar(&(config.roc), "roc", "", "path to a PNG file to which the ROC curve of the sweep is drawn")
	cmd.Flags().StringVar(&(config.pr), "pr", "", "path to a PNG file to which the PR curve of the sweep is drawn")
	cmd.Flags().BoolVar(&(config.strict), "strict", false, "fail if any record cannot be predicted")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if err := tcc.inputConfig.Validate(); err != nil {
		return err
	}
	if err := tcc.treeConfig.Validate(); err != nil {
		return err
	}
	if tcc.isCSV() && len(tcc.columns) == 0 {
		return fmt.Errorf("required columns flag was not set for a CSV input")
	}
	return nil
}

func (tcc *testCmdConfig) report(e *benchmark.Evaluation) error {
	matrices := []benchmark.Confusion{e.Confusion(tcc.threshold)}
	title := fmt.Sprintf("threshold %.2f", tcc.threshold)
	if tcc.sweep || tcc.roc != "" || tcc.pr != "" {
		sweep := e.Sweep(benchmark.DefaultThresholds())
		if tcc.sweep {
			matrices, title = sweep, "threshold sweep"
		}
		if tcc.roc != "" {
			if err := plot.SaveROC(tcc.roc, benchmark.ROC(sweep)); err != nil {
				return err
			}
		}
		if tcc.pr != "" {
			if err := plot.SavePR(tcc.pr, benchmark.PR(sweep)); err != nil {
				return err
			}
		}
	}
	return benchmark.WriteReport(os.Stdout, title, matrices)
}

package main

import (
	"fmt"

	"github.com/pbanos/sprout/sample"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type splitCmdConfig struct {
	*rootCmdConfig
	inputConfig
	trainingOutput   string
	evaluationOutput string
	ratio            float64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into a training set and an evaluation set, sending each record to training with the given probability`,
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
			}
			s, err := config.readDataset(ctx, &config.inputConfig, columns)
			if err != nil {
				config.fail(4, err)
			}
			training, evaluation, err := sample.Split(s, config.ratio, r)
			if err != nil {
				config.fail(5, err)
			}
			config.logger.Info("dataset split", zap.Int("training", training.Count()), zap.Int("evaluation", evaluation.Count()))
			err = config.writeDataset(ctx, config.trainingOutput, training)
			if err != nil {
				config.fail(6, err)
			}
			err = config.writeDataset(ctx, config.evaluationOutput, evaluation)
			if err != nil {
				config.fail(7, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd)
	cmd.Flags().StringVar(&(config.trainingOutput), "training-output", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL, for the training set (required)")
	cmd.Flags().StringVar(&(config.evaluationOutput), "evaluation-output", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL, for the evaluation set (required)")
	cmd.Flags().Float64Var(&(config.ratio), "ratio", sample.DefaultTrainingRatio, "probability of a record going to the training set")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if err := scc.inputConfig.Validate(); err != nil {
		return err
	}
	if scc.trainingOutput == "" {
		return fmt.Errorf("required training-output flag was not set")
	}
	if scc.evaluationOutput == "" {
		return fmt.Errorf("required evaluation-output flag was not set")
	}
	training, err := destination(scc.trainingOutput)
	if err != nil {
		return err
	}
	evaluation, err := destination(scc.evaluationOutput)
	if err != nil {
		return err
	}
	if training == evaluation {
		return fmt.Errorf("training and evaluation outputs would both be written to %s", training)
	}
	return nil
}

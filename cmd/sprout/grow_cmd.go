package main

import (
	"context"
	"fmt"

	"github.com/pbanos/sprout"
	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/feature"
	"github.com/pbanos/sprout/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	output string
	store  bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of labelled records to estimate the probability of the positive label.`,
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
			var columns []int
			if config.isCSV() {
				columns, err = config.selectColumns(&config.inputConfig, md, config.random())
				if err != nil {
					config.fail(3, err)
				}
			}
			trainingSet, err := config.readDataset(ctx, &config.inputConfig, columns)
			if err != nil {
				config.fail(4, err)
			}
			t, err := config.grow(ctx, trainingSet, md, columns)
			if err != nil {
				config.fail(5, fmt.Errorf("growing the tree: %v", err))
			}
			if config.store {
				id, err := config.treeStore().Create(ctx, t)
				if err != nil {
					config.fail(6, err)
				}
				fmt.Println(id)
				return
			}
			err = outputTree(config.output, t)
			if err != nil {
				config.fail(6, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd)
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().BoolVar(&(config.store), "store", false, "store the tree on Redis and print its ID instead of writing it")
	return cmd
}

/*
grow grows a tree from the given dataset according to the configuration,
naming its attributes after the metadata features of the given columns.
*/
func (rc *rootCmdConfig) grow(ctx context.Context, s dataset.Dataset, md *feature.Metadata, columns []int) (*tree.Tree, error) {
	opts := []sprout.Option{sprout.WithLogger(rc.logger)}
	if md != nil && columns != nil {
		if err := md.Validate(s, columns); err != nil {
			return nil, err
		}
		names, err := md.AttributeNames(columns)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sprout.WithAttributeNames(names))
	}
	policy := rc.policy(md)
	var t *tree.Tree
	var err error
	if rc.Workers > 1 {
		t, err = sprout.GrowConcurrently(ctx, s, policy, rc.Workers, opts...)
	} else {
		t, err = sprout.Grow(s, policy, opts...)
	}
	if err != nil {
		return nil, err
	}
	rc.logger.Info("tree grown", zap.Int("records", s.Count()), zap.Int("depth", t.Depth()), zap.Int("stages", t.StageCount()), zap.Int("leaves", t.LeafCount()))
	rc.logger.Debug(t.String())
	return t, nil
}

// policy returns the growth policy of the configuration, taking the positive
// label from the metadata unless one was explicitly configured
func (rc *rootCmdConfig) policy(md *feature.Metadata) sprout.Policy {
	p := rc.Policy()
	if md != nil && md.PositiveLabel != "" && !rc.PositiveLabelSet {
		p.PositiveLabel = md.PositiveLabel
	}
	return p
}

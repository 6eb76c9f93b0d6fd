package main

import (
	"errors"
	"fmt"

	"github.com/pbanos/sprout/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeConfig
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict VALUE...",
		Short: "Predict the probability of the positive label for a record",
		Long:  `Use the loaded tree to estimate the probability of the positive label for a record given its attribute values in order`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			t, err := config.loadTree(cmd.Context(), &config.treeConfig)
			if err != nil {
				config.fail(2, err)
			}
			p, err := t.Predict(args)
			switch {
			case errors.Is(err, tree.ErrUnseenCategory):
				config.fail(3, err)
			case errors.Is(err, tree.ErrAttributeIndexOutOfRange):
				config.fail(4, err)
			case err != nil:
				config.fail(5, err)
			}
			fmt.Printf("P(%s)=%f\n", t.PositiveLabel(), p)
		},
	}
	config.treeConfig.addFlags(cmd)
	return cmd
}

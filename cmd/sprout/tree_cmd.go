package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sprout/tree/dot"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeConfig
	format string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show a tree as text, as a Graphviz DOT graph or as JSON`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			t, err := config.loadTree(cmd.Context(), &config.treeConfig)
			if err != nil {
				config.fail(2, err)
			}
			switch config.format {
			case "dot":
				err = dot.Write(t, os.Stdout)
			case "json":
				err = outputTree("", t)
			default:
				fmt.Print(t)
			}
			if err != nil {
				config.fail(3, err)
			}
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.Flags().StringVarP(&(config.format), "format", "f", "text", "output format: text, dot or json")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if err := tcc.treeConfig.Validate(); err != nil {
		return err
	}
	switch tcc.format {
	case "text", "dot", "json":
		return nil
	}
	return fmt.Errorf("unknown format %s", tcc.format)
}

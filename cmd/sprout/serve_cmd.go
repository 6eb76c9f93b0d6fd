package main

import (
	"github.com/pbanos/sprout/api"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	treeConfig
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long:  `Serve the predictions of a tree over HTTP until interrupted`,
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
			err = api.New(t, config.logger).Run(ctx, config.Listen)
			if err != nil {
				config.fail(3, err)
			}
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.Flags().String("listen", ":8080", "address to serve on")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rrcodec configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rrcodec.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.NewDefault()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

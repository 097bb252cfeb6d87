package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/InstruktAI/ClaudeConfig/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show the configured provider chain and availability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		registry := newRegistry(cfg, logger)
		names := provider.ParsePriority(cfg.Services)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRIORITY\tPROVIDER\tSTATUS")
		for i, p := range registry.Resolve(names) {
			status := "unavailable"
			if p.Available() {
				status = "ready"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, p.Name(), status)
		}
		return w.Flush()
	},
}

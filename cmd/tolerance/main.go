package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tolerance",
		Short: "Analyze engagement exports to calibrate score thresholds",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tolerance.yaml)")

	root.AddCommand(analyzeCmd())
	root.AddCommand(historyCmd())

	return root
}

func analyzeCmd() *cobra.Command {
	var (
		jsonOutput bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [export.json]",
		Short: "Report score distributions and suggested thresholds for an export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runAnalyze(path, save, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "record run summaries to the history database")
	return cmd
}

func historyCmd() *cobra.Command {
	var (
		jsonOutput bool
		platform   string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(jsonOutput, platform, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&platform, "platform", "", "filter by platform (twitter, reddit)")
	cmd.Flags().IntVar(&limit, "limit", 50, "max summaries to show")
	return cmd
}

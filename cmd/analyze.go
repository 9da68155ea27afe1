package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/fifaviz-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaSampleRows int
	anaTopValues  int
	anaGroupBy    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Summarize the cleaned player dataset as Markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.InputPath
		if len(args) == 1 {
			path = args[0]
		}
		ds, err := loadCleaned(cfg, path)
		if err != nil {
			return err
		}

		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		}
		if anaTopValues > 0 {
			opt.TopValues = anaTopValues
		}
		if cmd.Flags().Changed("group-by") {
			opt.GroupBy = anaGroupBy
		}
		rep, err := analysis.Summarize(ds, opt)
		if err != nil {
			return err
		}
		md := rep.Markdown()

		if anaOutputPath != "" {
			if err := os.WriteFile(anaOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write analysis (Markdown)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include (0 disables)")
	analyzeCmd.Flags().IntVar(&anaTopValues, "top-values", 8, "categorical values listed per column")
	analyzeCmd.Flags().StringVar(&anaGroupBy, "group-by", "Age", "column to group numeric means by (empty disables)")
}

package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/fifaviz-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fifaviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", cfg.InputPath)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "dpi: %g\n", cfg.DPI)
		fmt.Fprintf(out, "head_rows: %d\n", cfg.HeadRows)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "parallel: %t\n", cfg.Parallel)
		fmt.Fprintf(out, "write_manifest: %t\n", cfg.WriteManifest)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		switch key {
		case "input_path":
			cfg.InputPath = val
		case "output_dir":
			cfg.OutputDir = val
		case "dpi":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for dpi: %w", err)
			}
			cfg.DPI = f
		case "head_rows":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for head_rows: %w", err)
			}
			cfg.HeadRows = i
		case "delimiter":
			switch val {
			case ",", "comma":
				cfg.Delimiter = "comma"
			case ";", "semicolon":
				cfg.Delimiter = "semicolon"
			case "\t", "tab":
				cfg.Delimiter = "tab"
			case "", "auto":
				cfg.Delimiter = ""
			default:
				return fmt.Errorf("invalid delimiter: %s (use comma, semicolon, tab or auto)", val)
			}
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for sheet_index: %w", err)
			}
			cfg.SheetIndex = i
		case "parallel":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for parallel: %w", err)
			}
			cfg.Parallel = b
		case "write_manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for write_manifest: %w", err)
			}
			cfg.WriteManifest = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

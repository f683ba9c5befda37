// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"prj-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `prj config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prj configuration",
	Long: `Manage prj configuration.

Configuration is stored in:
  - Linux: ~/.config/prj/config.cue
  - macOS: ~/Library/Application Support/prj/config.cue
  - Windows: %APPDATA%\prj\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and write it to the config file.

Available keys:
  default_runtime     virtual | native
  ui.color_scheme     auto | dark | light
  ui.verbose          true | false
  picker.show_hidden  true | false
  picker.height       non-negative integer`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})
}

func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	updated := *cfg
	if err := applyConfigValue(&updated, key, value); err != nil {
		return err
	}
	if valid, errs := updated.IsValid(); !valid {
		return errs[0]
	}

	if err := config.Save(&updated); err != nil {
		return err
	}
	config.InvalidateCache()

	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(key), value)
	return nil
}

// applyConfigValue sets the field named by key on cfg from its string form.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "default_runtime":
		cfg.DefaultRuntime = config.RuntimeMode(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		cfg.UI.Verbose = b
	case "picker.show_hidden":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		cfg.Picker.ShowHidden = b
	case "picker.height":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected an integer", value, key)
		}
		cfg.Picker.Height = n
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path, ok := configFilePath(); ok {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("default_runtime"), valueStyle.Render(string(cfg.DefaultRuntime)))
	fmt.Printf("%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("%s: %v\n", keyStyle.Render("ui.verbose"), cfg.UI.Verbose)
	fmt.Printf("%s: %v\n", keyStyle.Render("picker.show_hidden"), cfg.Picker.ShowHidden)
	fmt.Printf("%s: %d\n", keyStyle.Render("picker.height"), cfg.Picker.Height)

	return nil
}

func initConfig() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return err
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Printf("%s Configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

// configFilePath reports the config file path when one exists on disk.
func configFilePath() (string, bool) {
	if cfgFile != "" {
		return cfgFile, true
	}
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fukushu-cli/fukushu/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		settings, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		fmt.Printf("# %s\n", path)
		if err := toml.NewEncoder(os.Stdout).Encode(settings); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}

		for _, adv := range settings.Validate() {
			fmt.Fprintf(os.Stderr, "\nwarning: %s: %s\n", adv.Option, adv.Message)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.Save(path, config.Defaults()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

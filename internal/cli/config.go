package cli

import (
	"fmt"

	"github.com/dpgen-labs/dpgen/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.dpgen/config.yaml.

Keys:
  date_format       Go time layout for %date% (default 2006/01/02)
  data_version      latest, latest-snapshot or a game version such as 1.21.4
  download_timeout  limit for each vanilla data download (default 30s)
  github_token      token for higher GitHub API rate limits (or GITHUB_TOKEN)
  github_api_url    GitHub API endpoint (default https://api.github.com)
  templates_file    YAML file with custom templates (default ~/.dpgen/templates.yaml)
  line_ending       lf or crlf (default lf)
  pack_format       pack.mcmeta format override; 0 derives it from data_version`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys {
			value := config.Get(key)
			if key == config.KeyGitHubToken && value != "" {
				value = "********"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		}
		return nil
	},
}

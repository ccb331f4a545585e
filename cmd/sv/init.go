package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/scholarvest/internal/config"
	"github.com/matsen/scholarvest/internal/roster"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

// InitResponse is the response for the init command.
type InitResponse struct {
	Status     string `json:"status"`
	ConfigPath string `json:"config_path"`
	RosterPath string `json:"roster_path"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file and roster template",
	Long: `Write scholarvest.yaml with the default configuration and a
faculty.csv roster template into the current directory. Existing files
are left alone unless --force is given.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	const (
		configPath = "scholarvest.yaml"
		rosterPath = "faculty.csv"
	)

	for _, path := range []string{configPath, rosterPath} {
		if _, err := os.Stat(path); err == nil && !initForce {
			exitWithError(ExitError, "%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		exitWithError(ExitError, "encoding config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", configPath, err)
	}

	template := fmt.Sprintf("%s,%s\nAda Lovelace,https://scholar.google.com/citations?hl=en&user=REPLACE_ME\n",
		roster.DefaultNameColumn, roster.DefaultURLColumn)
	if err := os.WriteFile(rosterPath, []byte(template), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", rosterPath, err)
	}

	resp := InitResponse{Status: "initialized", ConfigPath: configPath, RosterPath: rosterPath}
	if humanOutput {
		outputHuman("Wrote %s and %s\n", resp.ConfigPath, resp.RosterPath)
		return nil
	}
	return outputJSON(resp)
}

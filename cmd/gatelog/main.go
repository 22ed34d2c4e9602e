package main

import (
	"os"

	"github.com/groblegark/gatelog/internal/client"
	"github.com/groblegark/gatelog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool

	apiClient *client.Client
)

func defaultServerURL() string {
	if s := os.Getenv("GATELOG_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultAuthToken() string {
	if t := os.Getenv("GATELOG_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

var rootCmd = &cobra.Command{
	Use:   "gatelog <command>",
	Short: "CLI client for the library visit log service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		apiClient = client.New(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if apiClient != nil {
			apiClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultAuthToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "visits", Title: "Visits:"},
		&cobra.Group{ID: "stats", Title: "Statistics:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Visits
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(visitorsCmd)

	// Statistics
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(rangeCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

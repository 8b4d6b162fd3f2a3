package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	serverURL   string
	showVersion bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prioribin-cli",
		Short: "Operate a prioribin server from the terminal",
		Long: `prioribin-cli talks to a running prioribin server: it registers bins,
lists them with their priority, shows a bin's history and simulates fill sensors.`,
		Run: func(cmd *cobra.Command, args []string) {
			if showVersion {
				fmt.Printf("prioribin-cli version %s\n", Version)
				return
			}
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServerURL(), "Base URL of the prioribin HTTP server")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newRegisterCmd(), newBinsCmd(), newHistoryCmd(), newSimulateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultServerURL() string {
	if url := os.Getenv("PRIORIBIN_SERVER"); url != "" {
		return url
	}
	return "http://127.0.0.1:5000"
}

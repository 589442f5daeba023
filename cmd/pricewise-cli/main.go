package main

import (
	"os"
	"pricewise-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pricewise-cli",
	Short: "Search for product prices from the terminal.",
}

func main() {
	telemetry.InitSlog(false)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"rihla/config"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rihla",
	Short: "Travel itinerary generation service",
	Long: `rihla builds day-by-day travel itineraries from a destination catalog,
using an OpenAI compatible model when one is configured and a local
synthesizer otherwise.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml); environment variables take precedence")
	rootCmd.AddCommand(serveCmd, sweepCmd, seedCmd, eventsCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

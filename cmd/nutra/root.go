package nutra

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutra",
	Short: "nutra tracks nutrition and turns your logs into insights",
	Long:  "nutra is a local-first nutrition tracking CLI with meals, exercise, water, sleep, and weight logging, plus a rule-based insights engine and achievement system.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}

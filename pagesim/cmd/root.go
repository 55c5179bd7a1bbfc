// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults.
const (
	FramesEnv = "PAGESIM_FRAMES"
	PortEnv   = "PAGESIM_PORT"
	DBEnv     = "PAGESIM_DB"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates FIFO, LRU and Optimal page replacement.",
	Long: `pagesim simulates FIFO, LRU and Optimal page replacement over a ` +
		`reference string and explains every decision. It can compare the ` +
		`policies, search for Bélády's anomaly, record runs in SQLite and ` +
		`serve an interactive player in the browser.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	loadEnv()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

// loadEnv reads a .env file from the working directory, if there is one.
func loadEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}
}

// envInt returns the integer value of an environment variable, or def when
// the variable is unset or malformed.
func envInt(name string, def int) int {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	value, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: not an integer\n", name, str)
		return def
	}

	return value
}

// intFlagOrEnv returns the flag value if it was given on the command line,
// then the environment variable, then the flag default.
func intFlagOrEnv(cmd *cobra.Command, flag, env string) int {
	value, _ := cmd.Flags().GetInt(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}

	return envInt(env, value)
}

// stringFlagOrEnv is the string version of intFlagOrEnv.
func stringFlagOrEnv(cmd *cobra.Command, flag, env string) string {
	value, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}

	if str, ok := os.LookupEnv(env); ok {
		return str
	}

	return value
}

func frameCountMustBeValid(frames int) error {
	if frames < 1 {
		return fmt.Errorf("frame count must be at least 1, got %d", frames)
	}

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive player and the HTTP API.",
	Long: "`serve --port 8080 --open` starts the monitoring server and " +
		"blocks until interrupted. Runs requested through the server can " +
		"be recorded with --record and written to --trace-file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		port := intFlagOrEnv(cmd, "port", PortEnv)
		open, _ := cmd.Flags().GetBool("open")

		builder := simulation.MakeBuilder()
		if port > 0 {
			builder = builder.WithMonitorPort(port)
		}

		builder, traceFile, err := applySessionFlags(cmd, builder)
		if err != nil {
			return err
		}

		s := builder.Build()
		defer s.Terminate()

		if open {
			url := "http://localhost:" + strconv.Itoa(s.MonitorPort())

			err := browser.OpenURL(url)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open %s: %v\n", url, err)
			}
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)

		<-stop
		fmt.Fprintf(os.Stderr, "Stopping simulation %s after %d runs\n",
			s.ID(), len(s.RunIDs()))

		if traceFile != nil {
			return traceFile.Finish()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0, "Port of the server (default from "+
		PortEnv+", or a random port)")
	serveCmd.Flags().Bool("open", false, "Open the player in a browser")
	addSessionFlags(serveCmd)
}

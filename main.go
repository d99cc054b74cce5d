package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rentlink",
		Short:         "RentLink application state engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "dotenv files to load before reading the environment")
	rootCmd.PersistentFlags().Bool("quiet", false, "discard log output")

	rootCmd.AddCommand(
		serveCmd(),
		describeCmd(),
		interpretCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/cardcsv/internal/cli"
	"codeberg.org/snonux/cardcsv/internal/logging"
	"codeberg.org/snonux/cardcsv/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := newRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(flags *cli.Flags) *cobra.Command {
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(args, flags)
	}
	return rootCmd
}

func runCommand(args []string, flags *cli.Flags) error {
	cli.LoadConfig(flags, args)

	logger, err := logging.New(logging.Config{Level: logging.LevelFor(flags.Verbose)})
	if err != nil {
		return err
	}
	defer logger.Sync()

	proc := processor.NewProcessor(flags, logger)
	if flags.CheckOnly {
		_, err = proc.Check()
		return err
	}
	_, err = proc.Run()
	return err
}

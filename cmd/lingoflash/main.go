package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lingoflash/internal/cli"
	"codeberg.org/snonux/lingoflash/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	if flags.FillPhonetics {
		if err := proc.FillPhonetics(ctx); err != nil {
			return err
		}
	}

	switch {
	case flags.Archive:
		archived, err := proc.ArchiveExport()
		if err != nil {
			return err
		}
		fmt.Printf("Export directory archived to: %s\n", archived)
		return nil

	case flags.ListModels:
		return proc.ListModels(ctx)

	case flags.List:
		return proc.ListDeck()

	case flags.Speak != "":
		return proc.SpeakWord(ctx, flags.Speak)

	case flags.GenerateAnki:
		fmt.Printf("Generating Anki import file...\n")
		outputPath, err := proc.ExportDeck(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Anki package created: %s\n", outputPath)
		return nil

	default:
		// No mode selected - launch GUI mode by default
		return proc.RunGUIMode()
	}
}

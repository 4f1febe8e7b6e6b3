package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	fix_cmd "github.com/walteh/phpfix/cmd/phpfix/fix"
	list_rules "github.com/walteh/phpfix/cmd/phpfix/list-rules"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "phpfix",
		Short: "A fixer for PHP coding standards",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(fix_cmd.NewFixCommand())
	rootCmd.AddCommand(list_rules.NewListRulesCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

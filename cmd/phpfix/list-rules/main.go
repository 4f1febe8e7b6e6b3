package list_rules

import (
	"github.com/spf13/cobra"

	"github.com/walteh/phpfix/pkg/rules"
)

func NewListRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-rules",
		Short: "print the built-in rules and their documentation",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		registry, err := rules.Registry()
		if err != nil {
			return err
		}
		for _, f := range registry.All() {
			meta := f.Description()
			cmd.Printf("%s (priority %d)\n", f.Name(), f.Priority())
			cmd.Printf("  %s\n", meta.Summary)
			for _, sample := range meta.Samples {
				cmd.Printf("    %-40q => %q\n", sample.Before, sample.After)
			}
			cmd.Println()
		}
		return nil
	}

	return cmd
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/roster/internal/tui"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Long: `Open the interactive menu. Quitting with q or the Quit entry saves the file;
ctrl+c leaves without saving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.load()
			if err != nil {
				return err
			}

			model := tui.NewModel(reg, a.store,
				tui.WithLabels(a.cfg.Enriched.Labels()),
				tui.WithLogger(a.logger.WithContext(a.ctx).Named("tui").Underlying()),
			)
			program := tea.NewProgram(model,
				tea.WithContext(a.ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = program.Run()
			return err
		},
	}
}

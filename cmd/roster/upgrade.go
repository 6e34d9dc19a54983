package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

func newUpgradeCmd(a *app) *cobra.Command {
	upgradeCmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Replace a record with a richer variant",
		Long: `Replace record <n> (as numbered by "roster list") with an enriched person or
a staff member. Name, age and descriptor are kept.

Examples:
  roster upgrade enriched 2 --extra1 12000 --extra2 4500
  roster upgrade staff 3 --email kim@school.dk --phone 12345678 --subject Math`,
	}

	var extra enrichedFlags
	enrichedCmd := &cobra.Command{
		Use:   "enriched <n>",
		Short: "Upgrade to an enriched person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.upgrade(cmd, args[0],
				registry.Enrich(extra.extra1, extra.extra2, person.WithLabels(a.cfg.Enriched.Labels())))
		},
	}
	extra.register(enrichedCmd)

	var staff staffFlags
	staffCmd := &cobra.Command{
		Use:   "staff <n>",
		Short: "Upgrade to a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.upgrade(cmd, args[0], registry.Staff(staff.email, staff.phone, staff.subjects...))
		},
	}
	staff.register(staffCmd)

	upgradeCmd.AddCommand(enrichedCmd, staffCmd)
	return upgradeCmd
}

func (a *app) upgrade(cmd *cobra.Command, arg string, up registry.Upgrader) error {
	var (
		rec   person.Record
		index int
	)
	err := a.update(func(reg *registry.Registry) error {
		var err error
		if index, err = parseIndex(arg, reg); err != nil {
			return err
		}
		rec, err = reg.Upgrade(index, up)
		return err
	})
	if err != nil {
		return err
	}

	a.logger.Info(a.ctx, "record upgraded", zap.Int("index", index+1), zap.Stringer("kind", rec.Kind()))
	fmt.Fprintf(cmd.OutOrStdout(), "Upgraded #%d: %s\n", index+1, rec.Render())
	return nil
}

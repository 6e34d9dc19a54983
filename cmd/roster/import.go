package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/registry"
	"github.com/fyrsmithlabs/roster/internal/seed"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <seed.toml>",
		Short: "Append the records of a TOML seed file",
		Long: `Append every [[person]] entry of a TOML seed file and save. If any entry is
invalid nothing is imported.

Example seed file:
  [[person]]
  type = "StaffPerson"
  name = "Kim"
  age = 45
  email = "kim@school.dk"
  phone = "12 34 56 78"
  subjects = ["Math", "Art"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := seed.NewImporter()
			importer.Labels = a.cfg.Enriched.Labels()
			records, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}

			var total int
			err = a.update(func(reg *registry.Registry) error {
				for _, rec := range records {
					if err := reg.Append(rec); err != nil {
						return err
					}
				}
				total = reg.Len()
				return nil
			})
			if err != nil {
				return err
			}

			a.logger.Info(a.ctx, "seed imported", zap.Int("imported", len(records)), zap.Int("total", total))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%d total).\n", len(records), total)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

// baseFlags are shared by every add subcommand.
type baseFlags struct {
	name       string
	age        string
	descriptor string
}

func (f *baseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "name")
	cmd.Flags().StringVar(&f.age, "age", "", "age in whole years")
	cmd.Flags().StringVar(&f.descriptor, "descriptor", "", "free-text descriptor (gender, address, ...)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")
}

func (f *baseFlags) person() (person.Person, error) {
	age, err := person.ParseAge(f.age)
	if err != nil {
		return person.Person{}, err
	}
	return person.NewPersonWithAge(f.name, age, f.descriptor).Base(), nil
}

// staffFlags hold the contact details of a staff member.
type staffFlags struct {
	email    string
	phone    string
	subjects []string
}

func (f *staffFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number, 8 digits")
	cmd.Flags().StringArrayVar(&f.subjects, "subject", nil, "subject taught (repeatable)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
}

// enrichedFlags hold the two free-text attributes.
type enrichedFlags struct {
	extra1 string
	extra2 string
}

func (f *enrichedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.extra1, "extra1", "", "first attribute (label from enriched.label1)")
	cmd.Flags().StringVar(&f.extra2, "extra2", "", "second attribute (label from enriched.label2)")
}

func newAddCmd(a *app) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Long: `Add a person, an enriched person or a staff member and save the file.

Examples:
  roster add person --name Ada --age 30 --descriptor F
  roster add enriched --name Bo --age 67 --extra1 12000 --extra2 4500
  roster add staff --name Kim --age 45 --email kim@school.dk --phone 12345678 --subject Math --subject Art`,
	}
	addCmd.AddCommand(newAddPersonCmd(a), newAddEnrichedCmd(a), newAddStaffCmd(a))
	return addCmd
}

func newAddPersonCmd(a *app) *cobra.Command {
	var base baseFlags
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Add a plain person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := base.person()
			if err != nil {
				return err
			}
			return a.add(cmd, &p)
		},
	}
	base.register(cmd)
	return cmd
}

func newAddEnrichedCmd(a *app) *cobra.Command {
	var (
		base  baseFlags
		extra enrichedFlags
	)
	cmd := &cobra.Command{
		Use:   "enriched",
		Short: "Add a person with two extra attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := base.person()
			if err != nil {
				return err
			}
			return a.add(cmd, person.NewEnrichedPerson(p, extra.extra1, extra.extra2,
				person.WithLabels(a.cfg.Enriched.Labels())))
		},
	}
	base.register(cmd)
	extra.register(cmd)
	return cmd
}

func newAddStaffCmd(a *app) *cobra.Command {
	var (
		base  baseFlags
		staff staffFlags
	)
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Add a staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := base.person()
			if err != nil {
				return err
			}
			s, err := person.NewStaffPerson(p, staff.email, staff.phone, staff.subjects...)
			if err != nil {
				return err
			}
			return a.add(cmd, s)
		},
	}
	base.register(cmd)
	staff.register(cmd)
	return cmd
}

func (a *app) add(cmd *cobra.Command, rec person.Record) error {
	var n int
	err := a.update(func(reg *registry.Registry) error {
		if err := reg.Append(rec); err != nil {
			return err
		}
		n = reg.Len()
		return nil
	})
	if err != nil {
		return err
	}

	a.logger.Info(a.ctx, "record added", zap.Stringer("kind", rec.Kind()), zap.Int("index", n))
	fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", n, rec.Render())
	return nil
}

// parseIndex converts a 1-based record number into a registry index.
func parseIndex(arg string, reg *registry.Registry) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid record number %q", arg)
	}
	if n < 1 || n > reg.Len() {
		return 0, fmt.Errorf("record number %d: %w (have %d records)", n, registry.ErrIndexOutOfRange, reg.Len())
	}
	return n - 1, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

func newSubjectCmd(a *app) *cobra.Command {
	subjectCmd := &cobra.Command{
		Use:   "subject",
		Short: "Assign or unassign a staff member's subjects",
	}

	subjectCmd.AddCommand(
		&cobra.Command{
			Use:   "add <n> <subject>",
			Short: "Assign a subject",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if args[1] == "" {
					return errors.New("subject name cannot be empty")
				}
				return a.editSubjects(cmd, args[0], func(s *person.StaffPerson) string {
					if !s.AddSubject(args[1]) {
						return fmt.Sprintf("%s already teaches %s.", s.Name(), args[1])
					}
					return fmt.Sprintf("%s now teaches %s.", s.Name(), args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <n> <subject>",
			Short: "Unassign a subject",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.editSubjects(cmd, args[0], func(s *person.StaffPerson) string {
					if !s.RemoveSubject(args[1]) {
						return fmt.Sprintf("%s does not teach %s.", s.Name(), args[1])
					}
					return fmt.Sprintf("%s no longer teaches %s.", s.Name(), args[1])
				})
			},
		},
	)
	return subjectCmd
}

// editSubjects applies edit to staff record <n> and saves. Duplicate adds
// and removals of unassigned subjects are reported, not treated as errors.
func (a *app) editSubjects(cmd *cobra.Command, arg string, edit func(*person.StaffPerson) string) error {
	var msg string
	err := a.update(func(reg *registry.Registry) error {
		index, err := parseIndex(arg, reg)
		if err != nil {
			return err
		}
		rec, err := reg.Get(index)
		if err != nil {
			return err
		}
		staff, ok := rec.(*person.StaffPerson)
		if !ok {
			return fmt.Errorf("record %d is a %s, not a StaffPerson", index+1, rec.Kind())
		}
		msg = edit(staff)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/roster/internal/person"
)

// recordView is the JSON shape of one record in `roster list --json`.
type recordView struct {
	Number     int      `json:"number"`
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Descriptor string   `json:"descriptor"`
	Extra1     string   `json:"extra1,omitempty"`
	Extra2     string   `json:"extra2,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
}

func viewOf(number int, rec person.Record) recordView {
	v := recordView{
		Number:     number,
		Type:       rec.Kind().String(),
		Name:       rec.Name(),
		Age:        rec.Age().Years(),
		Descriptor: rec.Descriptor(),
	}
	switch r := rec.(type) {
	case *person.EnrichedPerson:
		v.Extra1, v.Extra2 = r.Extra1(), r.Extra2()
	case *person.StaffPerson:
		v.Email, v.Phone, v.Subjects = r.Email().String(), r.Phone().String(), r.Subjects()
	}
	return v
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			records := reg.All()

			if asJSON {
				views := make([]recordView, 0, len(records))
				for i, rec := range records {
					views = append(views, viewOf(i+1, rec))
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No people registered yet.")
				return nil
			}
			for i, rec := range records {
				fmt.Fprintf(out, "%d. %s\n", i+1, rec.Render())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

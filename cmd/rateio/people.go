package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newPeopleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "Manage the people bills are split between",
	}

	cmd.AddCommand(newPeopleAddCommand(), newPeopleListCommand())

	return cmd
}

func newPeopleAddCommand() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := openServices()
			if err != nil {
				return err
			}
			defer db.Close()

			p, err := svc.People.Create(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) %s\n", p.Name, p.Color, p.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex colour, next palette colour when empty")

	return cmd
}

func newPeopleListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, db, err := openServices()
			if err != nil {
				return err
			}
			defer db.Close()

			people, err := svc.People.List(cmd.Context(), !all)
			if err != nil {
				return err
			}

			t := table.New().Headers("NAME", "COLOR", "ACTIVE", "ID")
			for _, p := range people {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(p.Color)
				t.Row(p.Name, swatch, fmt.Sprint(p.Active), p.ID.String())
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive people")

	return cmd
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func newSessionsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.newOfflineApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.Store().Sessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			printSessions(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func printSessions(w io.Writer, list []sessionstore.Summary) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d session(s)", len(list))))
	for _, s := range list {
		created := "-"
		if !s.CreatedAt.IsZero() {
			created = s.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		kind := s.Kind
		if kind == "" {
			kind = "unknown"
		}
		fmt.Fprintf(w, "  %s  %s  %s  %s files\n",
			idStyle.Render(s.ID),
			kindStyle.Render(kind),
			dateStyle.Render(created),
			countStyle.Render(strconv.Itoa(s.FileCount)),
		)
	}
}

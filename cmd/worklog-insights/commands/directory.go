package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects visible to the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := reports.Projects(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), projects)
		},
	}
}

func newUsersCmd() *cobra.Command {
	var project, start, end string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List people who logged work in a range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := reports.Users(cmd.Context(), project, start, end)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key or ALL")
	cmd.Flags().StringVar(&start, "start", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

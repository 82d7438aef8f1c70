package commands

import (
	"worklog-insights/internal/report"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a report request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := requestSchema()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), schema)
		},
	}
}

func requestSchema() (*jsonschema.Schema, error) {
	return jsonschema.For[report.Request](nil)
}

package commands

import (
	"worklog-insights/internal/config"
	"worklog-insights/internal/jira"
	"worklog-insights/internal/logging"
	"worklog-insights/internal/mcp"
	"worklog-insights/internal/report"
	"worklog-insights/internal/worklog"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	reports *report.Service
)

var rootCmd = &cobra.Command{
	Use:   "worklog-insights",
	Short: "Worklog reports for Jira, served over MCP or printed on the command line",
	Long: `Aggregates Jira worklogs over a date range into worklog listings, team analytics,
project performance, resource utilization and an executive summary.

Without a subcommand the binary runs as an MCP server on stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		client, err := jira.NewClient(cfg.Jira)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Jira client")
		}
		reports = report.NewService(worklog.NewFetcher(client, cfg.Fetch), cfg.Report)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("worklog-insights starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		return mcp.NewServer(reports, Version).Serve(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(newReportCmd(), newProjectsCmd(), newUsersCmd(), newSchemaCmd())
}

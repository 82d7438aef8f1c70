// Package mcp exposes the worklog reports as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"

	"worklog-insights/internal/report"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Reporter is the part of the report service the tools call.
type Reporter interface {
	Generate(ctx context.Context, req report.Request) (report.Result, error)
	Projects(ctx context.Context) ([]report.Project, error)
	Users(ctx context.Context, project, start, end string) ([]report.User, error)
}

// Server holds the state for the MCP server.
type Server struct {
	reports Reporter
	sdk     *sdkmcp.Server
}

// NewServer creates a new MCP server with every report tool registered.
func NewServer(reports Reporter, version string) *Server {
	s := &Server{
		reports: reports,
		sdk:     sdkmcp.NewServer(&sdkmcp.Implementation{Name: "worklog-insights", Version: version}, nil),
	}
	s.registerTools()
	return s
}

// Serve runs the server over stdin/stdout until the client disconnects or
// ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Msg("MCP server listening on stdio")
	return s.sdk.Run(ctx, &sdkmcp.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t sdkmcp.Transport) (*sdkmcp.ServerSession, error) {
	return s.sdk.Connect(ctx, t, nil)
}

// Package mcpserver exposes the answer finder as MCP tools over stdio.
package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"yashubustudio/answerfinder/finder"
)

const (
	// ServerName is the MCP server name
	ServerName = "answerfinder"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"

	ToolGetAnswer     = "get_answer"
	ToolFindBestMatch = "find_best_match"
	ToolCorpusStatus  = "corpus_status"
)

// Server wraps the MCP server around a finder.Service.
type Server struct {
	mcp     *server.MCPServer
	service *finder.Service
	logger  *zap.Logger
}

// New creates the MCP server and registers its tools.
func New(service *finder.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		service: service,
		logger:  logger,
	}
	s.mcp.AddTool(getAnswerTool(), s.handleGetAnswer)
	s.mcp.AddTool(findBestMatchTool(), s.handleFindBestMatch)
	s.mcp.AddTool(corpusStatusTool(), s.handleCorpusStatus)
	return s
}

// Serve runs the server on stdio until stdin closes or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", zap.String(finder.FieldComponent, "mcp"))
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

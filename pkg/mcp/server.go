package mcp

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	inktrace "github.com/inktrace/inktrace/pkg"
	pkgdb "github.com/inktrace/inktrace/pkg/db"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

type InktraceMCPServer struct {
	mcpServer   *server.MCPServer
	db          *sql.DB
	logger      zerolog.Logger
	journalMode string
	DbPath      string
}

// NewInktraceMCPServer opens the database described by opts, brings its
// schema up to date and registers every tool. opts.Path must already be
// resolved.
func NewInktraceMCPServer(ctx context.Context, opts pkgdb.Options, logger zerolog.Logger) (*InktraceMCPServer, error) {
	s := server.NewMCPServer(
		"Inktrace MCP Server",
		inktrace.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.OpenDBConnection(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.EnsureSchema(ctx, dbConn, opts.Path, logger); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", opts.Path, err)
	}

	RegisterTools(s, dbConn)

	return &InktraceMCPServer{
		mcpServer:   s,
		db:          dbConn,
		logger:      logger,
		journalMode: opts.JournalMode,
		DbPath:      opts.Path,
	}, nil
}

// Start runs the stdio event loop until stdin closes.
func (s *InktraceMCPServer) Start() error {
	s.logger.Info().Str("db", s.DbPath).Msg("serving MCP over stdio")
	errLogger := log.New(s.logger.With().Str("component", "mcp-stdio").Logger(), "", 0)
	return server.ServeStdio(s.mcpServer, server.WithErrorLogger(errLogger))
}

// DB returns the underlying *sql.DB.
func (s *InktraceMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *InktraceMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *InktraceMCPServer) Close() error {
	if s.db == nil {
		return nil
	}
	if strings.EqualFold(s.journalMode, "WAL") {
		// Fold the -wal file back into the main database before exit.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			s.logger.Warn().Err(err).Msg("WAL checkpoint failed during close")
		}
	}
	return s.db.Close()
}

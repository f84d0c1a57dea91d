// Package mcp exposes the problem catalog to MCP clients. Every tool works
// on the same session, so an agent sees the single-solve guard the
// interactive shells see.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/Shy5ta/studentSuite/internal/catalog"
	"github.com/Shy5ta/studentSuite/internal/session"
)

const (
	ServerName    = "studentsuite"
	ServerVersion = "1.0.0"
)

type tools struct {
	sess *session.Session
	cat  *catalog.Catalog
}

// NewServer creates an MCP server with the catalog and solver tools.
func NewServer(sess *session.Session, cat *catalog.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	t := &tools{sess: sess, cat: cat}
	t.registerListCourses(s)
	t.registerListTopics(s)
	t.registerDescribeProblem(s)
	t.registerSolve(s)

	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(sess *session.Session, cat *catalog.Catalog) error {
	return server.ServeStdio(NewServer(sess, cat))
}

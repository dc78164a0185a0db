// Package mcp exposes dataset operations as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/dirlock"
	"github.com/aki/dsrename/internal/core/logger"
)

// Options configures a Server.
type Options struct {
	Version string
	// Order is used when a call does not pass "sort".
	Order dataset.SortOrder
	// Locker guards rename_dataset. Nil disables locking.
	Locker *dirlock.Locker
	Logger logger.Logger
}

// Server implements the MCP server using mcp-go
type Server struct {
	mcpServer *server.MCPServer
	order     dataset.SortOrder
	locker    *dirlock.Locker
	log       logger.Logger
}

// NewServer creates a server with all tools registered.
func NewServer(opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Order == "" {
		opts.Order = dataset.SortLexical
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	s := &Server{
		mcpServer: server.NewMCPServer("dsrename", opts.Version, server.WithLogging()),
		order:     opts.Order,
		locker:    opts.Locker,
		log:       opts.Logger,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sortOpt := mcp.WithString("sort",
		mcp.Description("Ordering used to assign numbers (default from configuration)"),
		mcp.Enum(string(dataset.SortLexical), string(dataset.SortNatural)),
	)

	s.mcpServer.AddTool(mcp.NewTool("plan_rename",
		mcp.WithDescription(GetEnhancedDescription("plan_rename")),
		mcp.WithString("dir", mcp.Description("Directory holding the files"), mcp.Required()),
		mcp.WithString("prefix", mcp.Description("Name prefix, usually the class label"), mcp.Required()),
		sortOpt,
	), s.handlePlanRename)

	s.mcpServer.AddTool(mcp.NewTool("rename_dataset",
		mcp.WithDescription(GetEnhancedDescription("rename_dataset")),
		mcp.WithString("dir", mcp.Description("Directory holding the files"), mcp.Required()),
		mcp.WithString("prefix", mcp.Description("Name prefix, usually the class label"), mcp.Required()),
		sortOpt,
	), s.handleRenameDataset)

	s.mcpServer.AddTool(mcp.NewTool("verify_dataset",
		mcp.WithDescription(GetEnhancedDescription("verify_dataset")),
		mcp.WithString("dir", mcp.Description("Directory holding the files"), mcp.Required()),
		mcp.WithString("prefix", mcp.Description("Expected name prefix"), mcp.Required()),
	), s.handleVerifyDataset)

	s.mcpServer.AddTool(mcp.NewTool("list_classes",
		mcp.WithDescription(GetEnhancedDescription("list_classes")),
		mcp.WithString("root", mcp.Description("Dataset root containing one directory per class"), mcp.Required()),
	), s.handleListClasses)
}

// Start serves requests on stdin/stdout until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting MCP server", "transport", "stdio")
	return server.ServeStdio(s.mcpServer)
}

// stringArg returns a required string argument.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", InvalidParameterError(name, "non-empty string")
	}
	return v, nil
}

// dirArg returns a required directory argument made absolute.
func dirArg(args map[string]any, name string) (string, error) {
	v, err := stringArg(args, name)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	return abs, nil
}

func (s *Server) orderArg(args map[string]any) (dataset.SortOrder, error) {
	v, ok := args["sort"].(string)
	if !ok || v == "" {
		return s.order, nil
	}
	order, err := dataset.ParseSortOrder(v)
	if err != nil {
		return "", InvalidParameterError("sort", "lexical or natural")
	}
	return order, nil
}

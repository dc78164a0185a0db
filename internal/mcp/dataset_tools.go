package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/dsrename/internal/core/classes"
	"github.com/aki/dsrename/internal/core/dataset"
)

func (s *Server) renamer(order dataset.SortOrder) *dataset.Renamer {
	return dataset.NewRenamer(
		dataset.WithLogger(s.log),
		dataset.WithSortOrder(order),
	)
}

func (s *Server) handlePlanRename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dir, err := dirArg(args, "dir")
	if err != nil {
		return nil, err
	}
	prefix, err := stringArg(args, "prefix")
	if err != nil {
		return nil, err
	}
	order, err := s.orderArg(args)
	if err != nil {
		return nil, err
	}

	plan, err := s.renamer(order).Plan(dir, prefix)
	if err != nil {
		return nil, datasetError(dir, err)
	}
	return createEnhancedResult("plan_rename", plan, nil)
}

func (s *Server) handleRenameDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dir, err := dirArg(args, "dir")
	if err != nil {
		return nil, err
	}
	prefix, err := stringArg(args, "prefix")
	if err != nil {
		return nil, err
	}
	order, err := s.orderArg(args)
	if err != nil {
		return nil, err
	}

	if s.locker != nil {
		lock, err := s.locker.Acquire(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				s.log.Warn("failed to release lock", "dir", dir, "error", err)
			}
		}()
	}

	res, err := s.renamer(order).Rename(ctx, dir, prefix)
	if err != nil {
		return nil, datasetError(dir, err)
	}
	return createEnhancedResult("rename_dataset", res, &ToolResultMetadata{
		InferredParameters: map[string]string{"sort": string(order)},
	})
}

func (s *Server) handleVerifyDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dir, err := dirArg(args, "dir")
	if err != nil {
		return nil, err
	}
	prefix, err := stringArg(args, "prefix")
	if err != nil {
		return nil, err
	}

	report, err := dataset.Verify(dir, prefix)
	if err != nil {
		return nil, datasetError(dir, err)
	}

	type verifyResult struct {
		*dataset.Report
		Normalized bool `json:"normalized"`
	}
	return createEnhancedResult("verify_dataset", verifyResult{Report: report, Normalized: report.Normalized()}, nil)
}

func (s *Server) handleListClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	root, err := dirArg(args, "root")
	if err != nil {
		return nil, err
	}

	list, err := classes.List(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, DirectoryNotFoundError(root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	if len(list) == 0 {
		return nil, NoClassesError(root)
	}
	return createEnhancedResult("list_classes", list, nil)
}

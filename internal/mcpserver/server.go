// SPDX-License-Identifier: MPL-2.0

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dockwright/dockwright/internal/alias"
	"github.com/dockwright/dockwright/internal/dispatch"
	"github.com/dockwright/dockwright/internal/fault"
	"github.com/dockwright/dockwright/internal/normalize"
	"github.com/dockwright/dockwright/internal/operation"
)

const instructions = `Each tool runs one container-engine command (docker or compose) and returns a JSON
envelope {content, isError, metadata}. Operation tools are named after the operation
(docker-run); alias tools (dps, dpsa, ...) bind some parameters; workflow tools (dbr, dpr,
dcrestart) run several commands and stop at the first failure.`

var (
	readOnly = map[operation.Name]bool{
		operation.Containers: true, operation.Logs: true, operation.Inspect: true,
		operation.Stats: true, operation.Top: true, operation.Images: true,
		operation.History: true, operation.Search: true, operation.Info: true,
		operation.Version: true, operation.DiskUsage: true, operation.ComposePs: true,
		operation.ComposeLogs: true,
	}
	destructive = map[operation.Name]bool{
		operation.Remove: true, operation.Kill: true, operation.RemoveImage: true,
		operation.Cleanup: true, operation.Reset: true, operation.ComposeDown: true,
	}
)

type (
	// Server serves the dispatch table over MCP.
	Server struct {
		dispatcher *dispatch.Dispatcher
		server     *mcp.Server
		logger     *slog.Logger
	}

	// Option configures a Server.
	Option func(*Server)
)

// WithLogger sets the logger used for call logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a server with one tool per table entry.
func New(d *dispatch.Dispatcher, version string, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "dockwright", Version: version},
			&mcp.ServerOptions{Instructions: instructions, HasTools: true},
		),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	table := d.Table()
	for _, e := range table.Entries() {
		s.server.AddTool(tool(table, e), s.handler(e.Alias))
	}
	return s
}

// Run serves a single session on the transport until the client disconnects or ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}

// ServeStdio serves on the process's stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving tools on stdio", "tools", len(s.dispatcher.Table().Names()))
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Connect starts a session on the transport without blocking.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func tool(table *alias.Table, e *alias.Entry) *mcp.Tool {
	t := &mcp.Tool{
		Name:        e.Alias,
		Description: description(e),
		InputSchema: InputSchema(table.Definition(e), e.Fixed),
	}
	if !e.IsWorkflow() {
		t.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: readOnly[e.Operation]}
		if !readOnly[e.Operation] {
			d := destructive[e.Operation]
			t.Annotations.DestructiveHint = &d
		}
	}
	return t
}

func description(e *alias.Entry) string {
	switch {
	case e.IsWorkflow():
		steps := make([]string, 0, len(e.Steps))
		for _, st := range e.Steps {
			steps = append(steps, string(st.Operation))
		}
		return fmt.Sprintf("%s. Runs %s in order and stops at the first failure.", e.Summary, strings.Join(steps, " then "))
	case len(e.Fixed) > 0:
		bound := make([]string, 0, len(e.Fixed))
		for _, k := range slices.Sorted(maps.Keys(e.Fixed)) {
			bound = append(bound, fmt.Sprintf("%s=%v", k, e.Fixed[k]))
		}
		return fmt.Sprintf("%s (%s with %s).", e.Summary, e.Operation, strings.Join(bound, ", "))
	case e.IsOperation():
		return e.Summary + "."
	default:
		return fmt.Sprintf("%s (alias of %s).", e.Summary, e.Operation)
	}
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var out dispatch.Outcome
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			out = s.dispatcher.Reject(name, err)
		} else {
			out = s.dispatcher.Run(ctx, name, normalize.Object(args))
		}
		s.logger.Debug("tool call", "tool", name, "is_error", out.Envelope.IsError)

		text, err := out.Envelope.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode envelope: %w", err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: out.Envelope.IsError,
		}, nil
	}
}

// decodeArguments decodes tool arguments into a JSON object, keeping numbers exact.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, fault.New(fault.InvalidEnum, "arguments must be a JSON object: %v", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

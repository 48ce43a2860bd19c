// Package mcp exposes the feedback tool over the Model Context Protocol using
// the official Go SDK.
package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fwojciec/feedback"
	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// ToolHandler handles calls to the feedback tool.
type ToolHandler interface {
	Call(ctx context.Context, name string, args json.RawMessage) (*feedback.ToolResult, error)
}

// Server is an MCP server exposing the submit_skill_feedback tool.
type Server struct {
	server  *sdk.Server
	handler ToolHandler
	log     zerolog.Logger
}

// NewServer builds a server named after cfg that routes tool calls to h.
func NewServer(cfg feedback.Config, h ToolHandler, log zerolog.Logger) *Server {
	s := &Server{
		server: sdk.NewServer(&sdk.Implementation{
			Name:    cfg.ServerName,
			Version: cfg.ServerVersion,
		}, nil),
		handler: h,
		log:     log.With().Str("component", "mcp").Logger(),
	}
	s.server.AddReceivingMiddleware(loggingMiddleware(s.log))

	tool := feedback.SubmitFeedbackTool()
	s.server.AddTool(&sdk.Tool{
		Name:        tool.Name,
		Title:       tool.Title,
		Description: tool.Description,
		InputSchema: tool.InputSchema,
		Annotations: &sdk.ToolAnnotations{Title: tool.Title},
	}, s.callTool)
	return s
}

// Run serves a single session over t until the client disconnects or ctx is
// done.
func (s *Server) Run(ctx context.Context, t sdk.Transport) error {
	return s.server.Run(ctx, t)
}

// Connect starts a session over t without blocking.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// callTool adapts a feedback.ToolResult to the MCP result shape. Errors from
// the handler are protocol errors; failures it reports stay in-band.
func (s *Server) callTool(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
	res, err := s.handler.Call(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, err
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: res.Text}},
		IsError: res.IsError,
	}, nil
}

func loggingMiddleware(log zerolog.Logger) sdk.Middleware {
	return func(next sdk.MethodHandler) sdk.MethodHandler {
		return func(ctx context.Context, method string, req sdk.Request) (sdk.Result, error) {
			start := time.Now()
			lc := log.With().Str("call_id", uuid.NewString()).Str("method", method)
			if call, ok := req.(*sdk.CallToolRequest); ok {
				lc = lc.Str("tool", call.Params.Name)
			}
			l := lc.Logger()

			result, err := next(ctx, method, req)

			ev := l.Debug()
			if r, ok := result.(*sdk.CallToolResult); ok && r != nil {
				ev = l.Info().Bool("is_error", r.IsError)
			}
			if err != nil {
				ev = l.Warn().Err(err)
			}
			ev.Dur("duration", time.Since(start)).Msg("handled request")
			return result, err
		}
	}
}

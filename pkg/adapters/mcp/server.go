// Package mcp exposes the folio assistant over the Model Context Protocol,
// so MCP-aware clients can chat with the assistant and read the portfolio
// without going through the HTTP API.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// Processor is the chat surface the MCP server drives.
type Processor interface {
	ProcessTurn(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
	Ready() bool
}

// Server wraps the chat processor and exposes it as an MCP Server.
type Server struct {
	processor Processor
	store     ports.MessageStore
	portfolio ports.PortfolioSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(processor Processor, store ports.MessageStore, portfolio ports.PortfolioSource, version string) *Server {
	s := &Server{
		processor: processor,
		store:     store,
		portfolio: portfolio,
		mcpServer: server.NewMCPServer("folio-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: chat
	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the portfolio assistant. Returns the assistant reply and, when the model decided to act on the page, a tool call describing the action."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The visitor's message")),
		mcp.WithString("context", mcp.Required(), mcp.Description("Text content of the page the visitor is looking at")),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("Conversation session identifier")),
		mcp.WithOutputSchema[domain.ChatResponse](),
	)
	s.mcpServer.AddTool(chatTool, mcp.NewStructuredToolHandler(s.handleChat))

	// TOOL: get_history
	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the recent conversation history for a session."),
		mcp.WithString("sessionId", mcp.Required(), mcp.Description("Conversation session identifier")),
	), s.handleHistory)

	// TOOL: get_portfolio
	s.mcpServer.AddTool(mcp.NewTool("get_portfolio",
		mcp.WithDescription("Get the full portfolio content: projects, skills and experience."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := s.portfolio.Portfolio(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("portfolio lookup failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(p)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.ChatResponse, error) {
	req := domain.ChatRequest{}
	req.Message, _ = args["message"].(string)
	req.Context, _ = args["context"].(string)
	req.SessionID, _ = args["sessionId"].(string)

	resp, err := s.processor.ProcessTurn(ctx, req)
	if err != nil {
		return domain.ChatResponse{}, err
	}
	return resp, nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("sessionId", "")
	if sessionID == "" {
		return mcp.NewToolResultError("sessionId is required"), nil
	}

	msgs, err := s.store.Recent(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(msgs)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: folio://portfolio
	s.mcpServer.AddResource(mcp.NewResource("folio://portfolio", "Portfolio Content",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := s.portfolio.Portfolio(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load portfolio: %w", err)
		}
		jsonBytes, _ := json.Marshal(p)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "folio://portfolio",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

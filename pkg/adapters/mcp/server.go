package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultLimit caps expand_grammar output when the caller sets no limit.
const DefaultLimit = 100_000

// GrammarsURI is the resource listing every stored grammar.
const GrammarsURI = "lsys://grammars"

// ListResponse is the result of list_grammars.
type ListResponse struct {
	Grammars []string `json:"grammars" jsonschema_description:"Names of the stored grammars, sorted"`
}

// ExpandResponse is the result of expand_grammar.
type ExpandResponse struct {
	RunID     string  `json:"run_id" jsonschema_description:"Identifier of the expansion run"`
	Grammar   string  `json:"grammar"`
	Depth     int     `json:"depth"`
	Seed      *uint64 `json:"seed,omitempty" jsonschema_description:"Seed used by a stochastic grammar; pass it back to replay the output"`
	Symbols   string  `json:"symbols" jsonschema_description:"The expanded sequence (possibly truncated)"`
	Emitted   int64   `json:"emitted"`
	Truncated bool    `json:"truncated" jsonschema_description:"True when the output stopped at the limit"`
}

// Engine is the subset of *lindenmayer.Engine exposed over MCP.
type Engine interface {
	Grammars(ctx context.Context) ([]string, error)
	Inspect(ctx context.Context, name string) (*domain.Definition, error)
	Define(ctx context.Context, def *domain.Definition) error
	Open(ctx context.Context, name string, req lindenmayer.Request) (*lindenmayer.Run, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("lsys-mcp", strings.TrimSpace(lindenmayer.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
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
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_grammars",
		mcp.WithDescription("List the names of the stored L-system grammars."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	describeTool := mcp.NewTool("describe_grammar",
		mcp.WithDescription("Return the axiom and rules of a grammar."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Grammar name")),
		mcp.WithOutputSchema[dto.GrammarDocument](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	expandTool := mcp.NewTool("expand_grammar",
		mcp.WithDescription("Expand a grammar to the given depth. Output is capped by limit."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Grammar name")),
		mcp.WithNumber("depth", mcp.Required(), mcp.Description("Number of rewrite rounds")),
		mcp.WithString("seed", mcp.Description("Decimal uint64 seed for stochastic grammars (optional)")),
		mcp.WithNumber("limit", mcp.Description(fmt.Sprintf("Maximum number of symbols (default %d)", DefaultLimit))),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	defineTool := mcp.NewTool("define_grammar",
		mcp.WithDescription("Create or replace a grammar. Give either rules or stochastic, not both."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Grammar name (letters, digits, '.', '_', '-')")),
		mcp.WithString("axiom", mcp.Required(), mcp.Description("Initial sequence")),
		mcp.WithString("description", mcp.Description("Human readable description")),
		mcp.WithString("rules", mcp.Description(`JSON object of deterministic rules, e.g. {"A":"AB","B":"A"}`)),
		mcp.WithString("stochastic", mcp.Description(`JSON object of weighted rules, e.g. {"F":[{"replacement":"F+F","weight":2}]}`)),
		mcp.WithOutputSchema[dto.GrammarDocument](),
	)
	s.mcpServer.AddTool(defineTool, mcp.NewStructuredToolHandler(s.handleDefine))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	names, err := s.engine.Grammars(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Grammars: names}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.GrammarDocument, error) {
	name, _ := args["name"].(string)
	def, err := s.engine.Inspect(ctx, name)
	if err != nil {
		return dto.GrammarDocument{}, fmt.Errorf("describe failed: %w", err)
	}
	return dto.FromDomain(def), nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	name, _ := args["name"].(string)
	depth, ok := args["depth"].(float64)
	if !ok || depth != float64(int(depth)) {
		return ExpandResponse{}, errors.New("depth must be an integer")
	}

	req := lindenmayer.Request{Depth: int(depth), Limit: DefaultLimit}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		req.Limit = int64(limit)
	}
	if raw, ok := args["seed"].(string); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return ExpandResponse{}, fmt.Errorf("invalid seed %q", raw)
		}
		req.Seed = &seed
	}

	run, err := s.engine.Open(ctx, name, req)
	if err != nil {
		return ExpandResponse{}, fmt.Errorf("expand failed: %w", err)
	}
	defer run.Close()

	out, err := expansion.Collect(run)
	if err != nil {
		s.logger.Warn("MCP Expand: expansion stopped", "run_id", run.ID, "error", err)
		return ExpandResponse{}, fmt.Errorf("expand failed after %d symbols: %w", run.Emitted(), err)
	}

	resp := ExpandResponse{
		RunID:     run.ID,
		Grammar:   run.Grammar,
		Depth:     run.Depth,
		Symbols:   out.String(),
		Emitted:   run.Emitted(),
		Truncated: run.Truncated(),
	}
	if seed, ok := run.Seed(); ok {
		resp.Seed = &seed
	}
	return resp, nil
}

func (s *Server) handleDefine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.GrammarDocument, error) {
	raw := map[string]any{
		"name":        args["name"],
		"axiom":       args["axiom"],
		"description": args["description"],
	}
	for _, key := range []string{"rules", "stochastic"} {
		text, ok := args[key].(string)
		if !ok || text == "" {
			continue
		}
		var table any
		if err := json.Unmarshal([]byte(text), &table); err != nil {
			return dto.GrammarDocument{}, fmt.Errorf("%s is not valid JSON: %w", key, err)
		}
		raw[key] = table
	}

	doc, err := dto.Decode(raw)
	if err != nil {
		return dto.GrammarDocument{}, err
	}
	def, err := doc.ToDomain()
	if err != nil {
		return dto.GrammarDocument{}, err
	}
	if err := s.engine.Define(ctx, def); err != nil {
		return dto.GrammarDocument{}, fmt.Errorf("define failed: %w", err)
	}
	return dto.FromDomain(def), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GrammarsURI, "Stored Grammars",
		mcp.WithMIMEType("application/json"),
	), s.readGrammars)
}

func (s *Server) readGrammars(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.Grammars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammars: %w", err)
	}

	docs := make([]dto.GrammarDocument, 0, len(names))
	for _, name := range names {
		def, err := s.engine.Inspect(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", name, err)
		}
		docs = append(docs, dto.FromDomain(def))
	}
	jsonBytes, _ := json.Marshal(docs)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GrammarsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

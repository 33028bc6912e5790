package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
	"github.com/aretw0/unify/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// problemsURI is the resource listing every loaded problem.
const problemsURI = "unify://problems"

// SolveResponse aligns with the HTTP Solution schema so both adapters answer alike.
type SolveResponse struct {
	Solution *domain.Solution `json:"solution" jsonschema_description:"The solution; unified=false when the terms do not unify"`
}

// ProblemList is the result of list_problems.
type ProblemList struct {
	Problems []domain.Problem `json:"problems" jsonschema_description:"Loaded problems in ID order"`
}

// unifyArgs are the arguments of the unify tool.
type unifyArgs struct {
	Left     string   `mapstructure:"left"`
	Right    string   `mapstructure:"right"`
	Language []string `mapstructure:"language"`
}

// Server wraps a Runner and exposes it as an MCP Server.
type Server struct {
	runner    *runner.Runner
	loader    ports.ProblemLoader
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. loader may be nil, in which case
// only the unify tool is useful.
func NewServer(r *runner.Runner, loader ports.ProblemLoader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = r.Logger
	}
	s := &Server{
		runner:    r,
		loader:    loader,
		logger:    logger,
		mcpServer: server.NewMCPServer("unify-mcp", strings.TrimSpace(unify.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("shutting down MCP server")
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: unify
	unifyTool := mcp.NewTool("unify",
		mcp.WithDescription("Compute the most general unifier of two first-order terms. "+
			"Lowercase identifiers are constructors (f(a, b)); capitalized identifiers, _ and ?N are variables."),
		mcp.WithString("left", mcp.Required(), mcp.Description("Left term, e.g. d(c(X), Y, a)")),
		mcp.WithString("right", mcp.Required(), mcp.Description("Right term, e.g. d(Z, a, Y)")),
		mcp.WithArray("language", mcp.Description("Optional name/arity symbols both terms must use, e.g. [\"a/0\", \"c/1\"]"),
			mcp.WithStringItems()),
		mcp.WithOutputSchema[SolveResponse](),
	)
	s.mcpServer.AddTool(unifyTool, mcp.NewStructuredToolHandler(s.handleUnify))

	// TOOL: solve_problem
	solveTool := mcp.NewTool("solve_problem",
		mcp.WithDescription("Solve a loaded problem by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Problem ID, see list_problems")),
		mcp.WithOutputSchema[SolveResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolveProblem))

	// TOOL: list_problems
	listTool := mcp.NewTool("list_problems",
		mcp.WithDescription("List the loaded problems."),
		mcp.WithOutputSchema[ProblemList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListProblems))
}

// Handler methods for structured tools

func (s *Server) handleUnify(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SolveResponse, error) {
	var in unifyArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return SolveResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Left == "" || in.Right == "" {
		return SolveResponse{}, errors.New("left and right are required")
	}

	sol, err := s.runner.Solve(ctx, &domain.Problem{Left: in.Left, Right: in.Right, Language: in.Language})
	if err != nil {
		s.logger.Warn("MCP unify: rejected", "err", err)
		return SolveResponse{}, fmt.Errorf("unify failed: %w", err)
	}
	return SolveResponse{Solution: sol}, nil
}

func (s *Server) handleSolveProblem(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SolveResponse, error) {
	id, _ := args["id"].(string)
	if s.loader == nil {
		return SolveResponse{}, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, id)
	}

	p, err := s.loader.GetProblem(ctx, id)
	if err != nil {
		return SolveResponse{}, err
	}
	sol, err := s.runner.Solve(ctx, p)
	if err != nil {
		return SolveResponse{}, fmt.Errorf("solve %q failed: %w", id, err)
	}
	return SolveResponse{Solution: sol}, nil
}

func (s *Server) handleListProblems(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ProblemList, error) {
	problems, err := s.problems(ctx)
	if err != nil {
		return ProblemList{}, err
	}
	return ProblemList{Problems: problems}, nil
}

func (s *Server) problems(ctx context.Context) ([]domain.Problem, error) {
	problems := []domain.Problem{}
	if s.loader == nil {
		return problems, nil
	}
	ids, err := s.loader.ListProblems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	for _, id := range ids {
		p, err := s.loader.GetProblem(ctx, id)
		if err != nil {
			return nil, err
		}
		problems = append(problems, *p)
	}
	return problems, nil
}

func (s *Server) registerResources() {
	// EXPOSE: unify://problems
	s.mcpServer.AddResource(mcp.NewResource(problemsURI, "Loaded Problems",
		mcp.WithMIMEType("application/json"),
	), s.readProblems)
}

func (s *Server) readProblems(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	problems, err := s.problems(ctx)
	if err != nil {
		return nil, err
	}
	jsonBytes, _ := json.Marshal(problems)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      problemsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/mcp"
)

// RPCHandler handles JSON-RPC method dispatch.
type RPCHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// Exporter renders the inventory as CSV.
type Exporter interface {
	ExportCSV() string
}

// Options selects the handlers mounted on the router. Nil handlers are not mounted.
type Options struct {
	RPC      RPCHandler
	Exporter Exporter
	MCP      http.Handler
	Metrics  http.Handler
	// Token, when set, is required as a bearer token on every route but /health.
	Token  string
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	rpc      RPCHandler
	exporter Exporter
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{rpc: opts.RPC, exporter: opts.Exporter, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.Token != "" {
			r.Use(AuthMiddleware(opts.Token))
		}
		r.Use(SessionMiddleware)

		if opts.RPC != nil {
			r.Post("/rpc", srv.handleRPC)
		}
		if opts.Exporter != nil {
			r.Get("/export.csv", srv.handleExport)
		}
		if opts.Metrics != nil {
			r.Handle("/metrics", opts.Metrics)
		}
		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", slab.ExportMIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slab.ExportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.exporter.ExportCSV()))
}

// maxRPCBody bounds a JSON-RPC request body. Imports travel inline, so this
// is sized for a large inventory file.
const maxRPCBody = 16 << 20

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRPCBody))
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, fmt.Sprintf("read body: %v", err), nil)
		return
	}
	msgs, batch, err := SplitBatch(body)
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, ErrParse) {
			code = ErrParseCode
		}
		WriteError(w, nil, code, err.Error(), nil)
		return
	}

	responses := make([]Response, 0, len(msgs))
	for _, msg := range msgs {
		if resp, ok := s.call(r.Context(), msg); ok {
			responses = append(responses, resp)
		}
	}

	switch {
	case len(responses) == 0:
		w.WriteHeader(http.StatusNoContent)
	case batch:
		writeJSON(w, responses)
	default:
		writeJSON(w, responses[0])
	}
}

// call runs one request. ok is false for notifications, which get no response.
func (s *Server) call(ctx context.Context, msg json.RawMessage) (Response, bool) {
	req, err := ParseRequest(bytes.NewReader(msg))
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, ErrParse) {
			code = ErrParseCode
		}
		return NewError(nil, code, err.Error(), nil), true
	}

	sessionID, _ := SessionIDFromContext(ctx)
	s.logger.Debug("rpc call", "method", req.Method, "session_id", sessionID)

	result, err := s.rpc.Handle(ctx, req.Method, req.Params)
	if err != nil {
		code, message, data := rpcError(err)
		if code == ErrInternal {
			s.logger.Error("rpc method failed", "method", req.Method, "session_id", sessionID, "error", err)
		}
		if req.IsNotification() {
			return Response{}, false
		}
		return NewError(req.ID, code, message, data), true
	}
	if req.IsNotification() {
		return Response{}, false
	}
	return NewResult(req.ID, result), true
}

// rpcError maps handler errors onto JSON-RPC codes. Domain errors travel in
// the data member so clients get the code and recovery hint.
func rpcError(err error) (int, string, any) {
	switch {
	case errors.Is(err, mcp.ErrUnknownMethod):
		return ErrMethodNotFound, err.Error(), nil
	case errors.Is(err, mcp.ErrInvalidParams):
		return ErrInvalidParams, err.Error(), nil
	}
	if apiErr := mcp.MapError(err); apiErr != nil {
		return ErrApplication, apiErr.MessageValue(), apiErr
	}
	return ErrInternal, "internal error", nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

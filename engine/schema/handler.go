package schema

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
)

const maxBodyBytes = 1 << 20

// Request is a GraphQL request in the common JSON shape.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves a schema over HTTP. GET carries the request in URL
// parameters and falls back to the explorer page without a query; POST
// carries it as a JSON body.
type Handler struct {
	schema   *graphql.Schema
	explorer http.Handler
	log      *slog.Logger
}

// NewHandler serves s. endpoint is the path the explorer page posts to.
func NewHandler(s *graphql.Schema, endpoint string, log *slog.Logger) *Handler {
	return &Handler{
		schema:   s,
		explorer: playground.Handler("GearGraph", endpoint),
		log:      log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		if req.Query == "" {
			h.explorer.ServeHTTP(w, r)
			return
		}
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				writeError(w, http.StatusBadRequest, "invalid variables: "+err.Error())
				return
			}
		}
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		h.log.Warn("graphql errors", "operation", req.OperationName, "count", len(resp.Errors), "first", resp.Errors[0].Message)
	}
	body, err := json.Marshal(resp)
	if err != nil {
		h.log.Error("encode graphql response", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"message": msg}},
	})
}

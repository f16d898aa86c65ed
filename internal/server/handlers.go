package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
	"github.com/pangyo-qna/kbqa/internal/logging"
	"github.com/pangyo-qna/kbqa/internal/reply"
	"github.com/pangyo-qna/kbqa/internal/search"
)

const maxBodyBytes = 1 << 20

// SearchRequest is the body of POST /api/search. A missing limit uses the
// policy default.
type SearchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// SearchResponse is returned by POST /api/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Answer  string          `json:"answer"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Question string       `json:"question"`
	History  []reply.Turn `json:"history"`
}

// KnowledgeResponse is returned by GET /knowledge.
type KnowledgeResponse struct {
	Total   int               `json:"total"`
	Tags    []string          `json:"tags"`
	Entries []knowledge.Entry `json:"entries"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "kbqa",
		"entries": s.assistant.Engine().Index().Len(),
	})
}

func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"operations": s.assistant.Metrics().Snapshot(),
	})
}

func (s *Server) knowledge(w http.ResponseWriter, r *http.Request) {
	all := s.assistant.Engine().Index().Entries()
	q := r.URL.Query()
	entries := knowledge.Browse(all, q.Get("tag"), q.Get("q"))
	writeJSON(w, http.StatusOK, KnowledgeResponse{
		Total:   len(entries),
		Tags:    knowledge.Tags(all),
		Entries: entries,
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	limit := s.assistant.Engine().Policy().DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	results := s.assistant.Search(req.Query, limit)
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: results,
		Answer:  s.assistant.Render(results, req.Query),
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required", "")
		return
	}

	resp := s.assistant.Reply(r.Context(), req.Question, req.History)
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn(err, "failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	writeJSON(w, status, resp)
}

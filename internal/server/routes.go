package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recollect-app/recollect/internal/topic"
)

// maxBatchSize caps how many suggestions one request may ask for.
const maxBatchSize = 20

func (s *Server) handleNextTopics(w http.ResponseWriter, r *http.Request) {
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, `{"error":"count must be a positive integer"}`, http.StatusBadRequest)
			return
		}
		count = n
	}
	if count > maxBatchSize {
		count = maxBatchSize
	}
	categoryID := r.URL.Query().Get("category")

	topics := s.engine.NextTopics(r.Context(), count, categoryID)
	if topics == nil {
		topics = []topic.Topic{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"topics": topics,
		"count":  len(topics),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.engine.Categories(r.Context())
	if cats == nil {
		cats = []topic.Category{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"categories": cats,
		"count":      len(cats),
	})
}

func (s *Server) handleTopicUsed(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	var req struct {
		MemoryID string `json:"memory_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.MemoryID == "" {
		http.Error(w, `{"error":"memory_id required"}`, http.StatusBadRequest)
		return
	}

	s.engine.MarkTopicUsed(r.Context(), topicID, req.MemoryID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.engine.RefreshAll(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshed"})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.engine.ClearCache()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}

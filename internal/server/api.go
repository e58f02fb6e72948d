package server

import (
	"encoding/json"
	"net/http"

	"maldreth/internal/logging"
)

type stageJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderIndex  int64  `json:"order_index"`
}

type connectionJSON struct {
	ID          int64  `json:"id"`
	FromStageID int64  `json:"from_stage_id"`
	ToStageID   int64  `json:"to_stage_id"`
	Type        string `json:"connection_type"`
}

type categoryJSON struct {
	ID          int64  `json:"id"`
	StageID     int64  `json:"stage_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type toolJSON struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type searchResultJSON struct {
	toolJSON
	CategoryName string `json:"category_name"`
	StageID      int64  `json:"stage_id"`
	StageName    string `json:"stage_name"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountsByTable(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.writeJSON(w, r, map[string]any{
		"status": "ok",
		"stages": counts.Stages,
		"tools":  counts.Tools,
	})
}

func (s *Server) handleAPIStages(w http.ResponseWriter, r *http.Request) {
	stages, err := s.store.ListStages(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]stageJSON, 0, len(stages))
	for _, st := range stages {
		out = append(out, stageJSON{ID: st.ID, Name: st.Name, Description: st.Description, OrderIndex: st.OrderIndex})
	}
	s.writeJSON(w, r, out)
}

func (s *Server) handleAPIConnections(w http.ResponseWriter, r *http.Request) {
	connections, err := s.store.ListConnections(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]connectionJSON, 0, len(connections))
	for _, c := range connections {
		out = append(out, connectionJSON{ID: c.ID, FromStageID: c.FromStageID, ToStageID: c.ToStageID, Type: string(c.Type)})
	}
	s.writeJSON(w, r, out)
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	stageID, ok := s.parseIDParam(w, r, "stage")
	if !ok {
		return
	}
	categories, err := s.store.ListCategories(r.Context(), stageID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{ID: c.ID, StageID: c.StageID, Name: c.Name, Description: c.Description})
	}
	s.writeJSON(w, r, out)
}

func (s *Server) handleAPITools(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := s.parseIDParam(w, r, "category")
	if !ok {
		return
	}
	tools, err := s.store.ListTools(r.Context(), categoryID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]toolJSON, 0, len(tools))
	for _, t := range tools {
		out = append(out, toolJSON{ID: t.ID, CategoryID: t.CategoryID, Name: t.Name, Description: t.Description})
	}
	s.writeJSON(w, r, out)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.SearchTools(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]searchResultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, searchResultJSON{
			toolJSON: toolJSON{
				ID:          res.Tool.ID,
				CategoryID:  res.Tool.CategoryID,
				Name:        res.Tool.Name,
				Description: res.Tool.Description,
			},
			CategoryName: res.CategoryName,
			StageID:      res.StageID,
			StageName:    res.StageName,
		})
	}
	s.writeJSON(w, r, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("encode response", logging.Error(err))
	}
}

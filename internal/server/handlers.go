package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"maldreth/internal/layout"
	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
)

func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := s.store.SearchTools(r.Context(), query)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	view := searchView{
		Query:    query,
		Searched: query != "",
		Total:    len(results),
		Groups:   groupByStage(results),
	}
	s.render(w, r, "search", view)
}

// groupByStage folds ordered search results into per-stage blocks. Results
// arrive sorted by stage position, so one sequential pass preserves order.
func groupByStage(results []lifecycle.SearchResult) []searchGroup {
	var groups []searchGroup
	for _, result := range results {
		if len(groups) == 0 || groups[len(groups)-1].StageName != result.StageName {
			groups = append(groups, searchGroup{StageName: result.StageName})
		}
		last := &groups[len(groups)-1]
		last.Results = append(last.Results, result)
	}
	return groups
}

func (s *Server) handleLifecyclePage(w http.ResponseWriter, r *http.Request) {
	stageID, ok := s.parseIDParam(w, r, "stage")
	if !ok {
		return
	}

	stages, err := s.store.ListStages(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	connections, err := s.store.ListConnections(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	diagram := layout.Build(stages, connections, layout.Options{
		Style:           s.opts.LayoutStyle,
		Radius:          s.opts.LayoutRadius,
		SelectedStageID: stageID,
	})

	view := lifecycleView{SVG: renderSVG(diagram)}
	if stageID != 0 {
		stage, err := s.store.GetStage(r.Context(), stageID)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		if stage != nil {
			details, err := s.categoryDetails(r.Context(), stage.ID)
			if err != nil {
				s.renderError(w, r, err)
				return
			}
			view.Stage = stage
			view.Categories = details
		}
	}
	s.render(w, r, "lifecycle", view)
}

func (s *Server) handleCategoriesPage(w http.ResponseWriter, r *http.Request) {
	stageID, ok := s.parseIDParam(w, r, "stage")
	if !ok {
		return
	}

	stages, err := s.store.ListStages(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	view := categoriesView{SelectedID: stageID, Stages: stages}
	for _, stage := range stages {
		if stageID != 0 && stage.ID != stageID {
			continue
		}
		details, err := s.categoryDetails(r.Context(), stage.ID)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		view.Sections = append(view.Sections, stageSection{
			Stage:      stage,
			Expanded:   stageID != 0,
			Categories: details,
		})
	}
	s.render(w, r, "categories", view)
}

func (s *Server) handleAboutPage(w http.ResponseWriter, r *http.Request) {
	stages, err := s.store.ListStages(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, "about", aboutView{Stages: stages})
}

// categoryDetails loads a stage's categories with each category's tools
// pre-chunked into the three browse columns.
func (s *Server) categoryDetails(ctx context.Context, stageID int64) ([]categoryDetail, error) {
	categories, err := s.store.ListCategories(ctx, stageID)
	if err != nil {
		return nil, err
	}

	details := make([]categoryDetail, 0, len(categories))
	for _, category := range categories {
		tools, err := s.store.ListTools(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, categoryDetail{
			Category:    category,
			Tools:       tools,
			ToolColumns: splitColumns(tools, 3),
		})
	}
	return details, nil
}

// splitColumns distributes tools round-robin across n columns for the
// three-column browse layout.
func splitColumns(tools []lifecycle.Tool, n int) [][]lifecycle.Tool {
	if n <= 0 || len(tools) == 0 {
		return nil
	}
	columns := make([][]lifecycle.Tool, n)
	for i, tool := range tools {
		columns[i%n] = append(columns[i%n], tool)
	}
	return columns
}

// parseIDParam reads an optional numeric query parameter. A missing or blank
// parameter yields 0; malformed input writes a 400 and reports !ok.
func (s *Server) parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		http.Error(w, fmt.Sprintf("invalid %s parameter %q", name, raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context(), s.logger).Error("handler failed",
		logging.String("path", r.URL.Path),
		logging.Error(err))

	id, _ := logging.RequestIDFromContext(r.Context())
	http.Error(w, fmt.Sprintf("internal error (request %s)", id), http.StatusInternalServerError)
}

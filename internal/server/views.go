package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"search", "lifecycle", "categories", "about"}

type viewSet struct {
	pages map[string]*template.Template
}

// parseViews builds one template set per page, each sharing the base layout.
func parseViews() (*viewSet, error) {
	views := &viewSet{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		views.pages[name] = tmpl
	}
	return views, nil
}

type searchGroup struct {
	StageName string
	Results   []lifecycle.SearchResult
}

type searchView struct {
	Query    string
	Searched bool
	Total    int
	Groups   []searchGroup
}

type categoryDetail struct {
	Category    lifecycle.ToolCategory
	Tools       []lifecycle.Tool
	ToolColumns [][]lifecycle.Tool
}

type lifecycleView struct {
	SVG        template.HTML
	Stage      *lifecycle.Stage
	Categories []categoryDetail
}

type stageSection struct {
	Stage      lifecycle.Stage
	Expanded   bool
	Categories []categoryDetail
}

type categoriesView struct {
	SelectedID int64
	Stages     []lifecycle.Stage
	Sections   []stageSection
}

type aboutView struct {
	Stages []lifecycle.Stage
}

type pageData struct {
	Title string
	View  any
}

var pageTitles = map[string]string{
	"search":     "Search",
	"lifecycle":  "Lifecycle Visualization",
	"categories": "Tool Categories",
	"about":      "About",
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, view any) {
	tmpl, ok := s.views.pages[page]
	if !ok {
		s.renderError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Title: pageTitles[page], View: view}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		// Headers are already out by now; all we can do is log.
		logging.WithContext(r.Context(), s.logger).Error("render template",
			logging.String("page", page), logging.Error(err))
	}
}

package lifecycle

// Stage is one of the fixed phases of the research data lifecycle. Stages are
// seeded once by the schema script and never modified at runtime.
type Stage struct {
	ID          int64
	Name        string
	Description string
	OrderIndex  int64
}

// ConnectionType classifies a transition between stages.
type ConnectionType string

const (
	// ConnectionNormal is the canonical next-stage transition.
	ConnectionNormal ConnectionType = "normal"
	// ConnectionAlternative marks an optional shortcut or feedback transition.
	ConnectionAlternative ConnectionType = "alternative"
)

// Connection is a directed relation between two stages.
type Connection struct {
	ID          int64
	FromStageID int64
	ToStageID   int64
	Type        ConnectionType
}

// ToolCategory groups tools within a stage.
type ToolCategory struct {
	ID          int64
	StageID     int64
	Name        string
	Description string
}

// Tool is a named example instrument belonging to a category.
type Tool struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
}

// SearchResult is a tool joined with its owning category and stage.
type SearchResult struct {
	Tool         Tool
	CategoryName string
	StageID      int64
	StageName    string
	StageOrder   int64
}

// Counts reports per-table row totals, used by `maldreth db status`.
type Counts struct {
	Stages      int64
	Connections int64
	Categories  int64
	Tools       int64
}

package domain

// Exercise is a named movement in the exercise catalog.
// Global rows (IsGlobal, UserID nil) are visible to every user; owned rows
// only to their owner. (name) is unique among global rows and
// (name, user_id) among owned rows.
type Exercise struct {
	ID       int64
	Name     string
	IsGlobal bool
	UserID   *int64
}

// MetricDefinition is a named, typed metric in the metric catalog.
// Scope rules match Exercise, keyed on Key instead of Name.
type MetricDefinition struct {
	ID          int64
	Key         string
	IsGlobal    bool
	UserID      *int64
	DisplayName *string
	ValueType   *string
	DefaultUnit *string
}

// CatalogRow is the minimal projection the namespace resolver works with.
type CatalogRow struct {
	ID       int64
	Name     string
	IsGlobal bool
}

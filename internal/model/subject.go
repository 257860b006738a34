package model

// Subject is a top-level topic category, the root of the catalog hierarchy.
// Subjects are seeded at startup and immutable via the API.
type Subject struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

// Subsection is a named grouping inside a Subject, e.g. a unit or a year.
type Subsection struct {
	ID           int64  `json:"id"`
	SubjectID    int64  `json:"-"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

package domain

type SetCategory string

const (
	SetCategoryProject SetCategory = "project"
	SetCategoryFact    SetCategory = "fact"
)

// SetCounts maps a set category to the count decoded from the project file.
// SetCategoryFact is the number of sets the processing run must report.
type SetCounts map[SetCategory]int

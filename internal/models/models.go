package models

// Assignment status flags stored alongside each assignment.
const (
	StatusMissing = "missing"
)

type Assignment struct {
	Name   string   `json:"name"`
	Score  string   `json:"score"`
	Order  int      `json:"order"`
	Status []string `json:"status"`
}

// Missing reports whether the assignment carries the missing flag.
func (a Assignment) Missing() bool {
	for _, s := range a.Status {
		if s == StatusMissing {
			return true
		}
	}
	return false
}

type Course struct {
	Name         string       `json:"name"`
	Link         string       `json:"link"`
	Grade        string       `json:"grade"`
	FinalPercent *float64     `json:"final_percent,omitempty"`
	Assignments  []Assignment `json:"assignments"`
}

// UserRecord is the persisted value shape for a user's course list.
type UserRecord struct {
	Courses []Course `json:"courses"`
}

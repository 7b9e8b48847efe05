package model

// Status is the two-state lifecycle shared by tasks and client experience
// cases. New records start as StatusOffen; the status endpoints move them
// to StatusErledigt. The original stored free-form strings here; the set is
// now closed and anything else is rejected at the boundary.
type Status string

const (
	StatusOffen    Status = "offen"
	StatusErledigt Status = "erledigt"
)

// Valid reports whether s is one of the two known states.
func (s Status) Valid() bool {
	return s == StatusOffen || s == StatusErledigt
}

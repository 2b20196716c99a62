package model

// Side identifies one of the two contestants. The zero value means neither.
// Keep these values stable; they are part of the JSON and CSV output.
type Side string

const (
	SideNone   Side = ""
	SideLeader Side = "leader"
	SideChaser Side = "chaser"
	// SideTie is only used for the non-binding end-of-season projection.
	SideTie Side = "tie"
)

// Status is a human-friendly per-row state for a side.
type Status string

const (
	StatusClinched Status = "CLINCHED"
	StatusOpen     Status = "OPEN"
)

func StatusFromClinched(clinched bool) Status {
	if clinched {
		return StatusClinched
	}
	return StatusOpen
}

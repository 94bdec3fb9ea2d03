package journal

import "time"

// Kind classifies a journal event.
type Kind string

const (
	KindInstructorCreated Kind = "instructor_created"
	KindProgramSeeded     Kind = "program_seeded"
	KindStationAdded      Kind = "station_added"
	KindStationRemoved    Kind = "station_removed"
	KindProgramAdded      Kind = "program_added"
	KindProgramRemoved    Kind = "program_removed"
	KindProfileSaved      Kind = "profile_saved"
	KindSaveFailed        Kind = "save_failed"
	KindInstructorRemoved Kind = "instructor_removed"
	KindMembersDropped    Kind = "members_dropped"
)

// Event is one recorded profile change.
type Event struct {
	ID         int64
	Time       time.Time
	SessionID  string
	Kind       Kind
	Instructor string
	Program    string
	Station    string
	Detail     string
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Instructor string
	Program    string
	SessionID  string
	Kinds      []Kind
	Since      time.Time
	Limit      int
}

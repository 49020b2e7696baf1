package domain

import "time"

// Revision is a past value of a persisted blob.
type Revision struct {
	Key     string
	Value   []byte
	SavedAt time.Time
}

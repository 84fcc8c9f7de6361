package core

import "github.com/google/uuid"

// ID identifies a dataset. Analysis results share their dataset's ID.
type ID string

// NewID returns a time-ordered UUID v7, or a random v4 if the v7 clock read fails
func NewID() ID {
	if id, err := uuid.NewV7(); err == nil {
		return ID(id.String())
	}
	return ID(uuid.NewString())
}

func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

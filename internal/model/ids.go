package model

import "github.com/google/uuid"

// assignID gives a new row a UUID in Go so inserts work on every dialect.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

package model

import "time"

// Screen is a resource-group: the physical room whose seats can be
// claimed for a show.  Screens and their seats form the catalog side
// of the system and never change while a show is being booked.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – human readable name, unique.
//	CreatedAt – creation timestamp.
type Screen struct {
	ID        uint64    `json:"id"`         // screens.id
	Name      string    `json:"name"`       // screens.name
	CreatedAt time.Time `json:"created_at"` // screens.created_at
}

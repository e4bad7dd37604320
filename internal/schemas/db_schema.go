// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user in the system.
type User struct {
	ID         *uuid.UUID  `json:"id"`         // Unique identifier for the user.
	Name       string      `json:"name"`       // Display name of the user.
	Email      string      `json:"email"`      // Email address of the user, unique.
	Password   string      `json:"-"`          // Password hash of the user, never serialized.
	CreatedAt  *time.Time  `json:"created_at"` // Timestamp when the user was created.
	Activities []uuid.UUID `json:"activities"` // Identifiers of the activities owned by the user.
}

// Activity represents the data model for an activity in the system.
// CreatorID and the owning user's Activities collection form a bidirectional
// relationship that every mutation must keep consistent.
type Activity struct {
	ID          *uuid.UUID `json:"id"`          // Unique identifier for the activity.
	Title       string     `json:"title"`       // Title of the activity.
	Description string     `json:"description"` // Description of the activity.
	Address     string     `json:"address"`     // Free-text address of the activity.
	Latitude    float64    `json:"latitude"`    // Geocoded latitude of the address.
	Longitude   float64    `json:"longitude"`   // Geocoded longitude of the address.
	ImageURL    string     `json:"image_url"`   // Storage path of the uploaded image.
	CreatorID   *uuid.UUID `json:"creator_id"`  // Identifier of the owning user.
	CreatedAt   *time.Time `json:"created_at"`  // Timestamp when the activity was created.
}

package models

import "time"

// Student is a learner account. Branch is free text, not a Branch reference.
// FavoriteNotes is stored in student_favorites but no endpoint mutates it yet.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Password      string    `json:"-" db:"password"`
	Branch        string    `json:"branch" db:"branch"`
	RollNumber    string    `json:"rollNumber" db:"roll_number"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	FavoriteNotes []int64   `json:"favoriteNotes,omitempty"`
}

package models

import "time"

// Regulation identifies a curriculum version and its total semester count.
type Regulation struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	NumberOfSemesters int       `json:"numberOfSemesters" db:"number_of_semesters"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

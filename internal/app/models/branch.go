package models

import "time"

// Branch is a department/program under a regulation.
type Branch struct {
	ID           int64       `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Code         string      `json:"code" db:"code"`
	RegulationID int64       `json:"regulationId" db:"regulation_id"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	Regulation   *Regulation `json:"regulation,omitempty"`
}

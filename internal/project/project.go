package project

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("project not found")

// StatusActive is the only project status with business meaning: it drives
// the active-projects KPI. Other values ("Completed", "On Hold", ...) are
// free-form and only grouped for the status distribution chart.
const StatusActive = "Active"

type Project struct {
	ID            int64
	ProjectNumber string
	CustomerName  string
	StartDate     time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

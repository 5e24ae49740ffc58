package employee

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("employee not found")

type Employee struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Department string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

package customer

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("customer not found")

// Customer represents a customer account. Status is 1 for active, 0 for
// inactive.
type Customer struct {
	ID            int64
	Name          string
	ContactPerson string
	Address       string
	Email         string
	Phone         string
	Segment       string
	Status        int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

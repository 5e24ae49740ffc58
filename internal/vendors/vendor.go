package vendor

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("vendor not found")

// Vendor types.
const (
	TypeSupplier   = 1
	TypeContractor = 2
)

type Vendor struct {
	ID            int64
	VendorNo      string
	VendorName    string
	VendorType    int
	ContactPerson string
	ContactPhone  string
	ContactEmail  string
	Payment       string
	Status        int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

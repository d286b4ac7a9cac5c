package domain

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
	CustomerNew      CustomerStatus = "New"
	CustomerPending  CustomerStatus = "Pending"
)

// Valid reports whether s is one of the known customer statuses.
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerNew, CustomerPending:
		return true
	}
	return false
}

// Customer is a buyer. Email is unique across customers.
type Customer struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    *string        `json:"phone"`
	Location *string        `json:"location"`
	Status   CustomerStatus `json:"status"`
	Avatar   *string        `json:"avatar"`
}

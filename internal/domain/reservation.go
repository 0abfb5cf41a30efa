package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
)

type ServiceType string

const (
	ServiceHaircut  ServiceType = "corte"
	ServiceColoring ServiceType = "tintura"
)

// ServiceTypes is the fixed set of services the salon offers.
var ServiceTypes = []ServiceType{ServiceHaircut, ServiceColoring}

func (s ServiceType) Valid() bool {
	for _, v := range ServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the customer-facing name used in outbound messages.
func (s ServiceType) Label() string {
	switch s {
	case ServiceHaircut:
		return "Corte de pelo"
	case ServiceColoring:
		return "Tintura"
	default:
		return string(s)
	}
}

// Reservation is a claimed (date, slot) pair. Date is a calendar day in
// "2006-01-02" form, Slot a canonical "15:04" time of day from the
// schedule template. At most one reservation exists per (date, slot);
// removal is a hard delete.
type Reservation struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email,omitempty"`
	Date      string            `json:"date"`
	Slot      string            `json:"slot"`
	Service   ServiceType       `json:"service"`
	Comment   string            `json:"comment,omitempty"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

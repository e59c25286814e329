package entity

import "time"

// ServiceKind enumerates the grooming services offered by the salon.
type ServiceKind string

const (
	ServiceFullGroom  ServiceKind = "full-groom"
	ServiceBathAndDry ServiceKind = "bath-and-dry"
	ServiceCutOnly    ServiceKind = "cut-only"
	ServiceDetangling ServiceKind = "detangling"
)

var serviceLabels = map[ServiceKind]string{
	ServiceFullGroom:  "Toilettage complet",
	ServiceBathAndDry: "Bain + Séchage",
	ServiceCutOnly:    "Coupe uniquement",
	ServiceDetangling: "Démêlage",
}

func (s ServiceKind) Valid() bool {
	_, ok := serviceLabels[s]
	return ok
}

// Label returns the display name used in emails and calendar events.
func (s ServiceKind) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return string(s)
}

// Appointment statuses. Cancellation deletes the record, so confirmed is
// the only persisted state.
const StatusConfirmed = "confirmed"

// Appointment is the durable booking record.
type Appointment struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Dog           string      `json:"dog"`
	Service       ServiceKind `json:"service"`
	Notes         string      `json:"notes,omitempty"`
	StartInstant  time.Time   `json:"startInstant"`
	CreatedAt     time.Time   `json:"createdAt"`
	Status        string      `json:"status"`
	GoogleEventID string      `json:"googleEventId,omitempty"`
}

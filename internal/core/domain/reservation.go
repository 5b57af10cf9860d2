package domain

import "time"

// ServiceType classifies the work performed at an appointment.
type ServiceType string

const (
	ServiceInstallation ServiceType = "installation"
	ServiceInspection   ServiceType = "inspection"
	ServiceMaintenance  ServiceType = "maintenance"
	ServiceRepair       ServiceType = "repair"
)

// ValidServiceType reports whether t is a known service type.
func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceInstallation, ServiceInspection, ServiceMaintenance, ServiceRepair:
		return true
	}
	return false
}

// ReservationStatus represents the lifecycle state of an appointment.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled" // by the subject
	ReservationRejected  ReservationStatus = "rejected"  // by the company
)

// reservationTransitions defines the allowed reservation state machine.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled, ReservationRejected},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a scheduled service appointment between a subject and a
// service company.
type Reservation struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	UserID        string            `json:"user_id" bson:"user_id"`
	CompanyID     string            `json:"company_id" bson:"company_id"`
	ServiceType   ServiceType       `json:"service_type" bson:"service_type"`
	Status        ReservationStatus `json:"status" bson:"status"`
	RequestedAt   time.Time         `json:"requested_at" bson:"requested_at"`
	ConfirmedAt   time.Time         `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CompletedAt   time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	VehicleInfo   string            `json:"vehicle_info,omitempty" bson:"vehicle_info,omitempty"`
	Notes         string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CancelReason  string            `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
	CancelledAt   time.Time         `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	RejectReason  string            `json:"reject_reason,omitempty" bson:"reject_reason,omitempty"`
	RejectedAt    time.Time         `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}

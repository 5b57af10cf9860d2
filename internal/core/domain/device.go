package domain

import "time"

// DeviceStatus represents the lifecycle state of an interlock device.
type DeviceStatus string

const (
	DeviceAvailable        DeviceStatus = "available"         // in stock, unassigned
	DeviceInstalled        DeviceStatus = "installed"         // fitted to a subject's vehicle
	DeviceUnderMaintenance DeviceStatus = "under_maintenance" // pulled for inspection or repair
	DeviceDeactivated      DeviceStatus = "deactivated"       // retired from service
)

// deviceTransitions defines the allowed device state machine transitions.
var deviceTransitions = map[DeviceStatus][]DeviceStatus{
	DeviceAvailable:        {DeviceInstalled, DeviceDeactivated},
	DeviceInstalled:        {DeviceUnderMaintenance, DeviceDeactivated},
	DeviceUnderMaintenance: {DeviceInstalled, DeviceDeactivated},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s DeviceStatus) CanTransitionTo(next DeviceStatus) bool {
	for _, allowed := range deviceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Device is an ignition-interlock unit tracked by the program.
type Device struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	SerialNumber string       `json:"serial_number" bson:"serial_number"`
	ModelName    string       `json:"model_name" bson:"model_name"`
	Status       DeviceStatus `json:"status" bson:"status"`
	UserID       string       `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CompanyID    string       `json:"company_id,omitempty" bson:"company_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

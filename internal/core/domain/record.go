package domain

import "time"

// ServiceRecord is a service-history entry written when a company completes
// work on a subject's device.
type ServiceRecord struct {
	ID                 string      `json:"id" bson:"_id,omitempty"`
	Type               ServiceType `json:"type" bson:"type"`
	SubjectID          string      `json:"subject_id" bson:"subject_id"`
	SubjectName        string      `json:"subject_name" bson:"subject_name"`
	DeviceID           string      `json:"device_id,omitempty" bson:"device_id,omitempty"`
	DeviceSerialNumber string      `json:"device_serial_number,omitempty" bson:"device_serial_number,omitempty"`
	CompanyID          string      `json:"company_id" bson:"company_id"`
	Description        string      `json:"description,omitempty" bson:"description,omitempty"`
	PerformedAt        time.Time   `json:"performed_at" bson:"performed_at"`
	PerformedBy        string      `json:"performed_by,omitempty" bson:"performed_by,omitempty"`
	Cost               int64       `json:"cost,omitempty" bson:"cost,omitempty"` // smallest currency unit
	CreatedAt          time.Time   `json:"created_at" bson:"created_at"`
}

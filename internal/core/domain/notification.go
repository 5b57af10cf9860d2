package domain

import "time"

// NotificationKind classifies a notification for rendering and filtering.
type NotificationKind string

const (
	NotifyReservationConfirmed NotificationKind = "reservation_confirmed"
	NotifyReservationRejected  NotificationKind = "reservation_rejected"
	NotifyReservationCancelled NotificationKind = "reservation_cancelled"
	NotifyServiceCompleted     NotificationKind = "service_completed"
	NotifyLogApproved          NotificationKind = "log_approved"
	NotifyLogRejected          NotificationKind = "log_rejected"
)

// Notification is an in-portal message delivered to a single recipient.
type Notification struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	RecipientID string           `json:"recipient_id" bson:"recipient_id"`
	Kind        NotificationKind `json:"kind" bson:"kind"`
	Title       string           `json:"title" bson:"title"`
	Body        string           `json:"body" bson:"body"`
	Read        bool             `json:"read" bson:"read"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
}

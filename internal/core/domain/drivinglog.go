package domain

import "time"

// LogStatus represents the review state of a submitted driving log.
type LogStatus string

const (
	LogSubmitted   LogStatus = "submitted"
	LogUnderReview LogStatus = "under_review"
	LogApproved    LogStatus = "approved"
	LogRejected    LogStatus = "rejected"
	LogFlagged     LogStatus = "flagged" // anomaly detected at submission
)

// logTransitions defines the allowed driving-log state machine. Approved and
// rejected are terminal.
var logTransitions = map[LogStatus][]LogStatus{
	LogSubmitted:   {LogUnderReview, LogApproved, LogRejected},
	LogFlagged:     {LogUnderReview, LogApproved, LogRejected},
	LogUnderReview: {LogApproved, LogRejected},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s LogStatus) CanTransitionTo(next LogStatus) bool {
	for _, allowed := range logTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AnomalyType classifies suspicious patterns found in a submitted log.
type AnomalyType string

const (
	AnomalyNone              AnomalyType = "none"
	AnomalyTampering         AnomalyType = "tampering_attempt"
	AnomalyBypass            AnomalyType = "bypass_attempt"
	AnomalyExcessiveFailures AnomalyType = "excessive_failures"
	AnomalyDeviceMalfunction AnomalyType = "device_malfunction"
	AnomalyDataInconsistency AnomalyType = "data_inconsistency"
)

// LogStatistics summarizes the breath-test measurements in a driving log.
type LogStatistics struct {
	TotalTests        int     `json:"total_tests" bson:"total_tests"`
	PassedTests       int     `json:"passed_tests" bson:"passed_tests"`
	FailedTests       int     `json:"failed_tests" bson:"failed_tests"`
	SkippedTests      int     `json:"skipped_tests" bson:"skipped_tests"`
	AverageBAC        float64 `json:"average_bac" bson:"average_bac"`
	MaxBAC            float64 `json:"max_bac" bson:"max_bac"`
	TamperingAttempts int     `json:"tampering_attempts" bson:"tampering_attempts"`
}

// DrivingLog is one periodic submission of a device's driving records,
// covering a reporting period and carrying the measurement summary.
type DrivingLog struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	UserID         string        `json:"user_id" bson:"user_id"`
	DeviceID       string        `json:"device_id" bson:"device_id"`
	PeriodStart    time.Time     `json:"period_start" bson:"period_start"`
	PeriodEnd      time.Time     `json:"period_end" bson:"period_end"`
	SubmittedAt    time.Time     `json:"submitted_at" bson:"submitted_at"`
	Status         LogStatus     `json:"status" bson:"status"`
	Anomaly        AnomalyType   `json:"anomaly" bson:"anomaly"`
	AnomalyDetails string        `json:"anomaly_details,omitempty" bson:"anomaly_details,omitempty"`
	Statistics     LogStatistics `json:"statistics" bson:"statistics"`
	Notes          string        `json:"notes,omitempty" bson:"notes,omitempty"`
	ReviewedBy     string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt     time.Time     `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewNotes    string        `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

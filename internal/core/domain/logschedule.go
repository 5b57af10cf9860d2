package domain

import "time"

// SubmissionFrequency is how often a subject must submit driving logs.
type SubmissionFrequency string

const (
	SubmitWeekly    SubmissionFrequency = "weekly"
	SubmitBiweekly  SubmissionFrequency = "biweekly"
	SubmitMonthly   SubmissionFrequency = "monthly"
	SubmitQuarterly SubmissionFrequency = "quarterly"
)

// ValidSubmissionFrequency reports whether f is a known frequency.
func ValidSubmissionFrequency(f SubmissionFrequency) bool {
	switch f {
	case SubmitWeekly, SubmitBiweekly, SubmitMonthly, SubmitQuarterly:
		return true
	}
	return false
}

// Days returns the length of the submission cycle in days.
func (f SubmissionFrequency) Days() int {
	switch f {
	case SubmitWeekly:
		return 7
	case SubmitBiweekly:
		return 14
	case SubmitQuarterly:
		return 90
	default:
		return 30
	}
}

// LogSchedule tracks one subject's submission cadence: at most one schedule
// per subject.
type LogSchedule struct {
	ID                string              `json:"id" bson:"_id,omitempty"`
	UserID            string              `json:"user_id" bson:"user_id"`
	DeviceID          string              `json:"device_id" bson:"device_id"`
	Frequency         SubmissionFrequency `json:"frequency" bson:"frequency"`
	LastSubmission    time.Time           `json:"last_submission,omitempty" bson:"last_submission,omitempty"`
	NextDue           time.Time           `json:"next_due" bson:"next_due"`
	MissedSubmissions int                 `json:"missed_submissions" bson:"missed_submissions"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

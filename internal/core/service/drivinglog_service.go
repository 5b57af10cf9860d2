package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

const dateLayout = "2006-01-02"

// DrivingLogService implements periodic driving-record submissions: each log
// is screened for anomalies at intake, flagged logs queue for admin review,
// and a per-subject schedule tracks when the next submission is due.
type DrivingLogService struct {
	logs      ports.DrivingLogRepository
	schedules ports.LogScheduleRepository
	accounts  ports.AuthRepository
	notify    ports.NotificationService
	logger    zerolog.Logger
}

func NewDrivingLogService(
	logs ports.DrivingLogRepository,
	schedules ports.LogScheduleRepository,
	accounts ports.AuthRepository,
	notify ports.NotificationService,
	logger zerolog.Logger,
) *DrivingLogService {
	return &DrivingLogService{
		logs:      logs,
		schedules: schedules,
		accounts:  accounts,
		notify:    notify,
		logger:    logger,
	}
}

// Submit stores a driving log after screening its statistics. A detected
// anomaly flags the log instead of rejecting it; review stays with an admin.
func (s *DrivingLogService) Submit(ctx context.Context, input ports.SubmitLogInput) (*domain.DrivingLog, error) {
	periodStart, err := time.Parse(dateLayout, input.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("parse period_start: %w", err)
	}
	periodEnd, err := time.Parse(dateLayout, input.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("parse period_end: %w", err)
	}

	now := time.Now().UTC()
	anomaly, details := screenLog(periodStart, periodEnd, input.Statistics, now)

	status := domain.LogSubmitted
	if anomaly != domain.AnomalyNone {
		status = domain.LogFlagged
	}

	log := &domain.DrivingLog{
		ID:             ulid.Make().String(),
		UserID:         input.UserID,
		DeviceID:       input.DeviceID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		SubmittedAt:    now,
		Status:         status,
		Anomaly:        anomaly,
		AnomalyDetails: details,
		Statistics:     input.Statistics,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.logs.Create(ctx, log)
	if err != nil {
		return nil, err
	}

	s.advanceSchedule(ctx, input.UserID, now)

	s.logger.Info().
		Str("log_id", created.ID).
		Str("user_id", created.UserID).
		Str("status", string(created.Status)).
		Str("anomaly", string(created.Anomaly)).
		Msg("driving log submitted")
	return created, nil
}

func (s *DrivingLogService) Get(ctx context.Context, id string) (*domain.DrivingLog, error) {
	return s.logs.FindByID(ctx, id)
}

func (s *DrivingLogService) ListForUser(ctx context.Context, userID string) ([]*domain.DrivingLog, error) {
	return s.logs.ListByUser(ctx, userID)
}

func (s *DrivingLogService) ListAll(ctx context.Context) ([]*domain.DrivingLog, error) {
	return s.logs.List(ctx)
}

func (s *DrivingLogService) ListFlagged(ctx context.Context) ([]*domain.DrivingLog, error) {
	return s.logs.ListByStatus(ctx, domain.LogFlagged)
}

// ListPendingReview returns logs waiting on an admin verdict: flagged at
// intake or parked under review.
func (s *DrivingLogService) ListPendingReview(ctx context.Context) ([]*domain.DrivingLog, error) {
	return s.logs.ListByStatus(ctx, domain.LogFlagged, domain.LogUnderReview)
}

// Review records an admin verdict on a log and notifies the subject.
func (s *DrivingLogService) Review(ctx context.Context, input ports.ReviewLogInput) (*domain.DrivingLog, error) {
	if input.Status != domain.LogApproved && input.Status != domain.LogRejected {
		return nil, fmt.Errorf("review status must be %s or %s", domain.LogApproved, domain.LogRejected)
	}

	log, err := s.logs.FindByID(ctx, input.LogID)
	if err != nil {
		return nil, err
	}
	if !log.Status.CanTransitionTo(input.Status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	log.Status = input.Status
	log.ReviewedBy = input.ReviewerID
	log.ReviewedAt = now
	log.ReviewNotes = input.ReviewNotes
	log.UpdatedAt = now

	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}

	kind := domain.NotifyLogApproved
	title := "Driving log approved"
	body := fmt.Sprintf("Your driving log for %s to %s has been approved.",
		log.PeriodStart.Format(dateLayout), log.PeriodEnd.Format(dateLayout))
	if input.Status == domain.LogRejected {
		kind = domain.NotifyLogRejected
		title = "Driving log rejected"
		body = fmt.Sprintf("Your driving log for %s to %s was rejected: %s",
			log.PeriodStart.Format(dateLayout), log.PeriodEnd.Format(dateLayout), input.ReviewNotes)
	}
	s.notifySubject(ctx, log, kind, title, body)

	s.logger.Info().
		Str("log_id", log.ID).
		Str("status", string(log.Status)).
		Str("reviewed_by", log.ReviewedBy).
		Msg("driving log reviewed")
	return log, nil
}

// SetSchedule creates or replaces the subject's submission schedule. The next
// due date counts forward from the last submission, or from today for a
// fresh schedule.
func (s *DrivingLogService) SetSchedule(ctx context.Context, userID, deviceID string, frequency domain.SubmissionFrequency) (*domain.LogSchedule, error) {
	if !domain.ValidSubmissionFrequency(frequency) {
		return nil, fmt.Errorf("unknown submission frequency %q", frequency)
	}

	now := time.Now().UTC()
	schedule, err := s.schedules.FindByUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrScheduleNotFound):
		schedule = &domain.LogSchedule{
			ID:        ulid.Make().String(),
			UserID:    userID,
			CreatedAt: now,
		}
	case err != nil:
		return nil, err
	}

	base := now
	if !schedule.LastSubmission.IsZero() {
		base = schedule.LastSubmission
	}

	schedule.DeviceID = deviceID
	schedule.Frequency = frequency
	schedule.NextDue = base.AddDate(0, 0, frequency.Days())
	schedule.UpdatedAt = now

	if err := s.schedules.Save(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("frequency", string(frequency)).
		Time("next_due", schedule.NextDue).
		Msg("submission schedule set")
	return schedule, nil
}

func (s *DrivingLogService) GetSchedule(ctx context.Context, userID string) (*domain.LogSchedule, error) {
	return s.schedules.FindByUser(ctx, userID)
}

func (s *DrivingLogService) ListSchedules(ctx context.Context) ([]*domain.LogSchedule, error) {
	return s.schedules.List(ctx)
}

// DaysUntilDue returns the whole days remaining until the subject's next
// submission deadline. Zero means due today; negative means overdue.
func (s *DrivingLogService) DaysUntilDue(ctx context.Context, userID string) (int, error) {
	schedule, err := s.schedules.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	due := schedule.NextDue.UTC().Truncate(24 * time.Hour)
	return int(due.Sub(today).Hours() / 24), nil
}

// advanceSchedule moves the subject's deadline forward after a submission.
// An on-time submission also resets the missed counter. Subjects without a
// schedule submit freely.
func (s *DrivingLogService) advanceSchedule(ctx context.Context, userID string, submittedAt time.Time) {
	schedule, err := s.schedules.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("schedule lookup failed")
		}
		return
	}

	onTime := schedule.NextDue.IsZero() || !submittedAt.After(schedule.NextDue)

	schedule.LastSubmission = submittedAt
	schedule.NextDue = submittedAt.AddDate(0, 0, schedule.Frequency.Days())
	if onTime {
		schedule.MissedSubmissions = 0
	}
	schedule.UpdatedAt = submittedAt

	if err := s.schedules.Save(ctx, schedule); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("schedule update failed")
	}
}

// notifySubject delivers a review notification. Failures are logged only.
func (s *DrivingLogService) notifySubject(ctx context.Context, l *domain.DrivingLog, kind domain.NotificationKind, title, body string) {
	if s.notify == nil {
		return
	}

	email := ""
	if user, err := s.accounts.FindByID(ctx, l.UserID); err == nil {
		email = user.Email
	}

	if _, err := s.notify.Notify(ctx, ports.NotifyInput{
		RecipientID: l.UserID,
		Email:       email,
		Kind:        kind,
		Title:       title,
		Body:        body,
	}); err != nil {
		s.logger.Warn().Err(err).Str("log_id", l.ID).Msg("notification failed")
	}
}

// screenLog applies the intake anomaly rules to a submission. Rules check in
// order of severity; the first hit wins.
func screenLog(periodStart, periodEnd time.Time, stats domain.LogStatistics, now time.Time) (domain.AnomalyType, string) {
	if periodEnd.Before(periodStart) || periodEnd.After(now) {
		return domain.AnomalyDataInconsistency, "reporting period is inverted or ends in the future"
	}

	periodDays := int(periodEnd.Sub(periodStart).Hours() / 24)
	if periodDays > 60 {
		return domain.AnomalyDataInconsistency, "reporting period exceeds 60 days"
	}

	if stats.TamperingAttempts > 3 {
		return domain.AnomalyTampering, "repeated tampering attempts recorded by the device"
	}

	if stats.TotalTests > 0 {
		failureRate := float64(stats.FailedTests) / float64(stats.TotalTests)
		if failureRate > 0.5 {
			return domain.AnomalyExcessiveFailures, "more than half of breath tests failed"
		}
	}

	// A month-long period needs at least daily testing on average.
	if periodDays >= 30 && stats.TotalTests < 30 {
		return domain.AnomalyBypass, "too few breath tests for the reporting period"
	}

	if stats.AverageBAC > 0.1 {
		return domain.AnomalyDeviceMalfunction, "average BAC reading outside the plausible range"
	}

	return domain.AnomalyNone, ""
}

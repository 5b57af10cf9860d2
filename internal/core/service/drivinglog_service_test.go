package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type stubLogRepo struct {
	logs map[string]*domain.DrivingLog
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{logs: make(map[string]*domain.DrivingLog)}
}

func cloneLog(l *domain.DrivingLog) *domain.DrivingLog {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLogRepo) Create(_ context.Context, l *domain.DrivingLog) (*domain.DrivingLog, error) {
	r.logs[l.ID] = cloneLog(l)
	return cloneLog(l), nil
}

func (r *stubLogRepo) FindByID(_ context.Context, id string) (*domain.DrivingLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, domain.ErrLogNotFound
	}
	return cloneLog(l), nil
}

func (r *stubLogRepo) ListByUser(_ context.Context, userID string) ([]*domain.DrivingLog, error) {
	var out []*domain.DrivingLog
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, cloneLog(l))
		}
	}
	return out, nil
}

func (r *stubLogRepo) ListByDevice(_ context.Context, deviceID string) ([]*domain.DrivingLog, error) {
	var out []*domain.DrivingLog
	for _, l := range r.logs {
		if l.DeviceID == deviceID {
			out = append(out, cloneLog(l))
		}
	}
	return out, nil
}

func (r *stubLogRepo) List(_ context.Context) ([]*domain.DrivingLog, error) {
	var out []*domain.DrivingLog
	for _, l := range r.logs {
		out = append(out, cloneLog(l))
	}
	return out, nil
}

func (r *stubLogRepo) ListByStatus(_ context.Context, statuses ...domain.LogStatus) ([]*domain.DrivingLog, error) {
	var out []*domain.DrivingLog
	for _, l := range r.logs {
		for _, s := range statuses {
			if l.Status == s {
				out = append(out, cloneLog(l))
				break
			}
		}
	}
	return out, nil
}

func (r *stubLogRepo) Update(_ context.Context, l *domain.DrivingLog) error {
	if _, ok := r.logs[l.ID]; !ok {
		return domain.ErrLogNotFound
	}
	r.logs[l.ID] = cloneLog(l)
	return nil
}

type stubScheduleRepo struct {
	schedules map[string]*domain.LogSchedule // keyed by user ID
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{schedules: make(map[string]*domain.LogSchedule)}
}

func (r *stubScheduleRepo) Save(_ context.Context, s *domain.LogSchedule) error {
	clone := *s
	r.schedules[s.UserID] = &clone
	return nil
}

func (r *stubScheduleRepo) FindByUser(_ context.Context, userID string) (*domain.LogSchedule, error) {
	s, ok := r.schedules[userID]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubScheduleRepo) List(_ context.Context) ([]*domain.LogSchedule, error) {
	var out []*domain.LogSchedule
	for _, s := range r.schedules {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

type logFixture struct {
	svc       *DrivingLogService
	logs      *stubLogRepo
	schedules *stubScheduleRepo
	users     *stubUserRepo
	notes     *stubNotificationService
}

func newLogFixture() *logFixture {
	logs := newStubLogRepo()
	schedules := newStubScheduleRepo()
	users := newStubUserRepo()
	notes := &stubNotificationService{}

	users.users["sam@example.com"] = &domain.User{
		ID: "u1", Email: "sam@example.com", Name: "Sam Subject", Role: domain.RoleUser, Status: domain.AccountActive,
	}

	svc := NewDrivingLogService(logs, schedules, users, notes, zerolog.Nop())
	return &logFixture{svc: svc, logs: logs, schedules: schedules, users: users, notes: notes}
}

// cleanStats passes every screening rule for a month-long period.
func cleanStats() domain.LogStatistics {
	return domain.LogStatistics{
		TotalTests:  45,
		PassedTests: 43,
		FailedTests: 2,
		AverageBAC:  0.01,
		MaxBAC:      0.03,
	}
}

func submitInput(stats domain.LogStatistics) ports.SubmitLogInput {
	now := time.Now().UTC()
	return ports.SubmitLogInput{
		UserID:      "u1",
		DeviceID:    "d1",
		PeriodStart: now.AddDate(0, 0, -31).Format("2006-01-02"),
		PeriodEnd:   now.AddDate(0, 0, -1).Format("2006-01-02"),
		Statistics:  stats,
	}
}

func TestDrivingLogService_Submit_CleanLog(t *testing.T) {
	f := newLogFixture()

	log, err := f.svc.Submit(context.Background(), submitInput(cleanStats()))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if log.Status != domain.LogSubmitted {
		t.Fatalf("clean log must be submitted, got %s", log.Status)
	}
	if log.Anomaly != domain.AnomalyNone {
		t.Fatalf("clean log must carry no anomaly, got %s", log.Anomaly)
	}
	if log.ID == "" || log.SubmittedAt.IsZero() {
		t.Fatalf("expected generated ID and submission time: %+v", log)
	}
}

func TestDrivingLogService_Submit_FlagsTampering(t *testing.T) {
	f := newLogFixture()

	stats := cleanStats()
	stats.TamperingAttempts = 5
	log, err := f.svc.Submit(context.Background(), submitInput(stats))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if log.Status != domain.LogFlagged || log.Anomaly != domain.AnomalyTampering {
		t.Fatalf("expected flagged tampering log, got status %s anomaly %s", log.Status, log.Anomaly)
	}
	if log.AnomalyDetails == "" {
		t.Fatalf("flagged log must explain the anomaly")
	}
}

func TestDrivingLogService_Submit_FlagsFuturePeriod(t *testing.T) {
	f := newLogFixture()

	input := submitInput(cleanStats())
	input.PeriodEnd = time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	log, err := f.svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if log.Anomaly != domain.AnomalyDataInconsistency {
		t.Fatalf("future period must flag data inconsistency, got %s", log.Anomaly)
	}
}

func TestDrivingLogService_Submit_FlagsExcessiveFailures(t *testing.T) {
	f := newLogFixture()

	input := submitInput(domain.LogStatistics{TotalTests: 20, PassedTests: 5, FailedTests: 15})
	now := time.Now().UTC()
	input.PeriodStart = now.AddDate(0, 0, -7).Format("2006-01-02")
	input.PeriodEnd = now.AddDate(0, 0, -1).Format("2006-01-02")

	log, err := f.svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if log.Anomaly != domain.AnomalyExcessiveFailures {
		t.Fatalf("expected excessive-failures anomaly, got %s", log.Anomaly)
	}
}

func TestDrivingLogService_Submit_FlagsSparseTesting(t *testing.T) {
	f := newLogFixture()

	stats := cleanStats()
	stats.TotalTests = 10
	stats.PassedTests = 10
	stats.FailedTests = 0
	log, err := f.svc.Submit(context.Background(), submitInput(stats))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if log.Anomaly != domain.AnomalyBypass {
		t.Fatalf("sparse month-long log must flag bypass, got %s", log.Anomaly)
	}
}

func TestDrivingLogService_Submit_BadDate(t *testing.T) {
	f := newLogFixture()

	input := submitInput(cleanStats())
	input.PeriodStart = "next week"
	if _, err := f.svc.Submit(context.Background(), input); err == nil {
		t.Fatalf("expected error for unparseable period_start")
	}
}

func TestDrivingLogService_Submit_AdvancesSchedule(t *testing.T) {
	f := newLogFixture()

	now := time.Now().UTC()
	f.schedules.schedules["u1"] = &domain.LogSchedule{
		ID:                "s1",
		UserID:            "u1",
		Frequency:         domain.SubmitWeekly,
		NextDue:           now.AddDate(0, 0, 3),
		MissedSubmissions: 2,
	}

	if _, err := f.svc.Submit(context.Background(), submitInput(cleanStats())); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	schedule := f.schedules.schedules["u1"]
	if schedule.LastSubmission.IsZero() {
		t.Fatalf("submission must stamp the schedule")
	}
	wantDue := schedule.LastSubmission.AddDate(0, 0, 7)
	if !schedule.NextDue.Equal(wantDue) {
		t.Fatalf("next due not advanced by one cycle: got %v want %v", schedule.NextDue, wantDue)
	}
	if schedule.MissedSubmissions != 0 {
		t.Fatalf("on-time submission must reset the missed counter, got %d", schedule.MissedSubmissions)
	}
}

func TestDrivingLogService_Review_ApprovesAndNotifies(t *testing.T) {
	f := newLogFixture()
	log, _ := f.svc.Submit(context.Background(), submitInput(cleanStats()))

	reviewed, err := f.svc.Review(context.Background(), ports.ReviewLogInput{
		LogID:      log.ID,
		ReviewerID: "a1",
		Status:     domain.LogApproved,
	})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if reviewed.Status != domain.LogApproved || reviewed.ReviewedBy != "a1" || reviewed.ReviewedAt.IsZero() {
		t.Fatalf("unexpected reviewed log: %+v", reviewed)
	}

	if len(f.notes.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notes.sent))
	}
	note := f.notes.sent[0].input
	if note.RecipientID != "u1" || note.Kind != domain.NotifyLogApproved {
		t.Fatalf("unexpected notification: %+v", note)
	}
	if note.Email != "sam@example.com" {
		t.Fatalf("expected subject email on notification, got %q", note.Email)
	}
}

func TestDrivingLogService_Review_RejectsWithNotes(t *testing.T) {
	f := newLogFixture()
	stats := cleanStats()
	stats.TamperingAttempts = 5
	log, _ := f.svc.Submit(context.Background(), submitInput(stats))

	reviewed, err := f.svc.Review(context.Background(), ports.ReviewLogInput{
		LogID:       log.ID,
		ReviewerID:  "a1",
		Status:      domain.LogRejected,
		ReviewNotes: "tampering confirmed",
	})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if reviewed.Status != domain.LogRejected || reviewed.ReviewNotes != "tampering confirmed" {
		t.Fatalf("unexpected reviewed log: %+v", reviewed)
	}
	if f.notes.sent[0].input.Kind != domain.NotifyLogRejected {
		t.Fatalf("expected rejection notification, got %s", f.notes.sent[0].input.Kind)
	}
}

func TestDrivingLogService_Review_InvalidVerdict(t *testing.T) {
	f := newLogFixture()
	log, _ := f.svc.Submit(context.Background(), submitInput(cleanStats()))

	if _, err := f.svc.Review(context.Background(), ports.ReviewLogInput{
		LogID:      log.ID,
		ReviewerID: "a1",
		Status:     domain.LogUnderReview,
	}); err == nil {
		t.Fatalf("expected error for non-terminal verdict")
	}
}

func TestDrivingLogService_Review_TerminalLog(t *testing.T) {
	f := newLogFixture()
	log, _ := f.svc.Submit(context.Background(), submitInput(cleanStats()))

	if _, err := f.svc.Review(context.Background(), ports.ReviewLogInput{
		LogID: log.ID, ReviewerID: "a1", Status: domain.LogApproved,
	}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	if _, err := f.svc.Review(context.Background(), ports.ReviewLogInput{
		LogID: log.ID, ReviewerID: "a1", Status: domain.LogRejected,
	}); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDrivingLogService_ListPendingReview(t *testing.T) {
	f := newLogFixture()

	stats := cleanStats()
	stats.TamperingAttempts = 5
	if _, err := f.svc.Submit(context.Background(), submitInput(stats)); err != nil {
		t.Fatalf("flagged submit: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), submitInput(cleanStats())); err != nil {
		t.Fatalf("clean submit: %v", err)
	}

	pending, err := f.svc.ListPendingReview(context.Background())
	if err != nil {
		t.Fatalf("ListPendingReview returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].Status != domain.LogFlagged {
		t.Fatalf("only the flagged log should be pending review, got %d", len(pending))
	}
}

func TestDrivingLogService_SetSchedule(t *testing.T) {
	f := newLogFixture()

	schedule, err := f.svc.SetSchedule(context.Background(), "u1", "d1", domain.SubmitMonthly)
	if err != nil {
		t.Fatalf("SetSchedule returned error: %v", err)
	}
	if schedule.Frequency != domain.SubmitMonthly || schedule.NextDue.IsZero() {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}

	if _, err := f.svc.SetSchedule(context.Background(), "u1", "d1", "yearly"); err == nil {
		t.Fatalf("expected error for unknown frequency")
	}
}

func TestDrivingLogService_DaysUntilDue(t *testing.T) {
	f := newLogFixture()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	f.schedules.schedules["u1"] = &domain.LogSchedule{
		ID: "s1", UserID: "u1", Frequency: domain.SubmitWeekly, NextDue: today.AddDate(0, 0, 5),
	}

	days, err := f.svc.DaysUntilDue(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DaysUntilDue returned error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days until due, got %d", days)
	}

	if _, err := f.svc.DaysUntilDue(context.Background(), "nobody"); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

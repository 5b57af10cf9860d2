package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/metrics"
	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type DrivingLogHandler struct {
	logs ports.DrivingLogService
}

func NewDrivingLogHandler(logs ports.DrivingLogService) *DrivingLogHandler {
	return &DrivingLogHandler{logs: logs}
}

type logStatisticsRequest struct {
	TotalTests        int     `json:"total_tests"        validate:"gte=0"`
	PassedTests       int     `json:"passed_tests"       validate:"gte=0"`
	FailedTests       int     `json:"failed_tests"       validate:"gte=0"`
	SkippedTests      int     `json:"skipped_tests"      validate:"gte=0"`
	AverageBAC        float64 `json:"average_bac"        validate:"gte=0"`
	MaxBAC            float64 `json:"max_bac"            validate:"gte=0"`
	TamperingAttempts int     `json:"tampering_attempts" validate:"gte=0"`
}

type submitLogRequest struct {
	DeviceID    string               `json:"device_id"    validate:"required"`
	PeriodStart string               `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string               `json:"period_end"   validate:"required,datetime=2006-01-02"`
	Notes       string               `json:"notes"`
	Statistics  logStatisticsRequest `json:"statistics"`
}

type reviewLogRequest struct {
	Status      string `json:"status" validate:"required,oneof=approved rejected"`
	ReviewNotes string `json:"review_notes"`
}

type setScheduleRequest struct {
	UserID    string `json:"user_id"   validate:"required"`
	DeviceID  string `json:"device_id"`
	Frequency string `json:"frequency" validate:"required,oneof=weekly biweekly monthly quarterly"`
}

type ddayResponse struct {
	DaysUntilDue int `json:"days_until_due"`
}

// Submit files a driving log for the current subject.
//
// @Summary      Submit a driving log
// @Tags         driving-logs
// @Accept       json
// @Produce      json
// @Param        body  body      submitLogRequest  true  "Log details"
// @Success      201   {object}  domain.DrivingLog
// @Failure      400   {object}  map[string]string
// @Router       /user/driving-logs [post]
func (h *DrivingLogHandler) Submit(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req submitLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	log, err := h.logs.Submit(c.Request().Context(), ports.SubmitLogInput{
		UserID:      principal.ID,
		DeviceID:    req.DeviceID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Notes:       req.Notes,
		Statistics: domain.LogStatistics{
			TotalTests:        req.Statistics.TotalTests,
			PassedTests:       req.Statistics.PassedTests,
			FailedTests:       req.Statistics.FailedTests,
			SkippedTests:      req.Statistics.SkippedTests,
			AverageBAC:        req.Statistics.AverageBAC,
			MaxBAC:            req.Statistics.MaxBAC,
			TamperingAttempts: req.Statistics.TamperingAttempts,
		},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	metrics.LogsSubmittedTotal.WithLabelValues(string(log.Status)).Inc()
	return c.JSON(http.StatusCreated, log)
}

// ListMine returns the current subject's driving logs.
//
// @Summary      Own driving logs
// @Tags         driving-logs
// @Produce      json
// @Success      200  {array}  domain.DrivingLog
// @Router       /user/driving-logs [get]
func (h *DrivingLogHandler) ListMine(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	logs, err := h.logs.ListForUser(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// ListAll returns every driving log (admin).
//
// @Summary      All driving logs
// @Tags         driving-logs
// @Produce      json
// @Success      200  {array}  domain.DrivingLog
// @Router       /admin/driving-logs [get]
func (h *DrivingLogHandler) ListAll(c echo.Context) error {
	logs, err := h.logs.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// ListFlagged returns logs flagged by anomaly screening (admin).
//
// @Summary      Flagged driving logs
// @Tags         driving-logs
// @Produce      json
// @Success      200  {array}  domain.DrivingLog
// @Router       /admin/driving-logs/flagged [get]
func (h *DrivingLogHandler) ListFlagged(c echo.Context) error {
	logs, err := h.logs.ListFlagged(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// ListPendingReview returns logs awaiting an admin verdict.
//
// @Summary      Driving logs pending review
// @Tags         driving-logs
// @Produce      json
// @Success      200  {array}  domain.DrivingLog
// @Router       /admin/driving-logs/pending-review [get]
func (h *DrivingLogHandler) ListPendingReview(c echo.Context) error {
	logs, err := h.logs.ListPendingReview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// Review approves or rejects a driving log (admin).
//
// @Summary      Review a driving log
// @Tags         driving-logs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Log ID"
// @Param        body  body      reviewLogRequest  true  "Verdict"
// @Success      200   {object}  domain.DrivingLog
// @Failure      422   {object}  map[string]string
// @Router       /admin/driving-logs/{id}/review [put]
func (h *DrivingLogHandler) Review(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req reviewLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	log, err := h.logs.Review(c.Request().Context(), ports.ReviewLogInput{
		LogID:       c.Param("id"),
		ReviewerID:  principal.ID,
		Status:      domain.LogStatus(req.Status),
		ReviewNotes: req.ReviewNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, log)
}

// SetSchedule creates or replaces a subject's submission schedule (admin).
//
// @Summary      Set a submission schedule
// @Tags         driving-logs
// @Accept       json
// @Produce      json
// @Param        body  body      setScheduleRequest  true  "Schedule details"
// @Success      200   {object}  domain.LogSchedule
// @Failure      400   {object}  map[string]string
// @Router       /admin/log-schedules [post]
func (h *DrivingLogHandler) SetSchedule(c echo.Context) error {
	var req setScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	schedule, err := h.logs.SetSchedule(c.Request().Context(), req.UserID, req.DeviceID, domain.SubmissionFrequency(req.Frequency))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, schedule)
}

// ListSchedules returns every submission schedule (admin).
//
// @Summary      List submission schedules
// @Tags         driving-logs
// @Produce      json
// @Success      200  {array}  domain.LogSchedule
// @Router       /admin/log-schedules [get]
func (h *DrivingLogHandler) ListSchedules(c echo.Context) error {
	schedules, err := h.logs.ListSchedules(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedules)
}

// MySchedule returns the current subject's submission schedule.
//
// @Summary      Own submission schedule
// @Tags         driving-logs
// @Produce      json
// @Success      200  {object}  domain.LogSchedule
// @Failure      404  {object}  map[string]string
// @Router       /user/log-schedule [get]
func (h *DrivingLogHandler) MySchedule(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	schedule, err := h.logs.GetSchedule(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedule)
}

// Dday returns the days remaining until the subject's next submission is due.
//
// @Summary      Days until next submission
// @Tags         driving-logs
// @Produce      json
// @Success      200  {object}  ddayResponse
// @Failure      404  {object}  map[string]string
// @Router       /user/log-schedule/dday [get]
func (h *DrivingLogHandler) Dday(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	days, err := h.logs.DaysUntilDue(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ddayResponse{DaysUntilDue: days})
}

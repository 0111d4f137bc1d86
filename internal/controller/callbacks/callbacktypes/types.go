package callbacktypes

import (
	"time"

	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/observability/metrics"
	"github.com/psicocare/psicocare_bot/internal/service"
)

// Handler holds the dependencies shared by every callback and command handler.
type Handler struct {
	Accounts     *service.AccountService
	Appointments *service.AppointmentService
	Care         *service.CareService
	Assessments  *service.AssessmentService
	Notes        *service.NoteService
	Admin        *service.AdminService

	StateManager *state.Manager
	Metrics      *metrics.Metrics
	Logger       *zap.Logger

	// Now is the clock used for calendars and date checks.
	Now func() time.Time
}

// Today returns the current time, falling back to time.Now.
func (h *Handler) Today() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

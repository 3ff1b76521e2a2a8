package app

import (
	"database/sql"

	"github.com/shiftbook/shiftbook/internal/config"
	"github.com/shiftbook/shiftbook/internal/event_bus"
	"github.com/shiftbook/shiftbook/internal/metrics"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/holiday"
	"github.com/shiftbook/shiftbook/pkg/summary"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/validation"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	HolidayRepo    holiday.Repository
	HolidayService *holiday.Service
	HolidayHandler *holiday.Handler
	Calendar       *workcal.Calendar

	TimeEntryRepo    timeentry.Repository
	TimeEntryService timeentry.Service
	TimeEntryHandler *timeentry.Handler

	AbsenceRepo    absence.Repository
	AbsenceService absence.Service
	AbsenceHandler *absence.Handler

	SummaryService *summary.ServiceImpl
	SummaryHandler *summary.Handler

	ValidationHandler *validation.Handler

	Bus   *event_bus.EventBus
	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()
	locks := utils.NewOwnerLock()
	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	holidayRepo := holiday.NewRepository(db)
	deps.HolidayRepo = holidayRepo
	deps.HolidayService = holiday.NewService(holidayRepo)
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayService)
	deps.Calendar = workcal.NewCalendar(holidayRepo)

	timeEntryRepo := timeentry.NewRepository(db)
	absenceRepo := absence.NewRepository(db)
	deps.TimeEntryRepo = timeEntryRepo
	deps.AbsenceRepo = absenceRepo

	// The worked/absent exclusivity check runs in both directions, so each
	// validator gets a narrow view of the other store.
	timeEntryValidator := timeentry.NewValidator(timeEntryRepo, absenceRepo.Periods, deps.Clock)
	absenceValidator := absence.NewValidator(absenceRepo, timeEntryRepo.EntryDates, deps.Clock)

	deps.TimeEntryService = timeentry.NewService(timeEntryRepo, timeEntryValidator, locks, deps.Bus)
	deps.TimeEntryHandler = timeentry.NewHandler(deps.TimeEntryService)

	deps.AbsenceService = absence.NewService(absenceRepo, absenceValidator, locks, deps.Clock, deps.Bus)
	deps.AbsenceHandler = absence.NewHandler(deps.AbsenceService)

	deps.SummaryService = summary.NewService(timeEntryRepo, absenceRepo)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService)

	deps.ValidationHandler = validation.NewHandler(deps.TimeEntryService, deps.AbsenceService)

	subscribeAuditLog(deps.Bus)

	return deps
}

// subscribeAuditLog records every entry mutation in the application log.
func subscribeAuditLog(bus *event_bus.EventBus) {
	for _, eventType := range []event_bus.EventType{event_bus.TimeEntryStored, event_bus.TimeEntryDeleted} {
		event_bus.SubscribeTyped[event_bus.TimeEntryChanged](bus, eventType,
			func(e event_bus.EventT[event_bus.TimeEntryChanged]) error {
				userId, _ := user.CurrentId(e.Context())
				log.Infof("%s: user=%d uid=%s date=%s hours=%.2f", e.Type, userId, e.Data.UID, e.Data.Date, e.Data.Hours)
				return nil
			})
	}
	for _, eventType := range []event_bus.EventType{event_bus.NonAccountingEntryStored, event_bus.NonAccountingEntryDeleted} {
		event_bus.SubscribeTyped[event_bus.NonAccountingEntryChanged](bus, eventType,
			func(e event_bus.EventT[event_bus.NonAccountingEntryChanged]) error {
				userId, _ := user.CurrentId(e.Context())
				log.Infof("%s: user=%d uid=%s start=%s days=%d type=%s", e.Type, userId, e.Data.UID, e.Data.StartDate, e.Data.Days, e.Data.Type)
				return nil
			})
	}
}

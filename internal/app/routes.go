package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiftbook/shiftbook/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Time entries
	r.HandleFunc("/api/entries/time", deps.TimeEntryHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/entries/time", deps.TimeEntryHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/entries/time/{entryUid}", deps.TimeEntryHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/entries/time/{entryUid}", deps.TimeEntryHandler.DeleteEntry).Methods("DELETE")

	// Non-accounting entries
	r.HandleFunc("/api/entries/non-accounting", deps.AbsenceHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/entries/non-accounting", deps.AbsenceHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/entries/non-accounting/{entryUid}", deps.AbsenceHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/entries/non-accounting/{entryUid}", deps.AbsenceHandler.DeleteEntry).Methods("DELETE")

	// Dry-run validation
	r.HandleFunc("/api/entries/validate", deps.ValidationHandler.ValidateEntry).Methods("POST")

	// Summaries
	r.HandleFunc("/api/summary/year/{year}", deps.SummaryHandler.GetYearSummary).Methods("GET")
	r.HandleFunc("/api/summary/year/{year}/totals", deps.SummaryHandler.GetYearTotals).Methods("GET")
	r.HandleFunc("/api/summary/month/{year}/{month}", deps.SummaryHandler.GetMonthDetail).Methods("GET")

	// National holidays
	r.HandleFunc("/api/holidays/year/{year}", deps.HolidayHandler.GetYearHolidays).Methods("GET")
	r.HandleFunc("/api/holidays", deps.HolidayHandler.StoreHoliday).Methods("PUT")
	r.HandleFunc("/api/holidays/{date}", deps.HolidayHandler.DeleteHoliday).Methods("DELETE")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user/vacation-balance", deps.AbsenceHandler.VacationBalance).Methods("GET")

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}
}

package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shiftbook/shiftbook/internal/rest"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
	"github.com/shiftbook/shiftbook/pkg/user"
)

type MonthlySummaryDTO struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	TotalDays         int     `json:"totalDays"`
	NonAccountingDays int     `json:"nonAccountingDays"`
	WorkingDays       int     `json:"workingDays"`
	ExpectedHours     float64 `json:"expectedHours"`
	WorkedHours       float64 `json:"workedHours"`
	BalanceHours      float64 `json:"balanceHours"`
}

type YearlyTotalsDTO struct {
	Year              int     `json:"year"`
	TotalDays         int     `json:"totalDays"`
	NonAccountingDays int     `json:"nonAccountingDays"`
	WorkingDays       int     `json:"workingDays"`
	ExpectedHours     float64 `json:"expectedHours"`
	WorkedHours       float64 `json:"workedHours"`
	BalanceHours      float64 `json:"balanceHours"`
}

type MonthDetailDTO struct {
	Summary              MonthlySummaryDTO   `json:"summary"`
	TimeEntries          []timeentry.EntryDTO `json:"timeEntries"`
	NonAccountingEntries []absence.EntryDTO   `json:"nonAccountingEntries"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetYearSummary godoc
// @Summary Monthly summaries for a whole year
// @Tags Summary
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} map[int]MonthlySummaryDTO
// @Router /api/summary/year/{year} [get]
// @Security XUserId
func (h *Handler) GetYearSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, ok := yearVar(w, r)
	if !ok {
		return
	}
	months, err := h.service.YearSummary(r.Context(), year)
	if err != nil {
		writeSummaryError(w, err)
		return
	}

	dtos := make(map[int]MonthlySummaryDTO, len(months))
	for m, monthly := range months {
		dtos[m] = summaryToDTO(monthly)
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetYearTotals godoc
// @Summary Aggregated totals for a whole year
// @Tags Summary
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} YearlyTotalsDTO
// @Router /api/summary/year/{year}/totals [get]
// @Security XUserId
func (h *Handler) GetYearTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, ok := yearVar(w, r)
	if !ok {
		return
	}
	totals, err := h.service.YearTotals(r.Context(), year)
	if err != nil {
		writeSummaryError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(YearlyTotalsDTO{
		Year:              totals.Year,
		TotalDays:         totals.TotalDays,
		NonAccountingDays: totals.NonAccountingDays,
		WorkingDays:       totals.WorkingDays,
		ExpectedHours:     totals.ExpectedHours,
		WorkedHours:       totals.WorkedHours,
		BalanceHours:      totals.BalanceHours,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetMonthDetail godoc
// @Summary One month's summary with its entries
// @Tags Summary
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} MonthDetailDTO
// @Router /api/summary/month/{year}/{month} [get]
// @Security XUserId
func (h *Handler) GetMonthDetail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, ok := yearVar(w, r)
	if !ok {
		return
	}
	month, err := strconv.Atoi(mux.Vars(r)["month"])
	if err != nil || month < 1 || month > 12 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be 1-12")
		return
	}

	detail, err := h.service.MonthDetail(r.Context(), year, time.Month(month))
	if err != nil {
		writeSummaryError(w, err)
		return
	}

	timeEntries := make([]timeentry.EntryDTO, 0, len(detail.TimeEntries))
	for _, e := range detail.TimeEntries {
		timeEntries = append(timeEntries, timeentry.ToDTO(e))
	}
	absences := make([]absence.EntryDTO, 0, len(detail.NonAccountingEntries))
	for _, e := range detail.NonAccountingEntries {
		absences = append(absences, absence.ToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(MonthDetailDTO{
		Summary:              summaryToDTO(detail.Summary),
		TimeEntries:          timeEntries,
		NonAccountingEntries: absences,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func yearVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be a number")
		return 0, false
	}
	return year, true
}

func summaryToDTO(m MonthlySummary) MonthlySummaryDTO {
	return MonthlySummaryDTO{
		Year:              m.Year,
		Month:             m.Month,
		TotalDays:         m.TotalDays,
		NonAccountingDays: m.NonAccountingDays,
		WorkingDays:       m.WorkingDays,
		ExpectedHours:     m.ExpectedHours,
		WorkedHours:       m.WorkedHours,
		BalanceHours:      m.BalanceHours,
	}
}

func writeSummaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, rules.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

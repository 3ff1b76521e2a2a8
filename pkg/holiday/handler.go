package holiday

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shiftbook/shiftbook/internal/rest"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetYearHolidays godoc
// @Summary List national holidays of a year
// @Tags Holiday
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} map[string]string
// @Router /api/holidays/year/{year} [get]
func (h *Handler) GetYearHolidays(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	holidays, err := h.service.ForYear(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	byDate := make(map[string]string, len(holidays))
	for _, day := range holidays {
		byDate[workcal.FormatDate(day.Date)] = day.Name
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(byDate); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// StoreHoliday godoc
// @Summary Add or rename a national holiday
// @Tags Holiday
// @Accept json
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/holidays [put]
func (h *Handler) StoreHoliday(w http.ResponseWriter, r *http.Request) {
	log.Debug("Storing holiday")

	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := workcal.ParseDate(dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	if err := h.service.Store(r.Context(), Holiday{Date: date, Name: dto.Name}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHoliday godoc
// @Summary Remove a national holiday
// @Tags Holiday
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204 "No Content"
// @Failure 404 {string} string "Holiday not found"
// @Router /api/holidays/{date} [delete]
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := workcal.ParseDate(vars["date"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}

	deleted, err := h.service.Delete(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, ErrHolidayNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

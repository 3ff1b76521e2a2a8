package timeentry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shiftbook/shiftbook/internal/rest"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	UID       string            `json:"uid,omitempty"`
	Date      string            `json:"date"`
	StartTime workcal.TimeOfDay `json:"startTime"`
	EndTime   workcal.TimeOfDay `json:"endTime"`
	Comment   string            `json:"comment,omitempty"`
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Hours     float64           `json:"hours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateEntry godoc
// @Summary Record a work shift
// @Tags TimeEntry
// @Accept json
// @Produce json
// @Param entry body EntryDTO true "Time entry"
// @Success 201 {object} EntryDTO
// @Failure 400 {object} rest.ErrorResponse "Malformed entry"
// @Failure 422 {object} rest.ErrorResponse "Business rule violated"
// @Failure 503 {string} string "Entry store unavailable"
// @Router /api/entries/time [post]
// @Security XUserId
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating time entry")
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := FromDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid time entry", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		writeEntryError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateEntry godoc
// @Summary Update a work shift
// @Tags TimeEntry
// @Accept json
// @Produce json
// @Param entryUid path string true "Entry UID"
// @Param entry body EntryDTO true "Time entry"
// @Success 200 {object} EntryDTO
// @Failure 404 {string} string "Entry not found"
// @Failure 422 {object} rest.ErrorResponse "Business rule violated"
// @Router /api/entries/time/{entryUid} [put]
// @Security XUserId
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating time entry")
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	uid, err := uuid.Parse(vars["entryUid"])
	if err != nil {
		http.Error(w, "Invalid entry uid", http.StatusBadRequest)
		return
	}
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := FromDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid time entry", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), uid, entry)
	if err != nil {
		writeEntryError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEntry godoc
// @Summary Delete a work shift
// @Tags TimeEntry
// @Param entryUid path string true "Entry UID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Entry not found"
// @Router /api/entries/time/{entryUid} [delete]
// @Security XUserId
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid, err := uuid.Parse(vars["entryUid"])
	if err != nil {
		http.Error(w, "Invalid entry uid", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), uid); err != nil {
		writeEntryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEntries godoc
// @Summary List work shifts of a month
// @Tags TimeEntry
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} EntryDTO
// @Router /api/entries/time [get]
// @Security XUserId
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' query parameter must be a number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' query parameter must be 1-12")
		return
	}

	entries, err := h.service.ListForMonth(r.Context(), year, time.Month(month))
	if err != nil {
		writeEntryError(w, err)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ToDTO(e Entry) EntryDTO {
	uid := ""
	if e.UID.Valid {
		uid = e.UID.UUID.String()
	}
	return EntryDTO{
		UID:       uid,
		Date:      workcal.FormatDate(e.Date),
		StartTime: e.Start,
		EndTime:   e.End,
		Comment:   e.Comment,
		Month:     e.Month,
		Year:      e.Year,
		Hours:     e.Hours(),
	}
}

func FromDTO(dto EntryDTO) (Entry, error) {
	date, err := workcal.ParseDate(dto.Date)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Date:    date,
		Start:   dto.StartTime,
		End:     dto.EndTime,
		Comment: dto.Comment,
	}, nil
}

func writeEntryError(w http.ResponseWriter, err error) {
	if violation, ok := rules.AsViolation(err); ok {
		rest.WriteError(w, http.StatusUnprocessableEntity, "Validation failed", violation.Reason)
		return
	}
	switch {
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, rules.ErrStoreUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

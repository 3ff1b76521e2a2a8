package validation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiftbook/shiftbook/internal/rest"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
	"github.com/shiftbook/shiftbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type RequestDTO struct {
	TimeEntry          *timeentry.EntryDTO `json:"timeEntry,omitempty"`
	NonAccountingEntry *absence.EntryDTO   `json:"nonAccountingEntry,omitempty"`
}

type ResultDTO struct {
	IsValid   bool     `json:"isValid"`
	Conflicts []string `json:"conflicts"`
}

// Handler exposes the entry validators as a dry run: the candidate goes
// through the same admissibility checks as a write but nothing is persisted.
type Handler struct {
	timeEntries timeentry.Service
	absences    absence.Service
}

func NewHandler(timeEntries timeentry.Service, absences absence.Service) *Handler {
	return &Handler{timeEntries: timeEntries, absences: absences}
}

// ValidateEntry godoc
// @Summary Check an entry without storing it
// @Tags Validation
// @Accept json
// @Produce json
// @Param request body RequestDTO true "Exactly one of timeEntry or nonAccountingEntry"
// @Success 200 {object} ResultDTO
// @Failure 400 {object} rest.ErrorResponse "Neither entry kind given or malformed entry"
// @Failure 503 {string} string "Entry store unavailable"
// @Router /api/entries/validate [post]
// @Security XUserId
func (h *Handler) ValidateEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Dry-run validating entry")
	w.Header().Set("Content-Type", "application/json")

	var dto RequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if (dto.TimeEntry == nil) == (dto.NonAccountingEntry == nil) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid validation request",
			"exactly one of 'timeEntry' or 'nonAccountingEntry' must be given")
		return
	}

	var err error
	if dto.TimeEntry != nil {
		var entry timeentry.Entry
		entry, err = timeentry.FromDTO(*dto.TimeEntry)
		if err == nil {
			err = h.timeEntries.Validate(r.Context(), entry)
		} else {
			rest.WriteError(w, http.StatusBadRequest, "Invalid time entry", err.Error())
			return
		}
	} else {
		var entry absence.Entry
		entry, err = absence.FromDTO(*dto.NonAccountingEntry)
		if err == nil {
			err = h.absences.Validate(r.Context(), entry)
		} else {
			rest.WriteError(w, http.StatusBadRequest, "Invalid non-accounting entry", err.Error())
			return
		}
	}

	// A store failure must never be reported as a clean validation result.
	if err != nil {
		if violation, ok := rules.AsViolation(err); ok {
			writeResult(w, ResultDTO{IsValid: false, Conflicts: []string{violation.Reason}})
			return
		}
		switch {
		case errors.Is(err, user.ErrNoUser):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, rules.ErrStoreUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeResult(w, ResultDTO{IsValid: true, Conflicts: []string{}})
}

func writeResult(w http.ResponseWriter, result ResultDTO) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

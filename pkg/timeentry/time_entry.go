package timeentry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

// Entry is one recorded work shift. Month and Year are always derived from
// Date; externally supplied values are overwritten before validation.
type Entry struct {
	UID     uuid.NullUUID
	Date    time.Time
	Start   workcal.TimeOfDay
	End     workcal.TimeOfDay
	Comment string
	Month   int
	Year    int
}

// Hours returns the shift duration with the automatic break rule applied.
func (e Entry) Hours() float64 {
	return workcal.ShiftHours(e.Start, e.End)
}

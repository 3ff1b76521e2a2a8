package absence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

// Type is the closed set of non-accounting entry kinds.
type Type string

const (
	TypeVacation         Type = "vacation"
	TypeMedicalLeave     Type = "medical_leave"
	TypeMarriageLeave    Type = "marriage_leave"
	TypeBereavementLeave Type = "bereavement_leave"
	TypeOther            Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVacation, TypeMedicalLeave, TypeMarriageLeave, TypeBereavementLeave, TypeOther:
		return true
	}
	return false
}

// MaxDays returns the per-entry day ceiling for the type. ok is false for
// types without a ceiling (medical leave, other).
func (t Type) MaxDays() (days int, ok bool) {
	switch t {
	case TypeVacation:
		return workcal.VacationDaysPerYear, true
	case TypeMarriageLeave:
		return 3, true
	case TypeBereavementLeave:
		return 2, true
	case TypeMedicalLeave, TypeOther:
		return 0, false
	}
	return 0, false
}

// Entry is a contiguous non-working period: the closed date interval
// [StartDate, StartDate+Days-1]. Month and Year are derived from StartDate.
type Entry struct {
	UID       uuid.NullUUID
	StartDate time.Time
	Days      int
	Type      Type
	Comment   string
	Month     int
	Year      int
}

func (e Entry) Period() workcal.DatePeriod {
	return workcal.DatePeriod{Start: e.StartDate, Days: e.Days}
}

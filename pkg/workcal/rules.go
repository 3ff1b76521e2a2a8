package workcal

// Work rules applied by validation and aggregation.
const (
	// ExpectedHoursPerDay is the contracted workload per working day.
	ExpectedHoursPerDay = 8

	// BreakThresholdMinutes is the raw shift span above which the automatic
	// unpaid break is deducted.
	BreakThresholdMinutes = 6 * 60

	// BreakMinutes is the automatic unpaid break deduction.
	BreakMinutes = 60

	// MaxShiftHours caps a single entry.
	MaxShiftHours = 24

	// VacationDaysPerYear is the vacation allowance per calendar year.
	VacationDaysPerYear = 30
)

package holiday

import "time"

// Holiday is one row of the national holiday fact table. The table is
// consumed as an external fact, never computed from recurrence rules.
type Holiday struct {
	Date time.Time
	Name string
}

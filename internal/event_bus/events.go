package event_bus

const (
	TimeEntryStored           EventType = "timeentry.stored"
	TimeEntryDeleted          EventType = "timeentry.deleted"
	NonAccountingEntryStored  EventType = "non_accounting_entry.stored"
	NonAccountingEntryDeleted EventType = "non_accounting_entry.deleted"
)

type TimeEntryChanged struct {
	UID   string
	Date  string
	Hours float64
}

type NonAccountingEntryChanged struct {
	UID       string
	StartDate string
	Days      int
	Type      string
}

package dialogue

// Field identifies which contact field the collection flow is waiting on.
type Field string

// Collection fields, in the fixed order the flow walks them. FieldNone
// means no collection is in progress.
const (
	FieldNone  Field = ""
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	FieldEmail Field = "email"
	FieldDate  Field = "date"
	FieldTime  Field = "time"
)

// Session is the per-conversation dialogue state. It is an explicit value
// owned by the session store and passed into every Router/Collector call;
// nothing here is shared across conversations.
type Session struct {
	ID string

	// Current is the field the collection flow is waiting on. When it is
	// not FieldNone it always names the next field still missing, in
	// name -> phone -> email -> date -> time order.
	Current Field

	Name  string
	Phone string
	Email string
	Date  string // YYYY-MM-DD
	Time  string // HH:MM

	// ContactID is assigned when the collection flow persists its record,
	// so later bookings do not have to re-derive identity by value lookup.
	ContactID string

	// PendingDate/PendingTime hold a date/time extracted from a booking
	// request that arrived before contact info was collected. The
	// collection flow consumes them when it reaches the date field.
	PendingDate string
	PendingTime string
}

// Collecting reports whether a collection flow is in progress.
func (s *Session) Collecting() bool {
	return s.Current != FieldNone
}

// HasContactInfo reports whether the identity triple is complete.
func (s *Session) HasContactInfo() bool {
	return s.Name != "" && s.Phone != "" && s.Email != ""
}

// resetCollection discards all collected fields. Pending date/time survive:
// they were stashed immediately before a restart and are consumed later in
// the flow.
func (s *Session) resetCollection() {
	s.Name = ""
	s.Phone = ""
	s.Email = ""
	s.Date = ""
	s.Time = ""
	s.ContactID = ""
}

package models

// Payload types for the trackable record variants. JSON tags follow the
// Monica API field names so the same struct serves as the local payload and
// the create/update request body.

// CallLog describes one phone call with a contact.
type CallLog struct {
	ContactID     int64   `json:"contact_id"`
	CalledAt      string  `json:"called_at"` // ISO-8601
	Content       string  `json:"content,omitempty"`
	ContactCalled bool    `json:"contact_called"`
	Emotions      []int64 `json:"emotions,omitempty"`
}

const (
	// InDebtYes means the user owes the contact; InDebtNo the reverse.
	InDebtYes = "yes"
	InDebtNo  = "no"

	DebtStatusInProgress = "inprogress"
	DebtStatusCompleted  = "completed"
)

// Debt describes money owed between the user and a contact.
type Debt struct {
	ContactID          int64   `json:"contact_id"`
	InDebt             string  `json:"in_debt"` // "yes" | "no"
	Status             string  `json:"status"`  // "inprogress" | "completed"
	Amount             float64 `json:"amount"`
	AmountWithCurrency string  `json:"amount_with_currency,omitempty"`
	Reason             string  `json:"reason,omitempty"`
}

// Outstanding reports whether the debt still counts toward net balances.
func (d Debt) Outstanding() bool {
	return d.Status != DebtStatusCompleted
}

// Conversation describes a logged conversation over some contact field
// (SMS, email, ...).
type Conversation struct {
	ContactID          int64  `json:"contact_id"`
	HappenedAt         string `json:"happened_at"`
	ContactFieldTypeID int64  `json:"contact_field_type_id,omitempty"`
	Content            string `json:"content,omitempty"`
}

// Relationship links two contacts with a typed relation.
type Relationship struct {
	ContactIs          int64 `json:"contact_is"`
	OfContact          int64 `json:"of_contact"`
	RelationshipTypeID int64 `json:"relationship_type_id"`
}

// DayEntry is a mood journal entry.
type DayEntry struct {
	Rate    int    `json:"rate"` // integer mood code
	Comment string `json:"comment,omitempty"`
	Date    string `json:"date"` // YYYY-MM-DD
}

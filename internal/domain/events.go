package domain

import "time"

// Event types
const (
	EventTypeIncomePaid   = "ubi.income"
	EventTypeIncomeShared = "ubi.share"
	EventTypeTransferred  = "token.transferred"
	EventTypeTokenCreated = "token.created"
	EventTypeIssued       = "token.issued"
	EventTypeRetired      = "token.retired"
	EventTypeBurned       = "token.burned"
)

// Aggregate types
const (
	AggregateTypeBalance = "balance"
	AggregateTypeToken   = "token"
)

// OutboxEvent is a notification record written in the same transaction as
// the effect it describes and later published fire-and-forget. Publishing
// never influences the outcome of the operation that produced it.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// IncomePaidEvent payload: one successful UBI accrual.
type IncomePaidEvent struct {
	To        string `json:"to"`
	Quantity  string `json:"quantity"`
	NextClaim string `json:"next_claim"`
	LostDays  int64  `json:"lost_days,omitempty"`
}

// IncomeSharedEvent payload: one beneficiary's cut of a claim.
type IncomeSharedEvent struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Percent  uint8  `json:"percent"`
}

// TransferredEvent payload.
type TransferredEvent struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// TokenCreatedEvent payload.
type TokenCreatedEvent struct {
	Symbol    string `json:"symbol"`
	Issuer    string `json:"issuer"`
	MaxSupply string `json:"max_supply"`
}

// IssuedEvent payload.
type IssuedEvent struct {
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// RetiredEvent payload: quantity permanently destroyed.
type RetiredEvent struct {
	Owner    string `json:"owner"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

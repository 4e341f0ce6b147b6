package ledger

import (
	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/models"
)

// EventKind names a notification type.
type EventKind string

const (
	KindGroupCreated EventKind = "group_created"
	KindPersonAdded  EventKind = "person_added"
	KindCaseAdded    EventKind = "case_added"
	KindDebtCreated  EventKind = "debt_created"
)

// Event is a structured notification emitted after a successful structural
// change. Payment, collection and administrative updates emit nothing.
type Event interface {
	Kind() EventKind
	Group() id.ID
}

type GroupCreated struct {
	GroupID id.ID          `json:"group_id"`
	Name    string         `json:"name"`
	Admin   models.Address `json:"admin"`
}

type PersonAdded struct {
	GroupID  id.ID          `json:"group_id"`
	PersonID id.ID          `json:"person_id"`
	Name     string         `json:"name"`
	Address  models.Address `json:"address"`
}

type CaseAdded struct {
	GroupID id.ID          `json:"group_id"`
	CaseID  id.ID          `json:"case_id"`
	Name    string         `json:"name"`
	Amount  int64          `json:"amount"`
	Owner   models.Address `json:"owner"`
}

type DebtCreated struct {
	GroupID  id.ID          `json:"group_id"`
	DebtID   id.ID          `json:"debt_id"`
	Lender   models.Address `json:"lender"`
	Borrower models.Address `json:"borrower"`
	Name     string         `json:"name"`
	Amount   int64          `json:"amount"`
}

func (GroupCreated) Kind() EventKind { return KindGroupCreated }
func (PersonAdded) Kind() EventKind  { return KindPersonAdded }
func (CaseAdded) Kind() EventKind    { return KindCaseAdded }
func (DebtCreated) Kind() EventKind  { return KindDebtCreated }

func (e GroupCreated) Group() id.ID { return e.GroupID }
func (e PersonAdded) Group() id.ID  { return e.GroupID }
func (e CaseAdded) Group() id.ID    { return e.GroupID }
func (e DebtCreated) Group() id.ID  { return e.GroupID }

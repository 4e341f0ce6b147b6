// Package api defines the wire messages, codecs, handlers and clients of the
// splitledger RPC services.
//
// Messages are plain structs carried by connect over JSON or CBOR. Requests
// that target a group embed GroupRef: GroupID, when set, takes precedence
// over the positional GroupIndex.
package api

// GroupRef addresses a group by position or, if GroupID is set, by ID.
type GroupRef struct {
	GroupIndex int    `json:"group_index"`
	GroupID    string `json:"group_id,omitempty"`
}

// Empty is the response of operations that return nothing.
type Empty struct{}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	GroupIndex int    `json:"group_index"`
	GroupID    string `json:"group_id"`
}

type AddPersonRequest struct {
	GroupRef
	Name string `json:"name"`
	// Address of the new member. Empty means the caller's own address.
	Address string `json:"address,omitempty"`
}

type AddPersonResponse struct {
	PersonIndex int    `json:"person_index"`
	PersonID    string `json:"person_id"`
}

type AddCaseRequest struct {
	GroupRef
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type AddCaseResponse struct {
	CaseIndex int      `json:"case_index"`
	CaseID    string   `json:"case_id"`
	Share     int64    `json:"share"`
	DebtIDs   []string `json:"debt_ids"`
}

type PayDebtRequest struct {
	GroupRef
	// DebtIndex is a position in the caller's own debt list.
	DebtIndex int    `json:"debt_index"`
	DebtID    string `json:"debt_id,omitempty"`
	Payment   int64  `json:"payment"`
}

type PayDebtResponse struct {
	// Applied is false when the caller has no member record in the group.
	Applied bool `json:"applied"`
	// Change is what is left of the payment after the debt was deducted.
	Change int64 `json:"change"`
}

type CollectMoneyRequest struct {
	GroupRef
}

type CollectMoneyResponse struct {
	Amount int64 `json:"amount"`
}

type MarkGroupFinishedRequest struct {
	GroupRef
}

type RemovePersonRequest struct {
	GroupRef
	PersonIndex int    `json:"person_index"`
	PersonID    string `json:"person_id,omitempty"`
}

type UpdateGroupNameRequest struct {
	GroupRef
	Name string `json:"name"`
}

type TransferGroupOwnershipRequest struct {
	GroupRef
	NewAdmin string `json:"new_admin"`
}

type ListGroupsRequest struct{}

type GroupSummary struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Admin       string `json:"admin"`
	Finished    bool   `json:"finished"`
	PersonCount int    `json:"person_count"`
	CaseCount   int    `json:"case_count"`
}

type ListGroupsResponse struct {
	Groups []GroupSummary `json:"groups"`
}

type GetGroupRequest struct {
	GroupRef
}

type Debt struct {
	ID       string `json:"id"`
	Lender   string `json:"lender"`
	Borrower string `json:"borrower"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Paid     bool   `json:"paid"`
}

type Person struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
	Debts   []Debt `json:"debts"`
}

type Case struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Amount       int64    `json:"amount"`
	Owner        string   `json:"owner"`
	Contributors []string `json:"contributors"`
}

type Group struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Admin    string   `json:"admin"`
	Finished bool     `json:"finished"`
	Persons  []Person `json:"persons"`
	Cases    []Case   `json:"cases"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type GetBalancesRequest struct {
	GroupRef
}

type MemberBalance struct {
	PersonIndex int    `json:"person_index"`
	Address     string `json:"address"`
	Name        string `json:"name"`
	Balance     int64  `json:"balance"`
	OwedUnpaid  int64  `json:"owed_unpaid"`
	LentUnpaid  int64  `json:"lent_unpaid"`
	DebtCount   int    `json:"debt_count"`
	PaidCount   int    `json:"paid_count"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}

type ListEventsRequest struct {
	GroupID string `json:"group_id"`
	Limit   int    `json:"limit,omitempty"`
}

// Event is a journaled ledger event. Only the fields of its Kind are set.
type Event struct {
	Seq       int64  `json:"seq"`
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"`
	GroupID   string `json:"group_id"`
	CreatedAt int64  `json:"created_at"`

	PersonID string `json:"person_id,omitempty"`
	CaseID   string `json:"case_id,omitempty"`
	DebtID   string `json:"debt_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Admin    string `json:"admin,omitempty"`
	Address  string `json:"address,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Lender   string `json:"lender,omitempty"`
	Borrower string `json:"borrower,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}

type LoginRequest struct {
	PublicKey []byte `json:"public_key"`
	SignedAt  int64  `json:"signed_at"`
	Signature []byte `json:"signature"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt int64  `json:"expires_at"`
}

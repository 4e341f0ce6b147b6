package models

// Address is a caller identity, as resolved by the authentication layer.
// The ledger compares addresses for equality and never interprets them.
type Address string

// String returns the address text.
func (a Address) String() string {
	return string(a)
}

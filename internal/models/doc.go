// Package models defines the entity shapes of the shared-expense ledger.
//
// # Entities
//
//   - Group: an admin-owned collection of persons and cases
//   - Person: a member record holding the debts it owes and an escrow balance
//   - Case: one recorded expense that produced debts
//   - Debt: one obligation of a borrower to a lender
//
// # Addressing
//
// Collections are ordered slices and ledger operations address them by
// position. Removing an element shifts everything after it down by one.
// Every entity also carries a stable ID (see internal/id) that never changes
// and can be resolved to the current position.
//
// # Relationships
//
// Cases refer to people by Address, never by pointer. A Debt lives inside the
// borrowing Person's Debts slice and names its lender by Address.
package models

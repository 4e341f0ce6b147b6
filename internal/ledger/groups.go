package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup appends a new group administered by caller.
func (b *Board) CreateGroup(ctx context.Context, caller models.Address, name string) (Ref, error) {
	if name == "" {
		return Ref{}, fmt.Errorf("%w: group name is empty", ErrInvalidInput)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	g := &models.Group{
		ID:      id.NewGroupID(),
		Name:    name,
		Admin:   caller,
		Cases:   []models.Case{},
		Persons: []models.Person{},
	}
	b.groups = append(b.groups, g)

	b.notifier.Publish(ctx, GroupCreated{GroupID: g.ID, Name: g.Name, Admin: g.Admin})
	return Ref{Index: len(b.groups) - 1, ID: g.ID}, nil
}

// AddPerson appends a member to the group. The member is keyed by address,
// or by the caller's own identity when address is empty. An address can hold
// at most one member record per group.
func (b *Board) AddPerson(ctx context.Context, caller models.Address, group At, name string, address models.Address) (Ref, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return Ref{}, err
	}
	if name == "" {
		return Ref{}, fmt.Errorf("%w: person name is empty", ErrInvalidInput)
	}
	if err := requireAdmin(g, caller); err != nil {
		return Ref{}, err
	}
	if address == "" {
		address = caller
	}
	if findPerson(g, address) != nil {
		return Ref{}, fmt.Errorf("%w: %s is already a member of group %s", ErrInvalidInput, address, g.ID)
	}

	p := models.Person{
		ID:      id.NewPersonID(),
		Address: address,
		Name:    name,
		Debts:   []models.Debt{},
	}
	g.Persons = append(g.Persons, p)

	b.notifier.Publish(ctx, PersonAdded{GroupID: g.ID, PersonID: p.ID, Name: p.Name, Address: p.Address})
	return Ref{Index: len(g.Persons) - 1, ID: p.ID}, nil
}

// RemovePerson deletes the member at person, shifting later members down by
// one. The member's debts and uncollected balance are discarded with it.
func (b *Board) RemovePerson(_ context.Context, caller models.Address, group, person At) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return err
	}
	if err := requireAdmin(g, caller); err != nil {
		return err
	}
	i, err := personIndex(g, person)
	if err != nil {
		return err
	}

	g.Persons = append(g.Persons[:i], g.Persons[i+1:]...)
	return nil
}

// UpdateGroupName replaces the group's name.
func (b *Board) UpdateGroupName(_ context.Context, caller models.Address, group At, name string) error {
	if name == "" {
		return fmt.Errorf("%w: group name is empty", ErrInvalidInput)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return err
	}
	if err := requireAdmin(g, caller); err != nil {
		return err
	}

	g.Name = name
	return nil
}

// TransferGroupOwnership hands admin rights to newAdmin, who need not be a
// member.
func (b *Board) TransferGroupOwnership(_ context.Context, caller models.Address, group At, newAdmin models.Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return err
	}
	if err := requireAdmin(g, caller); err != nil {
		return err
	}

	g.Admin = newAdmin
	return nil
}

// MarkGroupFinished sets the finished flag. Nothing else reads the flag.
func (b *Board) MarkGroupFinished(_ context.Context, caller models.Address, group At) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, g, err := b.group(group)
	if err != nil {
		return err
	}
	if err := requireAdmin(g, caller); err != nil {
		return err
	}

	g.Finished = true
	return nil
}

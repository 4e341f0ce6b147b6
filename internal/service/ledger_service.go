package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService on top of a Board.
type LedgerService struct {
	board   *ledger.Board
	journal storage.Journal
	tracer  trace.Tracer
}

// NewLedgerService creates a LedgerService. journal backs ListEvents and
// should be the same store the board's Journal notifier writes to.
func NewLedgerService(board *ledger.Board, journal storage.Journal, tracer trace.Tracer) *LedgerService {
	return &LedgerService{board: board, journal: journal, tracer: tracer}
}

func (s *LedgerService) start(ctx context.Context, procedure string, ref *api.GroupRef) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, procedure)
	if ref != nil {
		span.SetAttributes(
			attribute.Int("splitledger.group_index", ref.GroupIndex),
			attribute.String("splitledger.group_id", ref.GroupID),
		)
	}
	return ctx, span
}

// CreateGroup creates a group administered by the caller.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (_ *connect.Response[api.CreateGroupResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceCreateGroupProcedure, nil)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "caller", caller, "name", req.Msg.Name)

	ref, err := s.board.CreateGroup(ctx, caller, req.Msg.Name)
	if err != nil {
		return nil, fail(ctx, "CreateGroup", err)
	}

	slog.Info("Group created", "group_index", ref.Index, "group_id", ref.ID)

	return connect.NewResponse(&api.CreateGroupResponse{
		GroupIndex: ref.Index,
		GroupID:    ref.ID.String(),
	}), nil
}

// AddPerson registers a member. An empty address registers the caller.
func (s *LedgerService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (_ *connect.Response[api.AddPersonResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceAddPersonProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddPerson request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
		"address", req.Msg.Address,
	)

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "AddPerson", err)
	}
	ref, err := s.board.AddPerson(ctx, caller, at, req.Msg.Name, models.Address(req.Msg.Address))
	if err != nil {
		return nil, fail(ctx, "AddPerson", err)
	}

	slog.Info("Person added", "person_index", ref.Index, "person_id", ref.ID)

	return connect.NewResponse(&api.AddPersonResponse{
		PersonIndex: ref.Index,
		PersonID:    ref.ID.String(),
	}), nil
}

// AddCase records an expense fronted by the caller and splits it.
func (s *LedgerService) AddCase(ctx context.Context, req *connect.Request[api.AddCaseRequest]) (_ *connect.Response[api.AddCaseResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceAddCaseProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddCase request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
		"amount", req.Msg.Amount,
	)

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "AddCase", err)
	}
	res, err := s.board.AddCase(ctx, caller, at, req.Msg.Name, req.Msg.Amount)
	if err != nil {
		return nil, fail(ctx, "AddCase", err)
	}

	debtIDs := make([]string, len(res.Debts))
	for i, d := range res.Debts {
		debtIDs[i] = d.String()
	}

	slog.Info("Case added",
		"case_id", res.Case.ID,
		"share", res.Share,
		"debts_count", len(debtIDs),
	)

	return connect.NewResponse(&api.AddCaseResponse{
		CaseIndex: res.Case.Index,
		CaseID:    res.Case.ID.String(),
		Share:     res.Share,
		DebtIDs:   debtIDs,
	}), nil
}

// PayDebt settles one of the caller's debts from the offered payment.
func (s *LedgerService) PayDebt(ctx context.Context, req *connect.Request[api.PayDebtRequest]) (_ *connect.Response[api.PayDebtResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServicePayDebtProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("PayDebt request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"debt_index", req.Msg.DebtIndex,
		"debt_id", req.Msg.DebtID,
		"payment", req.Msg.Payment,
	)

	group, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "PayDebt", err)
	}
	debt, err := elementAt(req.Msg.DebtIndex, req.Msg.DebtID, id.PrefixDebt, "debt_id")
	if err != nil {
		return nil, fail(ctx, "PayDebt", err)
	}
	if req.Msg.Payment < 0 {
		return nil, fail(ctx, "PayDebt", fmt.Errorf("%w: payment %d is negative", ledger.ErrInvalidInput, req.Msg.Payment))
	}

	payment := &ledger.Payment{Value: req.Msg.Payment}
	applied, err := s.board.PayDebt(ctx, caller, group, debt, payment)
	if err != nil {
		return nil, fail(ctx, "PayDebt", err)
	}

	if applied {
		slog.Info("Debt paid", "caller", caller, "change", payment.Value)
	} else {
		slog.Info("PayDebt ignored, caller is not a member", "caller", caller)
	}

	return connect.NewResponse(&api.PayDebtResponse{
		Applied: applied,
		Change:  payment.Value,
	}), nil
}

// CollectMoney withdraws the caller's whole escrow balance.
func (s *LedgerService) CollectMoney(ctx context.Context, req *connect.Request[api.CollectMoneyRequest]) (_ *connect.Response[api.CollectMoneyResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceCollectMoneyProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CollectMoney request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
	)

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "CollectMoney", err)
	}
	amount, err := s.board.CollectMoney(ctx, caller, at)
	if err != nil {
		return nil, fail(ctx, "CollectMoney", err)
	}

	slog.Info("Money collected", "caller", caller, "amount", amount)

	return connect.NewResponse(&api.CollectMoneyResponse{Amount: amount}), nil
}

// MarkGroupFinished sets the group's finished flag.
func (s *LedgerService) MarkGroupFinished(ctx context.Context, req *connect.Request[api.MarkGroupFinishedRequest]) (_ *connect.Response[api.Empty], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceMarkGroupFinishedProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("MarkGroupFinished request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
	)

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "MarkGroupFinished", err)
	}
	if err := s.board.MarkGroupFinished(ctx, caller, at); err != nil {
		return nil, fail(ctx, "MarkGroupFinished", err)
	}

	slog.Info("Group marked finished", "group", at)
	return connect.NewResponse(&api.Empty{}), nil
}

// RemovePerson deletes a member record together with its debts.
func (s *LedgerService) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (_ *connect.Response[api.Empty], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceRemovePersonProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemovePerson request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"person_index", req.Msg.PersonIndex,
		"person_id", req.Msg.PersonID,
	)

	group, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "RemovePerson", err)
	}
	person, err := elementAt(req.Msg.PersonIndex, req.Msg.PersonID, id.PrefixPerson, "person_id")
	if err != nil {
		return nil, fail(ctx, "RemovePerson", err)
	}
	if err := s.board.RemovePerson(ctx, caller, group, person); err != nil {
		return nil, fail(ctx, "RemovePerson", err)
	}

	slog.Info("Person removed", "group", group, "person", person)
	return connect.NewResponse(&api.Empty{}), nil
}

// UpdateGroupName renames a group.
func (s *LedgerService) UpdateGroupName(ctx context.Context, req *connect.Request[api.UpdateGroupNameRequest]) (_ *connect.Response[api.Empty], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceUpdateGroupNameProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateGroupName request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
	)

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "UpdateGroupName", err)
	}
	if err := s.board.UpdateGroupName(ctx, caller, at, req.Msg.Name); err != nil {
		return nil, fail(ctx, "UpdateGroupName", err)
	}

	slog.Info("Group renamed", "group", at, "name", req.Msg.Name)
	return connect.NewResponse(&api.Empty{}), nil
}

// TransferGroupOwnership hands admin rights to another address.
func (s *LedgerService) TransferGroupOwnership(ctx context.Context, req *connect.Request[api.TransferGroupOwnershipRequest]) (_ *connect.Response[api.Empty], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceTransferGroupOwnershipProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("TransferGroupOwnership request received",
		"caller", caller,
		"group_index", req.Msg.GroupIndex,
		"group_id", req.Msg.GroupID,
		"new_admin", req.Msg.NewAdmin,
	)

	if req.Msg.NewAdmin == "" {
		return nil, fail(ctx, "TransferGroupOwnership", fmt.Errorf("%w: new_admin is empty", ledger.ErrInvalidInput))
	}
	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "TransferGroupOwnership", err)
	}
	if err := s.board.TransferGroupOwnership(ctx, caller, at, models.Address(req.Msg.NewAdmin)); err != nil {
		return nil, fail(ctx, "TransferGroupOwnership", err)
	}

	slog.Info("Group ownership transferred", "group", at, "new_admin", req.Msg.NewAdmin)
	return connect.NewResponse(&api.Empty{}), nil
}

// ListGroups lists every group on the board.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (_ *connect.Response[api.ListGroupsResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceListGroupsProcedure, nil)
	defer func() { endSpan(span, err) }()

	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	groups := toAPISummaries(s.board.Groups())
	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// GetGroup returns a snapshot of one group.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (_ *connect.Response[api.GetGroupResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceGetGroupProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "GetGroup", err)
	}
	index, g, err := s.board.Group(at)
	if err != nil {
		return nil, fail(ctx, "GetGroup", err)
	}

	slog.Info("GetGroup successful", "group_id", g.ID, "name", g.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(index, g)}), nil
}

// GetBalances summarizes what every member holds, owes and is owed.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (_ *connect.Response[api.GetBalancesResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceGetBalancesProcedure, &req.Msg.GroupRef)
	defer func() { endSpan(span, err) }()

	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	at, err := groupAt(req.Msg.GroupRef)
	if err != nil {
		return nil, fail(ctx, "GetBalances", err)
	}
	balances, err := s.board.Balances(at)
	if err != nil {
		return nil, fail(ctx, "GetBalances", err)
	}

	slog.Info("GetBalances successful", "group", at, "members_count", len(balances))

	return connect.NewResponse(&api.GetBalancesResponse{Balances: toAPIBalances(balances)}), nil
}

// ListEvents returns the journaled events of one group, oldest first.
func (s *LedgerService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (_ *connect.Response[api.ListEventsResponse], err error) {
	ctx, span := s.start(ctx, api.LedgerServiceListEventsProcedure, &api.GroupRef{GroupID: req.Msg.GroupID})
	defer func() { endSpan(span, err) }()

	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	groupID, err := id.ParseWithPrefix(req.Msg.GroupID, id.PrefixGroup)
	if err != nil {
		return nil, fail(ctx, "ListEvents", fmt.Errorf("%w: group_id: %v", ledger.ErrInvalidInput, err))
	}

	records, err := s.journal.ListEvents(ctx, groupID.String(), req.Msg.Limit)
	if err != nil {
		return nil, fail(ctx, "ListEvents", err)
	}

	events := make([]api.Event, 0, len(records))
	for _, rec := range records {
		ev, err := toAPIEvent(rec)
		if err != nil {
			return nil, fail(ctx, "ListEvents", err)
		}
		events = append(events, ev)
	}

	slog.Info("ListEvents successful", "group_id", groupID, "count", len(events))

	return connect.NewResponse(&api.ListEventsResponse{Events: events}), nil
}

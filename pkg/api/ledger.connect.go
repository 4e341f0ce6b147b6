package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const LedgerServiceName = "splitledger.v1.LedgerService"

// Fully-qualified procedure names of LedgerService.
const (
	LedgerServiceCreateGroupProcedure            = "/splitledger.v1.LedgerService/CreateGroup"
	LedgerServiceAddPersonProcedure              = "/splitledger.v1.LedgerService/AddPerson"
	LedgerServiceAddCaseProcedure                = "/splitledger.v1.LedgerService/AddCase"
	LedgerServicePayDebtProcedure                = "/splitledger.v1.LedgerService/PayDebt"
	LedgerServiceCollectMoneyProcedure           = "/splitledger.v1.LedgerService/CollectMoney"
	LedgerServiceMarkGroupFinishedProcedure      = "/splitledger.v1.LedgerService/MarkGroupFinished"
	LedgerServiceRemovePersonProcedure           = "/splitledger.v1.LedgerService/RemovePerson"
	LedgerServiceUpdateGroupNameProcedure        = "/splitledger.v1.LedgerService/UpdateGroupName"
	LedgerServiceTransferGroupOwnershipProcedure = "/splitledger.v1.LedgerService/TransferGroupOwnership"
	LedgerServiceListGroupsProcedure             = "/splitledger.v1.LedgerService/ListGroups"
	LedgerServiceGetGroupProcedure               = "/splitledger.v1.LedgerService/GetGroup"
	LedgerServiceGetBalancesProcedure            = "/splitledger.v1.LedgerService/GetBalances"
	LedgerServiceListEventsProcedure             = "/splitledger.v1.LedgerService/ListEvents"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	AddCase(context.Context, *connect.Request[AddCaseRequest]) (*connect.Response[AddCaseResponse], error)
	PayDebt(context.Context, *connect.Request[PayDebtRequest]) (*connect.Response[PayDebtResponse], error)
	CollectMoney(context.Context, *connect.Request[CollectMoneyRequest]) (*connect.Response[CollectMoneyResponse], error)
	MarkGroupFinished(context.Context, *connect.Request[MarkGroupFinishedRequest]) (*connect.Response[Empty], error)
	RemovePerson(context.Context, *connect.Request[RemovePersonRequest]) (*connect.Response[Empty], error)
	UpdateGroupName(context.Context, *connect.Request[UpdateGroupNameRequest]) (*connect.Response[Empty], error)
	TransferGroupOwnership(context.Context, *connect.Request[TransferGroupOwnershipRequest]) (*connect.Response[Empty], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. Both JSON and CBOR requests are accepted.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateGroupProcedure, connect.NewUnaryHandler(LedgerServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(LedgerServiceAddPersonProcedure, connect.NewUnaryHandler(LedgerServiceAddPersonProcedure, svc.AddPerson, opts...))
	mux.Handle(LedgerServiceAddCaseProcedure, connect.NewUnaryHandler(LedgerServiceAddCaseProcedure, svc.AddCase, opts...))
	mux.Handle(LedgerServicePayDebtProcedure, connect.NewUnaryHandler(LedgerServicePayDebtProcedure, svc.PayDebt, opts...))
	mux.Handle(LedgerServiceCollectMoneyProcedure, connect.NewUnaryHandler(LedgerServiceCollectMoneyProcedure, svc.CollectMoney, opts...))
	mux.Handle(LedgerServiceMarkGroupFinishedProcedure, connect.NewUnaryHandler(LedgerServiceMarkGroupFinishedProcedure, svc.MarkGroupFinished, opts...))
	mux.Handle(LedgerServiceRemovePersonProcedure, connect.NewUnaryHandler(LedgerServiceRemovePersonProcedure, svc.RemovePerson, opts...))
	mux.Handle(LedgerServiceUpdateGroupNameProcedure, connect.NewUnaryHandler(LedgerServiceUpdateGroupNameProcedure, svc.UpdateGroupName, opts...))
	mux.Handle(LedgerServiceTransferGroupOwnershipProcedure, connect.NewUnaryHandler(LedgerServiceTransferGroupOwnershipProcedure, svc.TransferGroupOwnership, opts...))
	mux.Handle(LedgerServiceListGroupsProcedure, connect.NewUnaryHandler(LedgerServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(LedgerServiceGetGroupProcedure, connect.NewUnaryHandler(LedgerServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(LedgerServiceGetBalancesProcedure, connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(LedgerServiceListEventsProcedure, connect.NewUnaryHandler(LedgerServiceListEventsProcedure, svc.ListEvents, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a client for LedgerService. It sends CBOR unless
// constructed with WithJSON.
type LedgerServiceClient struct {
	createGroup            *connect.Client[CreateGroupRequest, CreateGroupResponse]
	addPerson              *connect.Client[AddPersonRequest, AddPersonResponse]
	addCase                *connect.Client[AddCaseRequest, AddCaseResponse]
	payDebt                *connect.Client[PayDebtRequest, PayDebtResponse]
	collectMoney           *connect.Client[CollectMoneyRequest, CollectMoneyResponse]
	markGroupFinished      *connect.Client[MarkGroupFinishedRequest, Empty]
	removePerson           *connect.Client[RemovePersonRequest, Empty]
	updateGroupName        *connect.Client[UpdateGroupNameRequest, Empty]
	transferGroupOwnership *connect.Client[TransferGroupOwnershipRequest, Empty]
	listGroups             *connect.Client[ListGroupsRequest, ListGroupsResponse]
	getGroup               *connect.Client[GetGroupRequest, GetGroupResponse]
	getBalances            *connect.Client[GetBalancesRequest, GetBalancesResponse]
	listEvents             *connect.Client[ListEventsRequest, ListEventsResponse]
}

// NewLedgerServiceClient constructs a client for the server at baseURL, for
// example http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(CBORCodec{})}, opts...)
	return &LedgerServiceClient{
		createGroup:            connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+LedgerServiceCreateGroupProcedure, opts...),
		addPerson:              connect.NewClient[AddPersonRequest, AddPersonResponse](httpClient, baseURL+LedgerServiceAddPersonProcedure, opts...),
		addCase:                connect.NewClient[AddCaseRequest, AddCaseResponse](httpClient, baseURL+LedgerServiceAddCaseProcedure, opts...),
		payDebt:                connect.NewClient[PayDebtRequest, PayDebtResponse](httpClient, baseURL+LedgerServicePayDebtProcedure, opts...),
		collectMoney:           connect.NewClient[CollectMoneyRequest, CollectMoneyResponse](httpClient, baseURL+LedgerServiceCollectMoneyProcedure, opts...),
		markGroupFinished:      connect.NewClient[MarkGroupFinishedRequest, Empty](httpClient, baseURL+LedgerServiceMarkGroupFinishedProcedure, opts...),
		removePerson:           connect.NewClient[RemovePersonRequest, Empty](httpClient, baseURL+LedgerServiceRemovePersonProcedure, opts...),
		updateGroupName:        connect.NewClient[UpdateGroupNameRequest, Empty](httpClient, baseURL+LedgerServiceUpdateGroupNameProcedure, opts...),
		transferGroupOwnership: connect.NewClient[TransferGroupOwnershipRequest, Empty](httpClient, baseURL+LedgerServiceTransferGroupOwnershipProcedure, opts...),
		listGroups:             connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+LedgerServiceListGroupsProcedure, opts...),
		getGroup:               connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+LedgerServiceGetGroupProcedure, opts...),
		getBalances:            connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		listEvents:             connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+LedgerServiceListEventsProcedure, opts...),
	}
}

func (c *LedgerServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddCase(ctx context.Context, req *connect.Request[AddCaseRequest]) (*connect.Response[AddCaseResponse], error) {
	return c.addCase.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) PayDebt(ctx context.Context, req *connect.Request[PayDebtRequest]) (*connect.Response[PayDebtResponse], error) {
	return c.payDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) CollectMoney(ctx context.Context, req *connect.Request[CollectMoneyRequest]) (*connect.Response[CollectMoneyResponse], error) {
	return c.collectMoney.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) MarkGroupFinished(ctx context.Context, req *connect.Request[MarkGroupFinishedRequest]) (*connect.Response[Empty], error) {
	return c.markGroupFinished.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemovePerson(ctx context.Context, req *connect.Request[RemovePersonRequest]) (*connect.Response[Empty], error) {
	return c.removePerson.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateGroupName(ctx context.Context, req *connect.Request[UpdateGroupNameRequest]) (*connect.Response[Empty], error) {
	return c.updateGroupName.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) TransferGroupOwnership(ctx context.Context, req *connect.Request[TransferGroupOwnershipRequest]) (*connect.Response[Empty], error) {
	return c.transferGroupOwnership.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListEvents(ctx context.Context, req *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

package service

import (
	"context"
	"crypto/ed25519"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/internal/telemetry"
	"github.com/mmynk/splitledger/pkg/api"
)

const testSecret = "test-secret-key-that-is-long-enough"

// payoutRecorder records withdrawals and fails them on demand.
type payoutRecorder struct {
	mu      sync.Mutex
	fail    bool
	payouts map[models.Address]int64
}

func (p *payoutRecorder) Pay(_ context.Context, to models.Address, amount int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("bank offline")
	}
	if p.payouts == nil {
		p.payouts = make(map[models.Address]int64)
	}
	p.payouts[to] += amount
	return nil
}

func (p *payoutRecorder) setFailing(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func (p *payoutRecorder) paidTo(addr models.Address) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payouts[addr]
}

type testEnv struct {
	url     string
	events  *notify.Recorder
	payouts *payoutRecorder
	opts    []connect.ClientOption
}

// setupTestServer serves LedgerService and AuthService over httptest with a
// temp sqlite journal. opts are applied to every client the env creates.
func setupTestServer(t *testing.T, opts ...connect.ClientOption) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	events := &notify.Recorder{}
	payouts := &payoutRecorder{}
	board := ledger.NewBoard(
		ledger.WithNotifier(notify.Fanout{events, notify.NewJournal(store)}),
		ledger.WithPayout(payouts),
	)

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	logger := slog.Default()

	ledgerSvc := NewLedgerService(board, store, telemetry.Tracer())
	authSvc := NewAuthService(auth.NewSignatureAuthenticator(5*time.Minute), jwtManager, logger)

	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(ledgerSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()),
	)
	authPath, authHandler := api.NewAuthServiceHandler(authSvc)

	mux := http.NewServeMux()
	mux.Handle(ledgerPath, ledgerHandler)
	mux.Handle(authPath, authHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{url: server.URL, events: events, payouts: payouts, opts: opts}
}

// login creates a fresh key, logs it in and returns a client acting as it.
func (e *testEnv) login(t *testing.T) (*api.LedgerServiceClient, models.Address) {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	now := time.Now()

	authClient := api.NewAuthServiceClient(http.DefaultClient, e.url, e.opts...)
	resp, err := authClient.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		PublicKey: priv.Public().(ed25519.PublicKey),
		SignedAt:  now.Unix(),
		Signature: auth.SignLogin(priv, now),
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	opts := append([]connect.ClientOption{api.WithBearerToken(resp.Msg.Token)}, e.opts...)
	return api.NewLedgerServiceClient(http.DefaultClient, e.url, opts...), models.Address(resp.Msg.Address)
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("expected %v, got %v (%v)", code, got, err)
	}
}

func TestLogin(t *testing.T) {
	env := setupTestServer(t)
	client := api.NewAuthServiceClient(http.DefaultClient, env.url)

	_, priv, _ := ed25519.GenerateKey(nil)
	pub := priv.Public().(ed25519.PublicKey)
	now := time.Now()

	t.Run("valid signature returns token for derived address", func(t *testing.T) {
		resp, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
			PublicKey: pub,
			SignedAt:  now.Unix(),
			Signature: auth.SignLogin(priv, now),
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.Token == "" {
			t.Error("expected non-empty token")
		}
		if resp.Msg.Address != string(auth.AddressOf(pub)) {
			t.Errorf("address: expected %s, got %s", auth.AddressOf(pub), resp.Msg.Address)
		}
		if resp.Msg.ExpiresAt <= now.Unix() {
			t.Error("expected expiry in the future")
		}
	})

	t.Run("wrong signature is unauthenticated", func(t *testing.T) {
		_, other, _ := ed25519.GenerateKey(nil)
		_, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
			PublicKey: pub,
			SignedAt:  now.Unix(),
			Signature: auth.SignLogin(other, now),
		}))
		wantCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("missing fields are invalid", func(t *testing.T) {
		_, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestLedgerService_RequiresToken(t *testing.T) {
	env := setupTestServer(t)

	anonymous := api.NewLedgerServiceClient(http.DefaultClient, env.url)
	_, err := anonymous.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "trip"}))
	wantCode(t, err, connect.CodeUnauthenticated)

	forged := api.NewLedgerServiceClient(http.DefaultClient, env.url, api.WithBearerToken("not-a-jwt"))
	_, err = forged.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestLedgerService_Settlement(t *testing.T) {
	codecs := []struct {
		name string
		opts []connect.ClientOption
	}{
		{name: "cbor"},
		{name: "json", opts: []connect.ClientOption{api.WithJSON()}},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTestServer(t, tc.opts...)
			ctx := context.Background()

			alice, aliceAddr := env.login(t)
			bob, bobAddr := env.login(t)
			_, carolAddr := env.login(t)

			group, err := alice.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Trip"}))
			if err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}
			ref := api.GroupRef{GroupIndex: group.Msg.GroupIndex}

			for _, p := range []struct {
				name string
				addr models.Address
			}{{"Alice", ""}, {"Bob", bobAddr}, {"Carol", carolAddr}} {
				if _, err := alice.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{
					GroupRef: ref,
					Name:     p.name,
					Address:  string(p.addr),
				})); err != nil {
					t.Fatalf("AddPerson %s failed: %v", p.name, err)
				}
			}

			caseResp, err := alice.AddCase(ctx, connect.NewRequest(&api.AddCaseRequest{
				GroupRef: ref,
				Name:     "Dinner",
				Amount:   300,
			}))
			if err != nil {
				t.Fatalf("AddCase failed: %v", err)
			}
			if caseResp.Msg.Share != 100 {
				t.Errorf("share: expected 100, got %d", caseResp.Msg.Share)
			}
			if len(caseResp.Msg.DebtIDs) != 2 {
				t.Fatalf("debts: expected 2, got %d", len(caseResp.Msg.DebtIDs))
			}

			payResp, err := bob.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{
				GroupRef:  ref,
				DebtIndex: 0,
				Payment:   150,
			}))
			if err != nil {
				t.Fatalf("PayDebt failed: %v", err)
			}
			if !payResp.Msg.Applied || payResp.Msg.Change != 50 {
				t.Errorf("PayDebt: expected applied with change 50, got %+v", payResp.Msg)
			}

			balances, err := alice.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupRef: ref}))
			if err != nil {
				t.Fatalf("GetBalances failed: %v", err)
			}
			want := map[string]api.MemberBalance{
				string(aliceAddr): {Balance: 100, LentUnpaid: 100},
				string(bobAddr):   {},
				string(carolAddr): {OwedUnpaid: 100},
			}
			for _, b := range balances.Msg.Balances {
				w := want[b.Address]
				if b.Balance != w.Balance || b.OwedUnpaid != w.OwedUnpaid || b.LentUnpaid != w.LentUnpaid {
					t.Errorf("%s: expected balance=%d owed=%d lent=%d, got %+v", b.Name, w.Balance, w.OwedUnpaid, w.LentUnpaid, b)
				}
			}

			collect, err := alice.CollectMoney(ctx, connect.NewRequest(&api.CollectMoneyRequest{GroupRef: ref}))
			if err != nil {
				t.Fatalf("CollectMoney failed: %v", err)
			}
			if collect.Msg.Amount != 100 {
				t.Errorf("collected: expected 100, got %d", collect.Msg.Amount)
			}
			if paid := env.payouts.paidTo(aliceAddr); paid != 100 {
				t.Errorf("payout: expected 100 to alice, got %d", paid)
			}

			again, err := alice.CollectMoney(ctx, connect.NewRequest(&api.CollectMoneyRequest{GroupRef: ref}))
			if err != nil {
				t.Fatalf("second CollectMoney failed: %v", err)
			}
			if again.Msg.Amount != 0 {
				t.Errorf("second collect: expected 0, got %d", again.Msg.Amount)
			}

			eventsResp, err := bob.ListEvents(ctx, connect.NewRequest(&api.ListEventsRequest{GroupID: group.Msg.GroupID}))
			if err != nil {
				t.Fatalf("ListEvents failed: %v", err)
			}
			wantKinds := []string{
				"group_created",
				"person_added", "person_added", "person_added",
				"debt_created", "debt_created",
				"case_added",
			}
			if len(eventsResp.Msg.Events) != len(wantKinds) {
				t.Fatalf("events: expected %d, got %d", len(wantKinds), len(eventsResp.Msg.Events))
			}
			for i, ev := range eventsResp.Msg.Events {
				if ev.Kind != wantKinds[i] {
					t.Errorf("event %d: expected %s, got %s", i, wantKinds[i], ev.Kind)
				}
				if ev.GroupID != group.Msg.GroupID {
					t.Errorf("event %d: group %s, want %s", i, ev.GroupID, group.Msg.GroupID)
				}
			}
			if ev := eventsResp.Msg.Events[4]; ev.Borrower != string(bobAddr) || ev.Amount != 100 {
				t.Errorf("first debt event: expected bob owing 100, got %+v", ev)
			}
			if ev := eventsResp.Msg.Events[6]; ev.Owner != string(aliceAddr) || ev.Amount != 300 {
				t.Errorf("case event: expected alice fronting 300, got %+v", ev)
			}
		})
	}
}

func TestLedgerService_ErrorCodes(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	admin, _ := env.login(t)
	member, memberAddr := env.login(t)

	if _, err := admin.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Flat"})); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, p := range []struct{ name, addr string }{{"Admin", ""}, {"Member", string(memberAddr)}} {
		if _, err := admin.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: p.name, Address: p.addr})); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
	}
	if _, err := admin.AddCase(ctx, connect.NewRequest(&api.AddCaseRequest{Name: "Rent", Amount: 1000})); err != nil {
		t.Fatalf("AddCase failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "non-admin adds person",
			call: func() error {
				_, err := member.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "Eve"}))
				return err
			},
			want: connect.CodePermissionDenied,
		},
		{
			name: "group index out of range",
			call: func() error {
				_, err := admin.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupRef: api.GroupRef{GroupIndex: 5}}))
				return err
			},
			want: connect.CodeOutOfRange,
		},
		{
			name: "empty case name",
			call: func() error {
				_, err := admin.AddCase(ctx, connect.NewRequest(&api.AddCaseRequest{Amount: 10}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "malformed group id",
			call: func() error {
				_, err := admin.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupRef: api.GroupRef{GroupID: "prs_nope"}}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "payment below debt",
			call: func() error {
				_, err := member.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{Payment: 499}))
				return err
			},
			want: connect.CodeFailedPrecondition,
		},
		{
			name: "debt index out of range",
			call: func() error {
				_, err := member.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{DebtIndex: 3, Payment: 500}))
				return err
			},
			want: connect.CodeOutOfRange,
		},
		{
			name: "empty new admin",
			call: func() error {
				_, err := admin.TransferGroupOwnership(ctx, connect.NewRequest(&api.TransferGroupOwnershipRequest{}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "list events without group id",
			call: func() error {
				_, err := admin.ListEvents(ctx, connect.NewRequest(&api.ListEventsRequest{}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
	}

	before := len(env.events.Events())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, tt.call(), tt.want)
		})
	}
	if after := len(env.events.Events()); after != before {
		t.Errorf("rejected calls emitted %d events", after-before)
	}
}

func TestLedgerService_PayoutFailureKeepsBalance(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	admin, _ := env.login(t)
	member, memberAddr := env.login(t)

	admin.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Club"}))
	admin.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "Admin"}))
	admin.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{Name: "Member", Address: string(memberAddr)}))
	admin.AddCase(ctx, connect.NewRequest(&api.AddCaseRequest{Name: "Balls", Amount: 80}))
	if _, err := member.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{Payment: 40})); err != nil {
		t.Fatalf("PayDebt failed: %v", err)
	}

	env.payouts.setFailing(true)
	_, err := admin.CollectMoney(ctx, connect.NewRequest(&api.CollectMoneyRequest{}))
	wantCode(t, err, connect.CodeUnavailable)

	env.payouts.setFailing(false)
	resp, err := admin.CollectMoney(ctx, connect.NewRequest(&api.CollectMoneyRequest{}))
	if err != nil {
		t.Fatalf("CollectMoney failed: %v", err)
	}
	if resp.Msg.Amount != 40 {
		t.Errorf("expected balance 40 to survive the failed payout, got %d", resp.Msg.Amount)
	}
}

func TestLedgerService_NonMemberPaymentIsIgnored(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	admin, _ := env.login(t)
	outsider, _ := env.login(t)

	admin.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Club"}))

	resp, err := outsider.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{DebtIndex: 7, Payment: 10}))
	if err != nil {
		t.Fatalf("PayDebt failed: %v", err)
	}
	if resp.Msg.Applied {
		t.Error("expected applied=false for a caller without a member record")
	}
	if resp.Msg.Change != 10 {
		t.Errorf("expected the full payment back, got %d", resp.Msg.Change)
	}
}

func TestLedgerService_StableIDs(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	admin, _ := env.login(t)

	first, _ := admin.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "First"}))
	second, err := admin.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: "Second"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	ref := api.GroupRef{GroupID: second.Msg.GroupID}

	var personIDs []string
	for _, name := range []string{"A", "B", "C"} {
		resp, err := admin.AddPerson(ctx, connect.NewRequest(&api.AddPersonRequest{
			GroupRef: ref,
			Name:     name,
			Address:  "0x" + name,
		}))
		if err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
		personIDs = append(personIDs, resp.Msg.PersonID)
	}

	if _, err := admin.RemovePerson(ctx, connect.NewRequest(&api.RemovePersonRequest{
		GroupRef: ref,
		PersonID: personIDs[0],
	})); err != nil {
		t.Fatalf("RemovePerson failed: %v", err)
	}
	// C keeps its ID even though its index moved from 2 to 1.
	if _, err := admin.RemovePerson(ctx, connect.NewRequest(&api.RemovePersonRequest{
		GroupRef: ref,
		PersonID: personIDs[2],
	})); err != nil {
		t.Fatalf("RemovePerson by ID after shift failed: %v", err)
	}

	if _, err := admin.UpdateGroupName(ctx, connect.NewRequest(&api.UpdateGroupNameRequest{GroupRef: ref, Name: "Renamed"})); err != nil {
		t.Fatalf("UpdateGroupName failed: %v", err)
	}
	if _, err := admin.MarkGroupFinished(ctx, connect.NewRequest(&api.MarkGroupFinishedRequest{GroupRef: ref})); err != nil {
		t.Fatalf("MarkGroupFinished failed: %v", err)
	}

	got, err := admin.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupRef: ref}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	g := got.Msg.Group
	if g.Index != 1 || g.Name != "Renamed" || !g.Finished {
		t.Errorf("unexpected group %+v", g)
	}
	if len(g.Persons) != 1 || g.Persons[0].ID != personIDs[1] {
		t.Errorf("expected only B to remain, got %+v", g.Persons)
	}

	list, err := admin.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 2 || list.Msg.Groups[0].ID != first.Msg.GroupID {
		t.Errorf("unexpected listing %+v", list.Msg.Groups)
	}

	if _, err := admin.TransferGroupOwnership(ctx, connect.NewRequest(&api.TransferGroupOwnershipRequest{
		GroupRef: ref,
		NewAdmin: "0xB",
	})); err != nil {
		t.Fatalf("TransferGroupOwnership failed: %v", err)
	}
	_, err = admin.UpdateGroupName(ctx, connect.NewRequest(&api.UpdateGroupNameRequest{GroupRef: ref, Name: "Mine"}))
	wantCode(t, err, connect.CodePermissionDenied)
}

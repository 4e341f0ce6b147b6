package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

func groupRef(opts *options) api.GroupRef {
	return api.GroupRef{GroupIndex: opts.group, GroupID: opts.groupID}
}

func parseIndex(s, what string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return i, nil
}

func runCreateGroup(ctx context.Context, opts *options, args []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{Name: args[0]}))
	if err != nil {
		return err
	}
	fmt.Printf("group %d %s\n", resp.Msg.GroupIndex, resp.Msg.GroupID)
	return nil
}

func runAddPerson(ctx context.Context, opts *options, args []string) error {
	req := &api.AddPersonRequest{GroupRef: groupRef(opts), Name: args[0]}
	if len(args) > 1 {
		req.Address = args[1]
	}

	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.AddPerson(ctx, connect.NewRequest(req))
	if err != nil {
		return err
	}
	fmt.Printf("person %d %s\n", resp.Msg.PersonIndex, resp.Msg.PersonID)
	return nil
}

func runAddCase(ctx context.Context, opts *options, args []string) error {
	amount, err := parseAmount(args[1], opts.decimals)
	if err != nil {
		return err
	}

	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.AddCase(ctx, connect.NewRequest(&api.AddCaseRequest{
		GroupRef: groupRef(opts),
		Name:     args[0],
		Amount:   amount,
	}))
	if err != nil {
		return err
	}
	fmt.Printf("case %d %s: %d debts of %s (%d)\n",
		resp.Msg.CaseIndex, resp.Msg.CaseID, len(resp.Msg.DebtIDs),
		formatAmount(resp.Msg.Share, opts.decimals), resp.Msg.Share)
	return nil
}

func runPay(ctx context.Context, opts *options, args []string) error {
	debtIndex, err := parseIndex(args[0], "debt index")
	if err != nil {
		return err
	}
	payment, err := parseAmount(args[1], opts.decimals)
	if err != nil {
		return err
	}

	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.PayDebt(ctx, connect.NewRequest(&api.PayDebtRequest{
		GroupRef:  groupRef(opts),
		DebtIndex: debtIndex,
		DebtID:    opts.debtID,
		Payment:   payment,
	}))
	if err != nil {
		return err
	}
	if !resp.Msg.Applied {
		fmt.Println("not a member of this group, nothing paid")
		return nil
	}
	fmt.Printf("paid, change %s (%d)\n", formatAmount(resp.Msg.Change, opts.decimals), resp.Msg.Change)
	return nil
}

func runCollect(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.CollectMoney(ctx, connect.NewRequest(&api.CollectMoneyRequest{GroupRef: groupRef(opts)}))
	if err != nil {
		return err
	}
	fmt.Printf("collected %s (%d)\n", formatAmount(resp.Msg.Amount, opts.decimals), resp.Msg.Amount)
	return nil
}

func runFinish(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	_, err = client.MarkGroupFinished(ctx, connect.NewRequest(&api.MarkGroupFinishedRequest{GroupRef: groupRef(opts)}))
	return err
}

func runRemovePerson(ctx context.Context, opts *options, args []string) error {
	personIndex, err := parseIndex(args[0], "person index")
	if err != nil {
		return err
	}

	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	_, err = client.RemovePerson(ctx, connect.NewRequest(&api.RemovePersonRequest{
		GroupRef:    groupRef(opts),
		PersonIndex: personIndex,
		PersonID:    opts.personID,
	}))
	return err
}

func runRename(ctx context.Context, opts *options, args []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	_, err = client.UpdateGroupName(ctx, connect.NewRequest(&api.UpdateGroupNameRequest{
		GroupRef: groupRef(opts),
		Name:     args[0],
	}))
	return err
}

func runTransfer(ctx context.Context, opts *options, args []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	_, err = client.TransferGroupOwnership(ctx, connect.NewRequest(&api.TransferGroupOwnershipRequest{
		GroupRef: groupRef(opts),
		NewAdmin: args[0],
	}))
	return err
}

func runGroups(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tID\tNAME\tADMIN\tPERSONS\tCASES\tFINISHED")
	for _, g := range resp.Msg.Groups {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%t\n", g.Index, g.ID, g.Name, g.Admin, g.PersonCount, g.CaseCount, g.Finished)
	}
	return w.Flush()
}

func runGroup(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupRef: groupRef(opts)}))
	if err != nil {
		return err
	}
	g := resp.Msg.Group

	fmt.Printf("%s (%d, %s)\nadmin: %s\nfinished: %t\n\n", g.Name, g.Index, g.ID, g.Admin, g.Finished)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERSON\tNAME\tADDRESS\tBALANCE")
	for i, p := range g.Persons {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, p.Name, p.Address, formatAmount(p.Balance, opts.decimals))
		for j, d := range p.Debts {
			status := "open"
			if d.Paid {
				status = "paid"
			}
			fmt.Fprintf(w, "  debt %d\t%s\tto %s\t%s %s\n", j, d.Name, d.Lender, formatAmount(d.Amount, opts.decimals), status)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CASE\tNAME\tOWNER\tAMOUNT")
	for i, c := range g.Cases {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, c.Name, c.Owner, formatAmount(c.Amount, opts.decimals))
	}
	return w.Flush()
}

func runBalances(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}
	resp, err := client.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupRef: groupRef(opts)}))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERSON\tNAME\tBALANCE\tOWES\tIS OWED\tDEBTS PAID")
	for _, b := range resp.Msg.Balances {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
			b.PersonIndex, b.Name,
			formatAmount(b.Balance, opts.decimals),
			formatAmount(b.OwedUnpaid, opts.decimals),
			formatAmount(b.LentUnpaid, opts.decimals),
			b.PaidCount, b.DebtCount)
	}
	return w.Flush()
}

func runEvents(ctx context.Context, opts *options, _ []string) error {
	client, err := ledgerClient(opts)
	if err != nil {
		return err
	}

	groupID := opts.groupID
	if groupID == "" {
		resp, err := client.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupRef: groupRef(opts)}))
		if err != nil {
			return err
		}
		groupID = resp.Msg.Group.ID
	}

	resp, err := client.ListEvents(ctx, connect.NewRequest(&api.ListEventsRequest{GroupID: groupID, Limit: opts.limit}))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIME\tKIND\tDETAIL")
	for _, ev := range resp.Msg.Events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ev.Seq, time.Unix(ev.CreatedAt, 0).Format(time.DateTime), ev.Kind, describeEvent(ev, opts.decimals))
	}
	return w.Flush()
}

func describeEvent(ev api.Event, decimals int32) string {
	switch ev.Kind {
	case "group_created":
		return fmt.Sprintf("%q by %s", ev.Name, ev.Admin)
	case "person_added":
		return fmt.Sprintf("%s as %q", ev.Address, ev.Name)
	case "case_added":
		return fmt.Sprintf("%q %s fronted by %s", ev.Name, formatAmount(ev.Amount, decimals), ev.Owner)
	case "debt_created":
		return fmt.Sprintf("%s owes %s %s for %q", ev.Borrower, ev.Lender, formatAmount(ev.Amount, decimals), ev.Name)
	default:
		return ""
	}
}

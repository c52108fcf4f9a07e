// Command lodgecore is the operator console for a small lodging facility:
// it manages floors, rooms, and tenants against the persistent aggregate,
// prints derived statistics, and issues rent receipts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"lodgecore/internal/advice"
	"lodgecore/internal/blob"
	"lodgecore/internal/core"
	"lodgecore/internal/infra/audit/zaplog"
	"lodgecore/internal/infra/qrcode"
	"lodgecore/internal/receipt"
	"lodgecore/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "lodgecore:", err)
		exitFunc(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage: lodgecore <command> [flags]

commands:
  stats                         print derived occupancy and revenue figures
  floors                        list floors
  rooms                         list rooms
  tenants                       list tenants
  add-floor -name <name>        create a floor
  add-room -floor <id> -number <n> -capacity <c>
  assign -room <id> -name <n> [-mobile <m>] [-rent <r>] [-joined <date>]
  remove-tenant -id <id>        remove a tenant
  receipt -tenant <id>          compose and archive a rent receipt
  settings                      print facility settings
  ask -q <question>             ask the advice assistant about the facility`)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}
	ctx := context.Background()

	audit, err := zaplog.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = audit.Sync() }()

	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine())
	if err != nil {
		return err
	}
	svc := core.NewService(store, core.WithAuditRecorder(audit))

	switch args[0] {
	case "stats":
		stats, err := svc.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, stats)
	case "floors":
		return printJSON(out, svc.Floors())
	case "rooms":
		return printJSON(out, svc.Rooms())
	case "tenants":
		return printJSON(out, svc.Tenants())
	case "settings":
		return printJSON(out, svc.Settings())
	case "add-floor":
		return runAddFloor(ctx, svc, args[1:], out)
	case "add-room":
		return runAddRoom(ctx, svc, args[1:], out)
	case "assign":
		return runAssign(ctx, svc, args[1:], out)
	case "remove-tenant":
		return runRemoveTenant(ctx, svc, args[1:], out)
	case "receipt":
		return runReceipt(ctx, svc, args[1:], out)
	case "ask":
		return runAsk(ctx, svc, args[1:], out)
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runAddFloor(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-floor", flag.ContinueOnError)
	name := fs.String("name", "", "floor display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("-name is required")
	}
	floor, res, err := svc.AddFloor(ctx, *name)
	if err != nil {
		return err
	}
	printWarnings(out, res)
	return printJSON(out, floor)
}

func runAddRoom(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-room", flag.ContinueOnError)
	floorID := fs.String("floor", "", "parent floor id")
	number := fs.String("number", "", "room display number")
	capacity := fs.Int("capacity", 1, "beds available")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *floorID == "" || *number == "" {
		return fmt.Errorf("-floor and -number are required")
	}
	room, res, err := svc.AddRoom(ctx, *floorID, *number, *capacity)
	if err != nil {
		return err
	}
	printWarnings(out, res)
	return printJSON(out, room)
}

func runAssign(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	roomID := fs.String("room", "", "room id")
	name := fs.String("name", "", "tenant name")
	mobile := fs.String("mobile", "", "10-digit mobile number")
	rent := fs.Int64("rent", 0, "monthly rent")
	joined := fs.String("joined", "", "joining date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *roomID == "" || *name == "" {
		return fmt.Errorf("-room and -name are required")
	}
	tenant, res, err := svc.AssignTenant(ctx, *roomID, core.TenantDraft{
		Name:        *name,
		Mobile:      *mobile,
		Rent:        *rent,
		JoiningDate: *joined,
	})
	if err != nil {
		return err
	}
	printWarnings(out, res)
	return printJSON(out, tenant)
}

func runRemoveTenant(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("remove-tenant", flag.ContinueOnError)
	id := fs.String("id", "", "tenant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	res, err := svc.RemoveTenant(ctx, *id)
	if err != nil {
		return err
	}
	printWarnings(out, res)
	fmt.Fprintln(out, "removed", *id)
	return nil
}

func runReceipt(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("receipt", flag.ContinueOnError)
	tenantID := fs.String("tenant", "", "tenant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tenantID == "" {
		return fmt.Errorf("-tenant is required")
	}
	tenant, ok := svc.Tenant(*tenantID)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityTenant, ID: *tenantID}
	}
	room, ok := svc.Room(tenant.RoomID)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityRoom, ID: tenant.RoomID}
	}

	composer := receipt.NewComposer(qrcode.New(0))
	doc := composer.Compose(tenant, room, svc.Settings())

	artifacts, err := blob.Open(ctx)
	if err != nil {
		return err
	}
	info, err := receipt.NewArchiver(artifacts).Archive(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "archived", info.Key)
	return printJSON(out, doc)
}

func runAsk(ctx context.Context, svc *core.Service, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	question := fs.String("q", "", "question for the assistant")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *question == "" {
		return fmt.Errorf("-q is required")
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}
	snapshot := advice.BuildContext(stats, svc.Floors(), svc.Rooms(), svc.Tenants())
	assistant := advice.NewFromEnv(ctx, svc.Settings().HostelName)
	fmt.Fprintln(out, advice.NewTranscript().Ask(ctx, assistant, *question, snapshot))
	return nil
}

func printWarnings(out io.Writer, res core.Result) {
	for _, v := range res.Violations {
		fmt.Fprintf(out, "warning [%s]: %s\n", v.Rule, v.Message)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

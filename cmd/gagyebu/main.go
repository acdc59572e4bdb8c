package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gagyebu/internal/cli"
	"gagyebu/internal/core"
	"gagyebu/internal/gateway"
	"gagyebu/internal/store"
	"gagyebu/internal/views"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	gw := gateway.New(cfg.BackendURL, cfg.HTTPTimeout)
	st := store.New(gw, store.Config{DeleteDelay: cfg.DeleteDelay})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, st, os.Args[2:])
	case "add":
		err = runAdd(ctx, st, os.Args[2:])
	case "edit":
		err = runEdit(ctx, st, os.Args[2:])
	case "delete":
		err = runDelete(ctx, st, os.Args[2:])
	case "calendar":
		err = runCalendar(ctx, st, os.Args[2:])
	case "options":
		err = runOptions(st, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gagyebu <command> [flags]

commands:
  list      show records grouped by date with daily totals
  add       create a record
  edit      update a record
  delete    remove a record (after the confirmation delay)
  calendar  monthly income/expense summary
  options   show the payment method and category option sets`)
}

// refresh loads the remote collection and surfaces the recorded failure,
// since the store never propagates refresh errors itself.
func refresh(ctx context.Context, st *store.Store) error {
	st.Refresh(ctx)
	if msg := st.Err(); msg != "" {
		return fmt.Errorf("refresh failed: %s", msg)
	}
	return nil
}

func runList(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	income := fs.Bool("income", true, "show income records")
	expense := fs.Bool("expense", true, "show expense records")
	fs.Parse(args)

	if err := refresh(ctx, st); err != nil {
		return err
	}

	visible := views.VisibleRecords(st.Records(), *income, *expense)
	if len(visible) == 0 {
		fmt.Println("no records")
		return nil
	}

	for _, group := range views.GroupByDate(visible) {
		fmt.Println(group.Date)
		for _, tx := range group.Records {
			sign := "-"
			if tx.Type == core.TypeIncome {
				sign = "+"
			}
			fmt.Printf("  %s%s원  %s  [%s / %s]\n",
				sign, core.FormatAmount(tx.Amount), tx.Description, tx.PaymentMethod, tx.Category)
		}
		if in := views.DailyTotal(group.Records, core.TypeIncome); in > 0 {
			fmt.Printf("  수입 합계 %s원\n", core.FormatAmount(in))
		}
		if out := views.DailyTotal(group.Records, core.TypeExpense); out > 0 {
			fmt.Printf("  지출 합계 %s원\n", core.FormatAmount(out))
		}
	}

	totals := views.Sum(visible)
	fmt.Printf("합계: 수입 %s원, 지출 %s원\n",
		core.FormatAmount(totals.Income), core.FormatAmount(totals.Expense))
	return nil
}

// draftFlags registers the record fields shared by add and edit.
func draftFlags(fs *flag.FlagSet) (date, amount, desc, pay, cat, kind *string) {
	date = fs.String("date", "", "date as YYYY. MM. DD")
	amount = fs.String("amount", "", "amount, e.g. 50000 or 50,000")
	desc = fs.String("desc", "", "description")
	pay = fs.String("pay", "", "payment method")
	cat = fs.String("cat", "", "category")
	kind = fs.String("type", string(core.TypeExpense), "income or expense")
	return
}

func runAdd(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date, amount, desc, pay, cat, kind := draftFlags(fs)
	fs.Parse(args)

	value, err := core.ParseAmount(*amount)
	if err != nil {
		return err
	}
	draft := core.Draft{
		Date:          *date,
		Amount:        value,
		Description:   *desc,
		PaymentMethod: *pay,
		Category:      *cat,
		Type:          core.TxType(*kind),
	}
	if err := st.Submit(ctx, draft, ""); err != nil {
		return err
	}
	fmt.Println("added")
	return nil
}

func runEdit(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "record id")
	date, amount, desc, pay, cat, kind := draftFlags(fs)
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("edit requires -id")
	}
	if err := refresh(ctx, st); err != nil {
		return err
	}

	var current core.Transaction
	found := false
	for _, tx := range st.Records() {
		if tx.ID == *id {
			current, found = tx, true
			break
		}
	}
	if !found {
		return fmt.Errorf("no record with id %s", *id)
	}

	// Unset flags keep the stored value.
	draft := current.DraftOf()
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["date"] {
		draft.Date = *date
	}
	if set["amount"] {
		value, err := core.ParseAmount(*amount)
		if err != nil {
			return err
		}
		draft.Amount = value
	}
	if set["desc"] {
		draft.Description = *desc
	}
	if set["pay"] {
		draft.PaymentMethod = *pay
	}
	if set["cat"] {
		draft.Category = *cat
	}
	if set["type"] {
		draft.Type = core.TxType(*kind)
	}

	st.SelectForEdit(*id)
	if err := st.Submit(ctx, draft, *id); err != nil {
		return err
	}
	fmt.Println("updated")
	return nil
}

func runDelete(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "record id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("delete requires -id")
	}
	if err := refresh(ctx, st); err != nil {
		return err
	}

	st.RequestDelete(*id)
	fmt.Println("deleting... (Ctrl-C to cancel)")
	if err := st.ConfirmDelete(ctx, *id); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func runCalendar(ctx context.Context, st *store.Store, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	year := fs.Int("year", now.Year(), "year")
	month := fs.Int("month", int(now.Month()), "month (1-12)")
	fs.Parse(args)

	if *month < 1 || *month > 12 {
		return fmt.Errorf("invalid month %d", *month)
	}
	if err := refresh(ctx, st); err != nil {
		return err
	}

	stats := views.NewStatsView(3, time.Minute)
	byDay := stats.Month(st.Version(), st.Records(), *year, *month)

	fmt.Printf("%04d-%02d\n", *year, *month)
	days := time.Date(*year, time.Month(*month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var monthly views.DayStat
	for day := 1; day <= days; day++ {
		stat, ok := byDay[core.DayKey(*year, *month, day)]
		if !ok {
			continue
		}
		fmt.Printf("  %02d  +%s  -%s  (%s)\n", day,
			core.FormatAmount(stat.Income), core.FormatAmount(stat.Expense),
			core.FormatAmount(stat.Total))
		monthly.Income += stat.Income
		monthly.Expense += stat.Expense
		monthly.Total += stat.Total
	}
	fmt.Printf("합계  +%s  -%s  (%s)\n",
		core.FormatAmount(monthly.Income), core.FormatAmount(monthly.Expense),
		core.FormatAmount(monthly.Total))
	return nil
}

func runOptions(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("options", flag.ExitOnError)
	add := fs.String("add", "", "label to add")
	rm := fs.String("remove", "", "label to remove")
	kind := fs.String("type", string(core.TypeExpense), "category type: income or expense")
	payments := fs.Bool("payments", false, "operate on payment methods instead of categories")
	fs.Parse(args)

	t := core.TxType(*kind)
	switch {
	case *add != "" && *payments:
		st.AddPaymentMethod(*add)
	case *add != "":
		st.AddCategory(t, *add)
	case *rm != "" && *payments:
		st.RemovePaymentMethod(*rm)
	case *rm != "":
		st.RemoveCategory(t, *rm)
	}

	fmt.Println("결제수단:")
	for _, label := range st.PaymentMethods() {
		fmt.Println("  " + label)
	}
	fmt.Println("수입 분류:")
	for _, label := range st.Categories(core.TypeIncome) {
		fmt.Println("  " + label)
	}
	fmt.Println("지출 분류:")
	for _, label := range st.Categories(core.TypeExpense) {
		fmt.Println("  " + label)
	}
	return nil
}

// mealops is the operator CLI for the school meal-service API: sign in, view
// the monthly operation calendar, record missed meals and leftovers, export
// monthly reports, and look up foods.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/greenplate/mealops/internal/api"
	"github.com/greenplate/mealops/internal/auth"
	"github.com/greenplate/mealops/internal/calendar"
	"github.com/greenplate/mealops/internal/config"
	"github.com/greenplate/mealops/internal/foods"
	"github.com/greenplate/mealops/internal/mealplan"
	"github.com/greenplate/mealops/internal/records"
	"github.com/greenplate/mealops/internal/reports"
	"github.com/greenplate/mealops/internal/session"
)

const usage = `usage: mealops <command> [args]

commands:
  login                      sign in (MEALOPS_EMAIL, MEALOPS_PASSWORD) and print a token
  month [YYYY-MM]            show the operation calendar for a month
  record -date YYYY-MM-DD    save missed counts / leftover weights for a date
  report [YYYY-MM]           export the monthly operations report as PDF
  foods <query>              search the food/nutrition reference

set MEALOPS_TOKEN for every command except login.`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	sess := session.New()
	sess.Tokens.Set(strings.TrimSpace(os.Getenv("MEALOPS_TOKEN")))

	client := api.NewClient(cfg.APIBaseURL, sess.Tokens, api.Options{
		Timeout:        time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, client)
	case "month":
		err = runMonth(ctx, client, sess, os.Args[2:])
	case "record":
		err = runRecord(ctx, client, sess, os.Args[2:])
	case "report":
		err = runReport(ctx, client, sess, cfg.ReportDir, os.Args[2:])
	case "foods":
		err = runFoods(ctx, client, os.Args[2:])
	default:
		fmt.Println(usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("mealops %s: %v", os.Args[1], err)
	}
}

func runLogin(ctx context.Context, client *api.Client) error {
	email := strings.TrimSpace(os.Getenv("MEALOPS_EMAIL"))
	password := os.Getenv("MEALOPS_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("MEALOPS_EMAIL and MEALOPS_PASSWORD are required")
	}

	resp, err := client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("signed in, server date %s\n", resp.Today)
	if claims, err := auth.DecodeClaims(resp.Token); err == nil {
		fmt.Printf("subject=%s school_id=%d expires=%s\n", claims.Subject, claims.SchoolID, claims.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Printf("\nexport MEALOPS_TOKEN=%s\n", resp.Token)
	return nil
}

// prepare loads the school context and the server reference date for
// commands that need a signed-in session.
func prepare(ctx context.Context, client *api.Client, sess *session.Session) error {
	if !sess.SignedIn() {
		return fmt.Errorf("MEALOPS_TOKEN is not set, run `mealops login` first")
	}

	profile, err := client.FetchProfile(ctx)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	sess.School = session.SchoolInfo{ID: profile.SchoolID, Name: profile.SchoolName}

	sess.Today = strings.TrimSpace(os.Getenv("MEALOPS_TODAY"))
	if sess.Today == "" {
		sess.Today = time.Now().Format("2006-01-02")
	}
	return nil
}

func runMonth(ctx context.Context, client *api.Client, sess *session.Session, args []string) error {
	month, err := monthArg(args)
	if err != nil {
		return err
	}
	if err := prepare(ctx, client, sess); err != nil {
		return err
	}

	resolver := mealplan.NewResolver(client)
	avail, err := resolver.Resolve(ctx, month.Year, month.Month)
	if err != nil {
		// Recoverable: the grid still renders, with no recordable slots.
		log.Printf("availability unavailable for %s: %v", month, err)
	}

	printGrid(month, sess, avail)
	return nil
}

func printGrid(month calendar.Month, sess *session.Session, avail map[string]mealplan.Availability) {
	layout := month.Layout()
	fmt.Printf("%s (%s, today %s)\n", month, sess.School.Name, sess.Today)
	fmt.Println(" Su  Mo  Tu  We  Th  Fr  Sa")

	for cell := 0; cell < layout.TotalCells; cell++ {
		day := layout.DayAt(cell)

		var date string
		var rec *records.DailyRecord
		if day > 0 {
			date = month.DateString(day)
			if r, ok := sess.Records.Get(date); ok {
				rec = &r
			}
		}

		state := calendar.CellFor(calendar.CellInput{
			Day:          day,
			Date:         date,
			Today:        sess.Today,
			DaysInMonth:  layout.DaysInMonth,
			Record:       rec,
			Availability: avail[date],
		})

		fmt.Print(formatCell(state))
		if (cell+1)%7 == 0 {
			fmt.Println()
		}
	}
}

// formatCell renders a cell as a fixed-width token: day number, then L/D
// markers for planned slots, * when a record exists, parentheses when
// disabled.
func formatCell(state calendar.CellState) string {
	if state.Label == "" {
		return "    "
	}
	token := state.Label
	if state.Lunch != nil {
		token += "L"
	}
	if state.Dinner != nil {
		token += "D"
	}
	if state.HasRecord {
		token += "*"
	}
	if state.Disabled {
		token = "(" + token + ")"
	}
	return fmt.Sprintf("%4s", token)
}

func runRecord(ctx context.Context, client *api.Client, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	date := fs.String("date", "", "date to record, YYYY-MM-DD")
	lunchMissed := fs.String("lunch-missed", "", "missed lunch count")
	lunchKg := fs.String("lunch-kg", "", "lunch leftovers, kg")
	dinnerMissed := fs.String("dinner-missed", "", "missed dinner count")
	dinnerKg := fs.String("dinner-kg", "", "dinner leftovers, kg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *date == "" {
		return fmt.Errorf("-date is required")
	}
	if _, err := time.Parse("2006-01-02", *date); err != nil {
		return fmt.Errorf("invalid -date %q", *date)
	}

	if err := prepare(ctx, client, sess); err != nil {
		return err
	}
	if *date > sess.Today {
		return fmt.Errorf("%s is in the future", *date)
	}

	t, _ := time.Parse("2006-01-02", *date)
	resolver := mealplan.NewResolver(client)
	avail, err := resolver.Resolve(ctx, t.Year(), t.Month())
	if err != nil {
		return fmt.Errorf("resolve availability: %w", err)
	}

	dayAvail := avail[*date]
	if dayAvail.None() {
		return fmt.Errorf("no meal is planned for %s, nothing to record", *date)
	}

	reconciler := records.NewReconciler(client, sess.Records)
	editor := records.NewEditor(reconciler, sess.Records, *date)
	editor.Values = records.FormValues{
		LunchMissed:       *lunchMissed,
		LunchLeftoversKg:  *lunchKg,
		DinnerMissed:      *dinnerMissed,
		DinnerLeftoversKg: *dinnerKg,
	}

	if err := editor.Save(ctx, sess.School.ID, dayAvail); err != nil {
		return err
	}

	rec, _ := sess.Records.Get(*date)
	fmt.Printf("saved %s: lunch %d missed / %.1f kg, dinner %d missed / %.1f kg\n",
		*date, rec.LunchMissed, rec.LunchLeftoversKg, rec.DinnerMissed, rec.DinnerLeftoversKg)
	return nil
}

func runReport(ctx context.Context, client *api.Client, sess *session.Session, dir string, args []string) error {
	month, err := monthArg(args)
	if err != nil {
		return err
	}
	if err := prepare(ctx, client, sess); err != nil {
		return err
	}

	resolver := mealplan.NewResolver(client)
	avail, err := resolver.Resolve(ctx, month.Year, month.Month)
	if err != nil {
		return fmt.Errorf("resolve availability: %w", err)
	}

	generator := reports.NewGenerator(sess.School.Name)
	data, err := generator.MonthlyPDF(month, avail, sess.Records.Snapshot())
	if err != nil {
		return err
	}

	path, err := generator.SaveToFile(dir, month, data)
	if err != nil {
		return err
	}
	fmt.Printf("report written to %s\n", path)
	return nil
}

func runFoods(ctx context.Context, client *api.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mealops foods <query>")
	}

	service := foods.NewService(client)
	page, err := service.Search(ctx, strings.Join(args, " "), 1)
	if err != nil {
		return err
	}

	fmt.Printf("%d results\n", page.Total)
	for _, food := range page.Foods {
		fmt.Printf("  %-30s %s\n", food.Name, food.Summary)
	}
	return nil
}

// monthArg parses an optional YYYY-MM argument, defaulting to the current
// month.
func monthArg(args []string) (calendar.Month, error) {
	if len(args) == 0 {
		return calendar.MonthOf(time.Now()), nil
	}
	parts := strings.SplitN(args[0], "-", 2)
	if len(parts) != 2 {
		return calendar.Month{}, fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return calendar.Month{}, fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
	}
	monthNum, err := strconv.Atoi(parts[1])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return calendar.Month{}, fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
	}
	return calendar.Month{Year: year, Month: time.Month(monthNum)}, nil
}

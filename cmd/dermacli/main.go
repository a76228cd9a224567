// Command dermacli exercises the mobile client core from a terminal: log
// in, browse doctors and availability, book and cancel appointments, and
// page through scan history. It drives the exact code paths the mobile
// screens use.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/internal/appointments"
	"github.com/dermatrack/mobile-core/internal/availability"
	"github.com/dermatrack/mobile-core/internal/booking"
	"github.com/dermatrack/mobile-core/internal/classify"
	appconfig "github.com/dermatrack/mobile-core/internal/config"
	"github.com/dermatrack/mobile-core/internal/history"
	"github.com/dermatrack/mobile-core/internal/observability/metrics"
	"github.com/dermatrack/mobile-core/internal/realtime"
	"github.com/dermatrack/mobile-core/internal/refresh"
	"github.com/dermatrack/mobile-core/internal/session"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

const usage = `usage: dermacli <command> [args]

commands:
  login <email> <password>          authenticate and print the session token
  doctors                           list connected doctors
  availability <doctorID> [month]   show open slots for a month index
  book <doctorID> <slotISO> [type]  book an appointment
  appointments                      list upcoming and past appointments
  cancel <appointmentID>            cancel an appointment
  history [page]                    page through scan history
  watch                             follow invalidation events until interrupted

DERMATRACK_TOKEN must hold a session token for everything except login.`

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	sess := session.New(logger)
	sess.OnExpired(func() {
		fmt.Fprintln(os.Stderr, "session expired; run `dermacli login` again")
	})
	if tok := os.Getenv("DERMATRACK_TOKEN"); tok != "" {
		sess.SetTokens(tok, os.Getenv("DERMATRACK_REFRESH_TOKEN"), session.User{})
	}

	client := api.NewClient(cfg.APIBaseURL, sess, logger).
		WithTimeout(cfg.RequestTimeout).
		WithMetrics(metrics.NewClientMetrics(nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], cfg, logger, sess, client); err != nil {
		if msg := api.UserMessage(err, err.Error()); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, cfg *appconfig.Config, logger *logging.Logger, sess *session.Session, client *api.Client) error {
	switch cmd {
	case "login":
		return runLogin(ctx, args, sess, client)
	case "doctors":
		return runDoctors(ctx, client)
	case "availability":
		return runAvailability(ctx, args, cfg, logger, client)
	case "book":
		return runBook(ctx, args, cfg, logger, client)
	case "appointments":
		return runAppointments(ctx, logger, client)
	case "cancel":
		return runCancel(ctx, args, logger, client)
	case "history":
		return runHistory(ctx, args, cfg, logger, client)
	case "watch":
		return runWatch(ctx, cfg, logger, sess, client)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, args []string, sess *session.Session, client *api.Client) error {
	if len(args) < 2 {
		return fmt.Errorf("login needs <email> <password>")
	}
	out, err := client.Login(ctx, api.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	sess.SetTokens(out.Token, out.RefreshToken, session.User{ID: out.User.ID, Email: out.User.Email, FullName: out.User.FullName})
	fmt.Printf("logged in as %s (%s)\n", out.User.FullName, out.User.Email)
	fmt.Printf("export DERMATRACK_TOKEN=%s\n", out.Token)
	return nil
}

func runDoctors(ctx context.Context, client *api.Client) error {
	doctors, err := client.ConnectedDoctors(ctx)
	if err != nil {
		return err
	}
	for _, d := range doctors {
		fmt.Printf("%s  %s  %s\n", d.ID, d.Name, d.Location)
	}
	return nil
}

func runAvailability(ctx context.Context, args []string, cfg *appconfig.Config, logger *logging.Logger, client *api.Client) error {
	if len(args) < 1 {
		return fmt.Errorf("availability needs <doctorID>")
	}
	monthIndex := 0
	if len(args) > 1 {
		monthIndex, _ = strconv.Atoi(args[1])
	}
	resolver := availability.NewResolver(client, logger, cfg.BookingMonthWindow)
	res, err := resolver.Resolve(ctx, args[0], monthIndex)
	if err != nil {
		return err
	}
	if res.Expanded {
		fmt.Println("(no slots this month; showing through next month)")
	}
	for _, d := range res.Dates {
		fmt.Println(d.Date)
		for _, s := range d.Slots {
			fmt.Printf("  %s\n", s.Time)
		}
	}
	return nil
}

func runBook(ctx context.Context, args []string, cfg *appconfig.Config, logger *logging.Logger, client *api.Client) error {
	if len(args) < 2 {
		return fmt.Errorf("book needs <doctorID> <slotISO>")
	}
	apptType := api.TypeInPerson
	if len(args) > 2 {
		apptType = args[2]
	}
	doc, err := client.DoctorDetail(ctx, args[0])
	if err != nil {
		return err
	}
	resolver := availability.NewResolver(client, logger, cfg.BookingMonthWindow)
	w := booking.NewWizard(resolver, client, logger)
	w.SelectDoctor(*doc)
	if err := w.Next(); err != nil {
		return err
	}
	slot, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		return fmt.Errorf("slot must be RFC3339, e.g. 2024-06-20T09:00:00Z: %w", err)
	}
	w.SelectDate(slot.Format("2006-01-02"))
	w.SelectSlot(api.Slot{Time: args[1]})
	w.SetDetails(apptType, "", "")
	if err := w.Next(); err != nil {
		return err
	}
	if err := w.Submit(ctx); err != nil {
		return err
	}
	booked := w.Snapshot().Booked
	badge := classify.AppointmentStatusBadge(booked.Status)
	fmt.Printf("booked %s  %s  %s\n", booked.ID, booked.Date, badge.Label)
	return nil
}

func runAppointments(ctx context.Context, logger *logging.Logger, client *api.Client) error {
	svc := appointments.NewService(client, logger)
	p, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Println("upcoming:")
	printAppointments(p.Upcoming)
	fmt.Println("past:")
	printAppointments(p.Past)
	return nil
}

func printAppointments(appts []api.Appointment) {
	for _, a := range appts {
		badge := classify.AppointmentStatusBadge(a.Status)
		fmt.Printf("  %s  %s  %s  %s\n", a.ID, a.Date, badge.Label, classify.Humanize(a.Type))
	}
}

func runCancel(ctx context.Context, args []string, logger *logging.Logger, client *api.Client) error {
	if len(args) < 1 {
		return fmt.Errorf("cancel needs <appointmentID>")
	}
	svc := appointments.NewService(client, logger)
	p, err := svc.Cancel(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("canceled; %d upcoming remain\n", len(p.Upcoming))
	return nil
}

func runHistory(ctx context.Context, args []string, cfg *appconfig.Config, logger *logging.Logger, client *api.Client) error {
	pages := 1
	if len(args) > 0 {
		pages, _ = strconv.Atoi(args[0])
	}
	pager := history.NewPager(client, logger, cfg.HistoryPageSize)
	if err := pager.Refresh(ctx); err != nil {
		return err
	}
	for i := 1; i < pages && pager.HasMore(); i++ {
		if err := pager.LoadMore(ctx); err != nil {
			return err
		}
	}
	for _, c := range pager.Cases() {
		risk := classify.RiskBadge(c.RiskLevel)
		status := classify.CaseStatusBadge(c.Status)
		fmt.Printf("%s  %s  %-8s  %s\n", c.ID, c.CaseNumber, risk.Label, status.Label)
	}
	fmt.Printf("%d of %d cases loaded\n", len(pager.Cases()), pager.Total())
	return nil
}

func runWatch(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, sess *session.Session, client *api.Client) error {
	user := sess.User()
	var source realtime.Source
	switch cfg.RealtimeSource {
	case "redis":
		src := realtime.NewRedisSource(realtime.RedisConfig{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			TLS:         cfg.RedisTLS,
			ChannelBase: cfg.RedisChannelBase,
			UserID:      user.ID,
		}, logger)
		defer src.Close()
		source = src
	case "websocket":
		token, err := sess.Token()
		if err != nil {
			return err
		}
		source = realtime.NewWebsocketSource(cfg.WebsocketURL, token, logger)
	default:
		source = realtime.NewNopSource()
	}

	coord := refresh.NewCoordinator(source, cfg.ReconcileInterval, logger)
	svc := appointments.NewService(client, logger)
	coord.Register(realtime.ResourceAppointments, func(ctx context.Context) error {
		p, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}
		out, _ := json.Marshal(map[string]int{"upcoming": len(p.Upcoming), "past": len(p.Past)})
		fmt.Printf("appointments refreshed: %s\n", out)
		return nil
	})

	errs := make(chan error, 2)
	go func() { errs <- source.Run(ctx) }()
	go func() { errs <- coord.Run(ctx) }()

	fmt.Println("watching for changes; ctrl-c to stop")
	err := <-errs
	if ctx.Err() != nil {
		return nil
	}
	return err
}

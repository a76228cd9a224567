// Package availability resolves a doctor's open slots for a month-indexed
// booking window. Index 0 is the current month, index 1 the next, and so on
// up to the configured window size.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

const tracerName = "github.com/dermatrack/mobile-core/internal/availability"

// Fetcher is the slice of the API client the resolver needs.
type Fetcher interface {
	Availability(ctx context.Context, doctorID, startDate, endDate string) ([]api.AvailabilityDate, error)
}

// Result carries the resolved dates plus the window they came from, so a
// screen can tell the user when the current month was empty and the search
// widened.
type Result struct {
	Dates    []api.AvailabilityDate
	Start    time.Time
	End      time.Time
	Expanded bool
}

// Resolver turns (doctor, month index) into a sorted list of available dates.
type Resolver struct {
	fetcher Fetcher
	logger  *logging.Logger
	window  int
	now     func() time.Time
}

// NewResolver builds a Resolver with a window of months the picker may
// address. A window below 1 falls back to 6.
func NewResolver(fetcher Fetcher, logger *logging.Logger, window int) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	if window < 1 {
		window = 6
	}
	return &Resolver{
		fetcher: fetcher,
		logger:  logger,
		window:  window,
		now:     time.Now,
	}
}

// WithNow overrides the clock. Tests pin it to a fixed date.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Window returns the number of month indexes the resolver accepts.
func (r *Resolver) Window() int { return r.window }

// MonthOption is one entry of the month picker.
type MonthOption struct {
	Index int
	Label string
}

// Months lists the selectable months starting from the current one.
func (r *Resolver) Months() []MonthOption {
	now := r.now().UTC()
	opts := make([]MonthOption, 0, r.window)
	for i := 0; i < r.window; i++ {
		m := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		opts = append(opts, MonthOption{Index: i, Label: m.Format("January 2006")})
	}
	return opts
}

// monthWindow returns the [start, end] pair for a month index: the first day
// of that month through the last day of the same month, both at UTC midnight
// boundaries.
func (r *Resolver) monthWindow(index int) (time.Time, time.Time) {
	now := r.now().UTC()
	start := time.Date(now.Year(), now.Month()+time.Month(index), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month()+time.Month(index+1), 0, 23, 59, 59, 0, time.UTC)
	return start, end
}

// Resolve fetches availability for the given month index. Indexes outside
// the window clamp to its edges. When index 0 comes back empty the search
// widens through the end of next month; the widened result replaces the
// empty one only if it actually found something. Later indexes never widen:
// an empty month far out is an answer, not a gap to paper over.
func (r *Resolver) Resolve(ctx context.Context, doctorID string, monthIndex int) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "availability.Resolve",
		trace.WithAttributes(
			attribute.String("doctor.id", doctorID),
			attribute.Int("month.index", monthIndex),
		))
	defer span.End()

	if doctorID == "" {
		return nil, &api.ValidationError{Field: "doctorId", Message: "doctor is required"}
	}
	if monthIndex < 0 {
		monthIndex = 0
	}
	if monthIndex > r.window-1 {
		monthIndex = r.window - 1
	}

	start, end := r.monthWindow(monthIndex)
	dates, err := r.fetcher.Availability(ctx, doctorID, isoDate(start), isoDate(end))
	if err != nil {
		return nil, fmt.Errorf("availability: resolve month %d: %w", monthIndex, err)
	}

	result := &Result{Dates: dates, Start: start, End: end}
	if len(dates) == 0 && monthIndex == 0 {
		_, wideEnd := r.monthWindow(1)
		wider, err := r.fetcher.Availability(ctx, doctorID, isoDate(start), isoDate(wideEnd))
		if err != nil {
			return nil, fmt.Errorf("availability: widen month 0: %w", err)
		}
		if len(wider) > 0 {
			result = &Result{Dates: wider, Start: start, End: wideEnd, Expanded: true}
			r.logger.Info("availability window widened",
				slog.String("doctor_id", doctorID),
				slog.Int("dates", len(wider)))
		}
	}

	sortDates(result.Dates)
	span.SetAttributes(attribute.Int("dates.count", len(result.Dates)))
	return result, nil
}

// sortDates orders days ascending and, within each day, slots ascending by
// their timestamp.
func sortDates(dates []api.AvailabilityDate) {
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Date < dates[j].Date
	})
	for i := range dates {
		slots := dates[i].Slots
		sort.SliceStable(slots, func(a, b int) bool {
			return slots[a].Time < slots[b].Time
		})
	}
}

func isoDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermatrack/mobile-core/internal/api"
)

type fakeFetcher struct {
	calls   []windowCall
	results map[string][]api.AvailabilityDate
	err     error
}

type windowCall struct {
	doctorID string
	start    string
	end      string
}

func (f *fakeFetcher) Availability(_ context.Context, doctorID, start, end string) ([]api.AvailabilityDate, error) {
	f.calls = append(f.calls, windowCall{doctorID, start, end})
	if f.err != nil {
		return nil, f.err
	}
	return f.results[start+"|"+end], nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}

func day(date string, slots ...string) api.AvailabilityDate {
	d := api.AvailabilityDate{Date: date}
	for _, s := range slots {
		d.Slots = append(d.Slots, api.Slot{Time: s})
	}
	return d
}

func TestResolveCurrentMonthWindow(t *testing.T) {
	f := &fakeFetcher{results: map[string][]api.AvailabilityDate{
		"2024-06-01T00:00:00Z|2024-06-30T23:59:59Z": {day("2024-06-20", "2024-06-20T09:00:00Z")},
	}}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	res, err := r.Resolve(context.Background(), "doc_1", 0)
	require.NoError(t, err)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "2024-06-01T00:00:00Z", f.calls[0].start)
	assert.Equal(t, "2024-06-30T23:59:59Z", f.calls[0].end)
	assert.False(t, res.Expanded)
	require.Len(t, res.Dates, 1)
}

func TestResolveLaterMonthWindow(t *testing.T) {
	f := &fakeFetcher{}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	_, err := r.Resolve(context.Background(), "doc_1", 2)
	require.NoError(t, err)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "2024-08-01T00:00:00Z", f.calls[0].start)
	assert.Equal(t, "2024-08-31T23:59:59Z", f.calls[0].end)
}

func TestResolveYearRollover(t *testing.T) {
	f := &fakeFetcher{}
	r := NewResolver(f, nil, 6).WithNow(func() time.Time {
		return time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	})

	_, err := r.Resolve(context.Background(), "doc_1", 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01T00:00:00Z", f.calls[0].start)
	assert.Equal(t, "2025-02-28T23:59:59Z", f.calls[0].end)
}

func TestResolveEmptyCurrentMonthWidens(t *testing.T) {
	f := &fakeFetcher{results: map[string][]api.AvailabilityDate{
		"2024-06-01T00:00:00Z|2024-07-31T23:59:59Z": {day("2024-07-02", "2024-07-02T14:00:00Z")},
	}}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	res, err := r.Resolve(context.Background(), "doc_1", 0)
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	assert.Equal(t, "2024-07-31T23:59:59Z", f.calls[1].end)
	assert.True(t, res.Expanded)
	require.Len(t, res.Dates, 1)
	assert.Equal(t, "2024-07-02", res.Dates[0].Date)
}

func TestResolveEmptyWidenedStaysEmpty(t *testing.T) {
	f := &fakeFetcher{}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	res, err := r.Resolve(context.Background(), "doc_1", 0)
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	assert.False(t, res.Expanded)
	assert.Empty(t, res.Dates)
}

func TestResolveLaterMonthNeverWidens(t *testing.T) {
	f := &fakeFetcher{}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	res, err := r.Resolve(context.Background(), "doc_1", 1)
	require.NoError(t, err)
	require.Len(t, f.calls, 1)
	assert.False(t, res.Expanded)
	assert.Empty(t, res.Dates)
}

func TestResolveClampsIndex(t *testing.T) {
	f := &fakeFetcher{}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	_, err := r.Resolve(context.Background(), "doc_1", 99)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-01T00:00:00Z", f.calls[0].start)

	_, err = r.Resolve(context.Background(), "doc_1", -4)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T00:00:00Z", f.calls[1].start)
}

func TestResolveRequiresDoctor(t *testing.T) {
	r := NewResolver(&fakeFetcher{}, nil, 6).WithNow(fixedNow)
	_, err := r.Resolve(context.Background(), "", 0)
	assert.True(t, api.IsValidation(err))
}

func TestResolveSortsDatesAndSlots(t *testing.T) {
	f := &fakeFetcher{results: map[string][]api.AvailabilityDate{
		"2024-06-01T00:00:00Z|2024-06-30T23:59:59Z": {
			day("2024-06-25", "2024-06-25T16:00:00Z", "2024-06-25T09:00:00Z"),
			day("2024-06-18", "2024-06-18T10:00:00Z"),
		},
	}}
	r := NewResolver(f, nil, 6).WithNow(fixedNow)

	res, err := r.Resolve(context.Background(), "doc_1", 0)
	require.NoError(t, err)
	require.Len(t, res.Dates, 2)
	assert.Equal(t, "2024-06-18", res.Dates[0].Date)
	assert.Equal(t, "2024-06-25T09:00:00Z", res.Dates[1].Slots[0].Time)
	assert.Equal(t, "2024-06-25T16:00:00Z", res.Dates[1].Slots[1].Time)
}

func TestMonths(t *testing.T) {
	r := NewResolver(&fakeFetcher{}, nil, 3).WithNow(fixedNow)
	opts := r.Months()
	require.Len(t, opts, 3)
	assert.Equal(t, "June 2024", opts[0].Label)
	assert.Equal(t, "August 2024", opts[2].Label)
	assert.Equal(t, 2, opts[2].Index)
}

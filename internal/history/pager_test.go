package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermatrack/mobile-core/internal/api"
)

type fakeSource struct {
	cases      []api.CaseSummary
	pageCalls  []int
	deletedIDs []string
	err        error
}

func (f *fakeSource) History(_ context.Context, page, limit int) (*api.HistoryPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.pageCalls = append(f.pageCalls, page)
	start := (page - 1) * limit
	end := start + limit
	if start > len(f.cases) {
		start = len(f.cases)
	}
	if end > len(f.cases) {
		end = len(f.cases)
	}
	pages := (len(f.cases) + limit - 1) / limit
	return &api.HistoryPage{
		History:    f.cases[start:end],
		Pagination: api.Pagination{Page: page, Limit: limit, Total: len(f.cases), Pages: pages},
	}, nil
}

func (f *fakeSource) DeleteCase(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	kept := f.cases[:0]
	for _, c := range f.cases {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.cases = kept
	return nil
}

func seedCases(n int) []api.CaseSummary {
	out := make([]api.CaseSummary, n)
	for i := range out {
		out[i] = api.CaseSummary{ID: fmt.Sprintf("case_%d", i+1), RiskLevel: api.RiskLow, Status: api.CaseOpen}
	}
	return out
}

func TestRefreshLoadsFirstPage(t *testing.T) {
	f := &fakeSource{cases: seedCases(25)}
	p := NewPager(f, nil, 10)

	require.NoError(t, p.Refresh(context.Background()))
	assert.Len(t, p.Cases(), 10)
	assert.Equal(t, 25, p.Total())
	assert.True(t, p.HasMore())
}

func TestLoadMoreAppends(t *testing.T) {
	f := &fakeSource{cases: seedCases(25)}
	p := NewPager(f, nil, 10)
	require.NoError(t, p.Refresh(context.Background()))

	require.NoError(t, p.LoadMore(context.Background()))
	assert.Len(t, p.Cases(), 20)
	assert.True(t, p.HasMore())

	require.NoError(t, p.LoadMore(context.Background()))
	cases := p.Cases()
	assert.Len(t, cases, 25)
	assert.False(t, p.HasMore())
	assert.Equal(t, "case_25", cases[24].ID)

	// Exhausted: no further fetch happens.
	require.NoError(t, p.LoadMore(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, f.pageCalls)
}

func TestRefreshResetsAccumulation(t *testing.T) {
	f := &fakeSource{cases: seedCases(25)}
	p := NewPager(f, nil, 10)
	require.NoError(t, p.Refresh(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))
	require.Len(t, p.Cases(), 20)

	require.NoError(t, p.Refresh(context.Background()))
	assert.Len(t, p.Cases(), 10)
	assert.Equal(t, "case_1", p.Cases()[0].ID)
}

func TestDeleteRefetchesFromPageOne(t *testing.T) {
	f := &fakeSource{cases: seedCases(12)}
	p := NewPager(f, nil, 10)
	require.NoError(t, p.Refresh(context.Background()))

	require.NoError(t, p.Delete(context.Background(), "case_3"))
	assert.Equal(t, []string{"case_3"}, f.deletedIDs)
	assert.Equal(t, 11, p.Total())
	for _, c := range p.Cases() {
		assert.NotEqual(t, "case_3", c.ID)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	p := NewPager(&fakeSource{}, nil, 10)
	err := p.Delete(context.Background(), "")
	assert.True(t, api.IsValidation(err))
}

func TestLoadErrorLeavesStateIntact(t *testing.T) {
	f := &fakeSource{cases: seedCases(5)}
	p := NewPager(f, nil, 10)
	require.NoError(t, p.Refresh(context.Background()))

	f.err = &api.APIError{StatusCode: 500, Message: "boom"}
	require.Error(t, p.Refresh(context.Background()))
	assert.Len(t, p.Cases(), 5)
}

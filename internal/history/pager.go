// Package history drives the scan-history screen: an infinite-scroll list
// of lesion cases with pull-to-refresh and case deletion.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dermatrack/mobile-core/internal/api"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

// Source is the slice of the API client the pager needs.
type Source interface {
	History(ctx context.Context, page, limit int) (*api.HistoryPage, error)
	DeleteCase(ctx context.Context, caseID string) error
}

// Pager accumulates pages of cases. LoadMore appends; Refresh starts over
// from page one. All methods are safe for concurrent use.
type Pager struct {
	source   Source
	logger   *logging.Logger
	pageSize int

	mu      sync.Mutex
	cases   []api.CaseSummary
	page    int
	pages   int
	total   int
	loading bool
}

func NewPager(source Source, logger *logging.Logger, pageSize int) *Pager {
	if logger == nil {
		logger = logging.Default()
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return &Pager{source: source, logger: logger, pageSize: pageSize}
}

// Cases returns a copy of everything loaded so far.
func (p *Pager) Cases() []api.CaseSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]api.CaseSummary, len(p.cases))
	copy(out, p.cases)
	return out
}

// Total reports the server-side case count from the last page fetched.
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// HasMore reports whether another page exists.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page < p.pages
}

// Refresh drops the accumulated list and fetches page one.
func (p *Pager) Refresh(ctx context.Context) error {
	return p.load(ctx, true)
}

// LoadMore fetches the next page and appends it. It is a no-op when the
// last page is already loaded or a load is in flight, so a scroll handler
// can call it freely.
func (p *Pager) LoadMore(ctx context.Context) error {
	return p.load(ctx, false)
}

func (p *Pager) load(ctx context.Context, reset bool) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	next := p.page + 1
	if reset {
		next = 1
	} else if p.pages > 0 && p.page >= p.pages {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.mu.Unlock()

	hp, err := p.source.History(ctx, next, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return fmt.Errorf("history: load page %d: %w", next, err)
	}
	if reset {
		p.cases = nil
	}
	p.cases = append(p.cases, hp.History...)
	p.page = hp.Pagination.Page
	p.pages = hp.Pagination.Pages
	p.total = hp.Pagination.Total
	return nil
}

// Delete removes a case server-side and then refreshes from page one. The
// refetch keeps counts and page boundaries consistent instead of splicing
// the local slice.
func (p *Pager) Delete(ctx context.Context, caseID string) error {
	if caseID == "" {
		return &api.ValidationError{Field: "caseId", Message: "case is required"}
	}
	if err := p.source.DeleteCase(ctx, caseID); err != nil {
		return fmt.Errorf("history: delete case %s: %w", caseID, err)
	}
	p.logger.Info("case deleted", slog.String("case_id", caseID))
	return p.Refresh(ctx)
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// History fetches one page of lesion case history.
func (c *Client) History(ctx context.Context, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out HistoryPage
	err := c.do(ctx, http.MethodGet, "/api/mobile/user/history", query, nil, &out, "Failed to load history")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CaseDetail fetches the full case/result record.
func (c *Client) CaseDetail(ctx context.Context, caseID string) (*CaseDetail, error) {
	if caseID == "" {
		return nil, &ValidationError{Field: "caseId", Message: "case id is required"}
	}
	var out CaseDetail
	err := c.do(ctx, http.MethodGet, "/api/mobile/result/"+caseID, nil, nil, &out, "Failed to load case")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCase removes a case. Callers confirm with the user first.
func (c *Client) DeleteCase(ctx context.Context, caseID string) error {
	if caseID == "" {
		return &ValidationError{Field: "caseId", Message: "case id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/api/mobile/result/"+caseID, nil, nil, nil, "Failed to delete case")
}

// Dashboard fetches the home screen payload.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, http.MethodGet, "/api/mobile/user/dashboard", nil, nil, &out, "Failed to load dashboard")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

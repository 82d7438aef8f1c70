package worklog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worklog-insights/internal/jira"

	"github.com/rs/zerolog/log"
)

// FetchOptions tunes paging against the tracker.
type FetchOptions struct {
	PageSize     int
	PageDelay    time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultFetchOptions mirrors the tracker's courtesy limits.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		PageSize:     100,
		PageDelay:    100 * time.Millisecond,
		MaxRetries:   2,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// Fetcher pulls every page matching a query into memory. It keeps no state
// between calls and can be shared by concurrent reports.
type Fetcher struct {
	client jira.Client
	opts   FetchOptions
}

// NewFetcher wraps client, filling unset options with defaults.
func NewFetcher(client jira.Client, opts FetchOptions) *Fetcher {
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 500 * time.Millisecond
	}
	return &Fetcher{client: client, opts: opts}
}

// Fetch returns all issues matching q with their worklogs. Any failed page
// aborts the whole fetch; partial results are never returned.
func (f *Fetcher) Fetch(ctx context.Context, q Query) ([]jira.Issue, error) {
	var dtos []jira.IssueDTO
	totalFetched := 0
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := f.searchPage(ctx, q, totalFetched)
		if err != nil {
			return nil, fmt.Errorf("worklog fetch failed at offset %d: %w", totalFetched, err)
		}
		pages++

		if len(resp.Issues) == 0 {
			break
		}

		dtos = append(dtos, resp.Issues...)
		totalFetched += len(resp.Issues)

		if totalFetched >= resp.Total {
			break
		}

		if err := sleep(ctx, f.opts.PageDelay); err != nil {
			return nil, err
		}
	}

	issues := make([]jira.Issue, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Fields.Worklog.Truncated() {
			wls, err := f.client.GetIssueWorklogs(ctx, dto.Key)
			if err != nil {
				return nil, fmt.Errorf("worklog fetch failed for %s: %w", dto.Key, err)
			}
			dto.Fields.Worklog.Worklogs = wls
		}
		issues = append(issues, jira.MapIssue(dto))
	}

	log.Info().Int("issues", len(issues)).Int("pages", pages).Msg("Worklog fetch complete")
	return issues, nil
}

func (f *Fetcher) searchPage(ctx context.Context, q Query, startAt int) (*jira.SearchResponse, error) {
	req := jira.SearchRequest{
		JQL:        q.JQL,
		Fields:     q.Fields,
		Expand:     q.Expand,
		StartAt:    startAt,
		MaxResults: f.opts.PageSize,
	}

	for attempt := 0; ; attempt++ {
		resp, err := f.client.SearchIssues(ctx, req)
		if err == nil {
			return resp, nil
		}

		var upErr *jira.UpstreamFetchError
		if !errors.As(err, &upErr) || !upErr.RateLimited() || attempt >= f.opts.MaxRetries {
			return nil, err
		}

		wait := upErr.RetryAfter
		if wait <= 0 {
			wait = f.opts.RetryBackoff << attempt
		}
		log.Warn().Int("attempt", attempt+1).Dur("wait", wait).Int("startAt", startAt).Msg("Jira rate limit hit, backing off")
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

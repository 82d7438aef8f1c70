package jira

import (
	"fmt"
	"net/http"
	"time"
)

// UpstreamFetchError is returned when Jira answers with a non-success status.
// A report that hits one is aborted; nothing fetched before it is returned.
type UpstreamFetchError struct {
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("Jira API error: %d - %s", e.Status, e.Message)
}

// RateLimited reports whether the request was rejected with 429.
func (e *UpstreamFetchError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

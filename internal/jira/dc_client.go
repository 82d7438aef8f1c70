package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type dcClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewDataCenterClient(cfg Config) Client {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 90 * time.Second
	}
	return &dcClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *dcClient) authenticateRequest(req *http.Request) {
	// 1. Cloud style basic auth
	if c.cfg.Username != "" && c.cfg.Token != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.Username + ":" + c.cfg.Token))
		req.Header.Set("Authorization", "Basic "+creds)
		return
	}

	// 2. Personal Access Token (PAT)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
		return
	}

	// 3. Fallback to session cookies
	cookies := []struct {
		name  string
		value string
	}{
		{"atlassian.xsrf.token", c.cfg.XsrfToken},
		{"JSESSIONID", c.cfg.SessionID},
		{"seraph.rememberme.cookie", c.cfg.RememberMe},
		{"GCILB", c.cfg.GCILB},
		{"GCLB", c.cfg.GCLB},
	}

	var cookiePairs []string
	for _, cookie := range cookies {
		if cookie.value != "" {
			// Built by hand: net/http's RFC 6265 validation drops GCLB values with quotes.
			cookiePairs = append(cookiePairs, fmt.Sprintf("%s=%s", cookie.name, cookie.value))
		}
	}

	if len(cookiePairs) > 0 {
		req.Header.Set("Cookie", strings.Join(cookiePairs, "; "))
	}
}

func (c *dcClient) SearchIssues(ctx context.Context, sr SearchRequest) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("jql", sr.JQL)
	params.Set("startAt", strconv.Itoa(sr.StartAt))
	params.Set("maxResults", strconv.Itoa(sr.MaxResults))
	if len(sr.Fields) > 0 {
		params.Set("fields", strings.Join(sr.Fields, ","))
	}
	if len(sr.Expand) > 0 {
		params.Set("expand", strings.Join(sr.Expand, ","))
	}

	searchURL := fmt.Sprintf("%s/rest/api/2/search?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())
	log.Debug().Str("jql", sr.JQL).Int("startAt", sr.StartAt).Int("maxResults", sr.MaxResults).Msg("Requesting issues from Jira")

	var result SearchResponse
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *dcClient) GetIssueWorklogs(ctx context.Context, issueKey string) ([]WorklogDTO, error) {
	worklogURL := fmt.Sprintf("%s/rest/api/2/issue/%s/worklog", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(issueKey))
	log.Debug().Str("issue", issueKey).Msg("Requesting full worklog list")

	var page WorklogPageDTO
	if err := c.getJSON(ctx, worklogURL, &page); err != nil {
		return nil, err
	}
	return page.Worklogs, nil
}

func (c *dcClient) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Jira response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	upErr := &UpstreamFetchError{Status: resp.StatusCode, Message: resp.Status}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		upErr.Message = "authentication failed, check JIRA_USERNAME/JIRA_TOKEN or session cookies"
	case http.StatusTooManyRequests:
		upErr.Message = "rate limit exceeded"
		if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs > 0 {
			upErr.RetryAfter = time.Duration(secs) * time.Second
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			upErr.Message = msg
		} else if text := http.StatusText(resp.StatusCode); text != "" {
			upErr.Message = text
		}
	}

	return upErr
}

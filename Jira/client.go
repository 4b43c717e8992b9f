package Jira

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"timecop/Config"
)

// User is a tracking-service account as returned by the user search endpoint.
type User struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Worklog is a single Tempo worklog entry. Only the duration matters here;
// the date range is filtered server-side by the query.
type Worklog struct {
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment,omitempty"`
	IssueKey         string `json:"issueKey,omitempty"`
}

// RemoteError reports a failed call against the tracking service: either a
// non-2xx response or a body that did not parse as JSON.
type RemoteError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jira request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("jira request to %s failed with status %d", e.Endpoint, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Client talks to a Jira instance with the Tempo timesheets plugin.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	MaxResults int
	httpClient *http.Client
}

// NewClient creates a client from config. BaseURL is expected to end with a slash.
func NewClient(cfg Config.Config) *Client {
	return &Client{
		BaseURL:    cfg.JiraURL,
		Username:   cfg.JiraUsername,
		Password:   cfg.JiraPassword,
		MaxResults: 1000,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListUsers fetches up to MaxResults users matching the given filter.
func (c *Client) ListUsers(filter string) ([]User, error) {
	endpoint := fmt.Sprintf("rest/api/2/user/search?startAt=0&maxResults=%d&username=%s",
		c.MaxResults, url.QueryEscape(filter))

	var users []User
	if err := c.get(endpoint, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchWorklogs fetches a user's worklogs between dateFrom and dateTo
// (inclusive, yyyy-mm-dd).
func (c *Client) FetchWorklogs(username, dateFrom, dateTo string) ([]Worklog, error) {
	endpoint := fmt.Sprintf("rest/tempo-timesheets/3/worklogs/?dateFrom=%s&dateTo=%s&username=%s",
		dateFrom, dateTo, url.QueryEscape(username))

	var worklogs []Worklog
	if err := c.get(endpoint, &worklogs); err != nil {
		return nil, err
	}
	return worklogs, nil
}

// get issues an authenticated GET against BaseURL+endpoint and decodes the
// JSON response into out.
func (c *Client) get(endpoint string, out interface{}) error {
	req, err := http.NewRequest("GET", c.BaseURL+endpoint, nil)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: err}
	}

	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: fmt.Errorf("error reading response: %v", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteError{Endpoint: endpoint, Err: fmt.Errorf("error unmarshaling response: %v", err)}
	}

	return nil
}

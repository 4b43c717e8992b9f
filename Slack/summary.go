package Slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"timecop/Report"
)

// Client posts messages through the Slack Web API.
// Required bot token scope: chat:write.
type Client struct {
	Token   string
	BaseURL string
	Channel string
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewClient creates a Slack client posting run summaries to one channel.
func NewClient(token, channel string) *Client {
	return &Client{
		Token:   token,
		BaseURL: "https://slack.com/api",
		Channel: channel,
	}
}

// PostSummary sends a one-message recap of a completed compliance run.
func (c *Client) PostSummary(summary Report.RunSummary) error {
	var text string
	if summary.Skipped {
		text = fmt.Sprintf("Timecop: skipped run on %s (weekend window)",
			summary.StartedAt.Format("2006-01-02"))
	} else {
		text = fmt.Sprintf("Timecop report for %s: %d users checked, %d tracked all their time, %d reminded",
			summary.Window, summary.Evaluated, summary.Compliant, summary.Reminded)
	}

	return c.postMessage(text)
}

func (c *Client) postMessage(text string) error {
	payload := postMessageRequest{
		Channel: c.Channel,
		Text:    text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/chat.postMessage", c.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	var slackResp postMessageResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("error unmarshaling response: %v", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}

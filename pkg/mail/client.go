package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client sends transactional email through an HTTP mail API
type Client struct {
	apiURL string
	apiKey string
	from   string
	logger *logrus.Logger
	client *http.Client
}

// NewClient creates a new mail client
func NewClient(apiURL, apiKey, from string, logger *logrus.Logger) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		logger: logger,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Send delivers a single HTML email. Returns an error if the provider
// rejects the message or is unreachable.
func (c *Client) Send(to, subject, htmlBody string) error {
	payload := sendRequest{
		From:     c.from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mail response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, body)
	}

	var result sendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse mail response: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("mail provider error: %s", result.Error)
	}

	c.logger.WithFields(logrus.Fields{
		"to":         to,
		"subject":    subject,
		"message_id": result.MessageID,
	}).Debug("Email sent")

	return nil
}

package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nerrad567/vacbridge/internal/infrastructure/config"
)

// Client is a token-authenticated client for the vendor's REST API.
//
// Thread Safety:
//   - All methods are safe for concurrent use; the underlying http.Client
//     handles connection pooling.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// defaultRequestTimeout applies when cloud.timeout is unset.
const defaultRequestTimeout = 15 * time.Second

// New creates a client from cloud configuration.
func New(cfg config.CloudConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Devices lists all robots registered to the account.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var out struct {
		Devices []Device `json:"devices"`
	}
	if err := c.get(ctx, "/v1/devices", &out); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// Status fetches the current full status document for one device.
func (c *Client) Status(ctx context.Context, deviceID string) (Status, error) {
	var st Status
	if err := c.get(ctx, "/v1/devices/"+deviceID+"/status", &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// Send issues a command to a device. A nil error means the vendor accepted
// the command, not that the device has finished executing it.
func (c *Client) Send(ctx context.Context, deviceID string, cmd Command) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/devices/"+deviceID+"/commands", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, true)
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, false); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return resp, nil
}

// checkStatus maps HTTP status codes to sentinel errors. The response body
// of a failed request may carry a vendor message; it is folded into the
// error text but never parsed further.
func (c *Client) checkStatus(resp *http.Response, command bool) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, msg)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if command {
			return fmt.Errorf("%w: %s", ErrCommandRejected, msg)
		}
	}
	return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, msg)
}

// readErrorMessage extracts the vendor's error text from a failed response.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return string(data)
}

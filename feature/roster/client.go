package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Sentinel errors for the fetch taxonomy. A fetch fails only on transport or
// decoding problems, never on a single malformed entry.
var (
	// ErrTimeout indicates the endpoint did not answer within the timeout.
	ErrTimeout = errors.New("roster request timed out")

	// ErrConnection indicates the endpoint could not be reached.
	ErrConnection = errors.New("roster connection failed")

	// ErrMalformedPayload indicates the response body is not JSON, or its
	// top-level shape is unusable.
	ErrMalformedPayload = errors.New("roster payload malformed")
)

// StatusError reports a non-200 response from the roster endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("roster endpoint returned status %d", e.Code)
}

// Client fetches the remote roster and normalizes it into canonical server
// records. Results are derived fresh on every fetch, never cached.
type Client struct {
	http   *http.Client
	url    string
	logger *zap.Logger
}

// NewClient creates a roster client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
		logger: logger,
	}
}

// Fetch retrieves the roster and returns canonical records.
func (c *Client) Fetch(ctx context.Context) ([]Server, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}

	c.logger.Info("Fetching server roster", zap.String("url", c.url))

	res, err := c.http.Do(req)
	if err != nil {
		var nerr net.Error
		if (errors.As(err, &nerr) && nerr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Error("Roster endpoint rejected request", zap.Int("status", res.StatusCode))
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedPayload)
	}

	servers, err := normalize(gjson.ParseBytes(body), c.logger)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Roster fetched", zap.Int("servers", len(servers)))
	return servers, nil
}

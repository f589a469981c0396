// Package scoreapi is the HTTP client the scoring device uses to talk to
// the aggregation API. It implements the submitter contract of the live
// session controller.
package scoreapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/StNick/squash-team-challenge/internal/platform/logging"
	"github.com/StNick/squash-team-challenge/internal/platform/resilience"
)

var errTransient = crerr.New("score api transient failure")

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	client         *http.Client
	baseURL        string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func New(cfg Config, logger *logging.Logger) (*Client, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid score api base url")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client:         &http.Client{Timeout: timeout},
		baseURL:        baseURL,
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

type submitScoreRequest struct {
	ScoreA int `json:"scoreA"`
	ScoreB int `json:"scoreB"`
}

// SubmitScore posts the final raw scores for a match. Transient failures
// (network, 5xx) are retried; rejections come back with the server's
// message so the operator can read them directly.
func (c *Client) SubmitScore(ctx context.Context, matchID int64, scoreA, scoreB int) error {
	path := "/v1/matches/" + strconv.FormatInt(matchID, 10) + "/score"
	body, err := sonic.Marshal(submitScoreRequest{ScoreA: scoreA, ScoreB: scoreB})
	if err != nil {
		return crerr.Wrap(err, "marshal score submission")
	}
	_, err = c.call(ctx, http.MethodPost, path, body)
	return err
}

// Suggestion mirrors the suggested-handicap payload of the API.
type Suggestion struct {
	Suggested int `json:"suggestedHandicap"`
	LevelA    int `json:"levelA"`
	LevelB    int `json:"levelB"`
}

func (c *Client) SuggestedHandicap(ctx context.Context, matchID int64) (Suggestion, error) {
	path := "/v1/matches/" + strconv.FormatInt(matchID, 10) + "/suggested-handicap"
	payload, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Suggestion{}, err
	}

	var envelope struct {
		Data Suggestion `json:"data"`
	}
	if err := sonic.Unmarshal(payload, &envelope); err != nil {
		return Suggestion{}, crerr.Wrap(err, "decode suggested handicap response")
	}
	return envelope.Data, nil
}

// call runs one request with retries on transient failures. The returned
// bytes are the full response body of the successful attempt.
func (c *Client) call(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	attempts := c.retries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		payload, err := c.callOnce(ctx, method, path, body)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) {
			return nil, err
		}
		c.logger.WarnContext(ctx, "score api attempt failed",
			"method", method, "path", path, "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func (c *Client) callOnce(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score api circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Wrap(err, "score api is temporarily unavailable")
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "create score api request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		callErr := crerr.Wrapf(errTransient, "call score api %s %s: %v", method, path, err)
		c.recordCircuitResult(callErr)
		return nil, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, 1<<20)); err != nil {
		callErr := crerr.Wrapf(errTransient, "read score api response %s %s: %v", method, path, err)
		c.recordCircuitResult(callErr)
		return nil, callErr
	}

	if resp.StatusCode/100 != 2 {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			callErr := crerr.Wrapf(errTransient, "score api status %d on %s %s: %s",
				resp.StatusCode, method, path, responseMessage(buf.Bytes()))
			c.recordCircuitResult(callErr)
			return nil, callErr
		}
		c.recordCircuitResult(nil)
		return nil, crerr.Newf("%s", responseMessage(buf.Bytes()))
	}

	c.recordCircuitResult(nil)
	payload := make([]byte, buf.Len())
	copy(payload, buf.Bytes())
	return payload, nil
}

// responseMessage digs the human-readable message out of the API's error
// envelope and falls back to the raw body.
func responseMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Error.Message) != "" {
		return envelope.Error.Message
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "score api request rejected"
	}
	return trimmed
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

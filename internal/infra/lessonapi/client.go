// Package lessonapi is a client for the remote REST lesson service.
package lessonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/lessondata"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("lesson api: status %d", e.Code)
	}
	return fmt.Sprintf("lesson api: status %d: %s", e.Code, e.Body)
}

// Config holds client settings.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration // initial backoff delay
}

// Client fetches lessons and submits results. Every call runs through a
// retrier for transient failures, inside a circuit breaker.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *zap.Logger

	breaker circuitbreaker.CircuitBreaker[[]byte]
	retrier retry.Retry[[]byte]
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = 3
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	c := &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}

	c.breaker = circuitbreaker.New[[]byte](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			logger.Warn("lesson api circuit breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	c.retrier = retry.New[[]byte](retry.Config{
		MaxAttempts:   attempts,
		InitialDelay:  delay,
		MaxDelay:      10 * time.Second,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable:   isRetryable,
	})

	return c, nil
}

// ListLessons returns the lesson headers of a topic, or of every topic when
// topicID is empty.
func (c *Client) ListLessons(ctx context.Context, topicID string) ([]entities.LessonHeader, error) {
	q := url.Values{}
	if topicID != "" {
		q.Set("topic_id", topicID)
	}

	body, err := c.do(ctx, http.MethodGet, q, nil, "lessons")
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	var payload []lessondata.LessonHeaderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}

	headers := make([]entities.LessonHeader, len(payload))
	for i, p := range payload {
		headers[i] = lessondata.ToHeader(p)
	}
	return headers, nil
}

// GetLesson fetches a full lesson. Malformed exercises are kept and logged.
func (c *Client) GetLesson(ctx context.Context, lessonID string) (entities.Lesson, error) {
	if !validSegment(lessonID) {
		return entities.Lesson{}, fmt.Errorf("get lesson %q: %w", lessonID, entities.ErrLessonNotFound)
	}

	body, err := c.do(ctx, http.MethodGet, nil, nil, "lessons", lessonID)
	if err != nil {
		return entities.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}

	var payload lessondata.LessonPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return entities.Lesson{}, fmt.Errorf("decode lesson: %w", err)
	}

	lesson, warnings := lessondata.ToLesson(payload)
	for _, w := range warnings {
		c.logger.Warn("malformed exercise in lesson payload",
			zap.String("lesson_id", lessonID),
			zap.Error(w),
		)
	}
	return lesson, nil
}

// SubmitResults posts the summary of a finished attempt.
func (c *Client) SubmitResults(ctx context.Context, attempt *entities.LessonAttempt) error {
	payload, err := json.Marshal(lessondata.FromSummary(attempt))
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if !validSegment(attempt.LessonID) {
		return fmt.Errorf("submit results: invalid lesson id %q", attempt.LessonID)
	}

	if _, err := c.do(ctx, http.MethodPost, nil, payload, "lessons", attempt.LessonID, "results"); err != nil {
		return fmt.Errorf("submit results: %w", err)
	}
	return nil
}

// do sends a request to the base URL followed by segments, each escaped as a
// single path segment.
func (c *Client) do(ctx context.Context, method string, query url.Values, payload []byte, segments ...string) ([]byte, error) {
	u := *c.baseURL
	raw := c.baseURL.EscapedPath()
	for _, seg := range segments {
		u.Path += "/" + seg
		raw += "/" + url.PathEscape(seg)
	}
	u.RawPath = raw
	u.RawQuery = query.Encode()

	op := func(ctx context.Context) ([]byte, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %w", entities.ErrLessonNotFound, &StatusError{Code: resp.StatusCode})
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
		return data, nil
	}

	// 4xx responses other than 429 go to the caller without counting as
	// breaker failures.
	var clientErr error
	data, err := c.breaker.Execute(ctx, func(ctx context.Context) ([]byte, error) {
		data, err := c.retrier.Do(ctx, op)
		if isClientError(err) {
			clientErr = err
			return nil, nil
		}
		return data, err
	})
	if clientErr != nil {
		return nil, clientErr
	}
	return data, err
}

// validSegment rejects ids that would be resolved as relative path segments.
func validSegment(s string) bool {
	return s != "" && s != "." && s != ".."
}

// isClientError reports whether err is a 4xx response other than throttling.
func isClientError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
}

// isRetryable reports whether err is a throttling or server-side failure.
func isRetryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

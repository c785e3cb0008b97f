// Package cloudflare implements a read-only client for the Cloudflare v4
// REST API.  It covers the endpoints the agent collects from, unwraps the
// standard response envelope, follows page-number and cursor pagination and
// retries transient transport failures with exponential backoff.
package cloudflare

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public v4 API endpoint.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

const (
	perPage     = 50
	maxItems    = 1000
	maxAttempts = 3
	maxWait     = 10 * time.Second
)

// errAbsent marks responses that are treated as "no data" rather than
// failures: 404/405, success:false envelopes and optional endpoints
// answering 400.
var errAbsent = errors.New("no data for endpoint")

// APIMessage is a single error or informational message from the response
// envelope.
type APIMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type resultInfo struct {
	Cursor string `json:"cursor"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Errors     []APIMessage    `json:"errors"`
	Result     json.RawMessage `json:"result"`
	ResultInfo *resultInfo     `json:"result_info"`
}

// Config for the API client.  Either APIToken or Email+APIKey must be set.
type Config struct {
	BaseURL  string
	Email    string
	APIKey   string
	APIToken string
	// Timeout applies per API call, not to a whole collection run.
	Timeout time.Duration
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// Client issues authenticated GET requests against the Cloudflare API.
type Client struct {
	baseURL    string
	email      string
	apiKey     string
	apiToken   string
	timeout    time.Duration
	httpClient *http.Client
	logger     log.FieldLogger

	// Initial backoff delay, shortened in tests.
	retryWait time.Duration
}

// NewClient returns a client for the given config, filling in defaults for
// anything unset.
func NewClient(conf Config) *Client {
	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := conf.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		email:      conf.Email,
		apiKey:     conf.APIKey,
		apiToken:   conf.APIToken,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     log.WithField("component", "cloudflare-client"),
		retryWait:  time.Second,
	}
}

func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
		return
	}
	req.Header.Set("X-Auth-Email", c.email)
	req.Header.Set("X-Auth-Key", c.apiKey)
}

// get fetches one URL, retrying transport-level failures.  API-level
// failures (bad status, success:false) are never retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, silent bool) (*envelope, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var lastErr error
	wait := c.retryWait
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if wait *= 2; wait > maxWait {
				wait = maxWait
			}
		}

		env, retriable, err := c.getOnce(ctx, fullURL, silent)
		if err == nil || !retriable {
			return env, err
		}
		lastErr = err
		c.logger.WithError(err).WithField("url", fullURL).Debug("Retrying Cloudflare API call")
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, fullURL string, silent bool) (*envelope, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequest("GET", fullURL, nil)
	if err != nil {
		return nil, false, errors.Wrapf(err, "could not build request for %s", fullURL)
	}
	req = req.WithContext(reqCtx)
	c.setAuth(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrapf(err, "could not get %s", fullURL)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusMethodNotAllowed:
		return nil, false, errAbsent
	case res.StatusCode == http.StatusBadRequest && silent:
		return nil, false, errAbsent
	case res.StatusCode >= 500:
		return nil, true, errors.Errorf("received status %s from %s", res.Status, fullURL)
	case res.StatusCode != http.StatusOK:
		body, _ := ioutil.ReadAll(res.Body)
		return nil, false, errors.Errorf("received status %s from %s: %s", res.Status, fullURL, string(body))
	}

	env := &envelope{}
	if err := json.NewDecoder(res.Body).Decode(env); err != nil {
		return nil, false, errors.Wrapf(err, "could not decode response from %s", fullURL)
	}
	if !env.Success {
		if silent {
			c.logger.WithField("errors", env.Errors).Debug("Cloudflare API error (silent)")
		} else {
			c.logger.WithField("errors", env.Errors).Error("Cloudflare API error")
		}
		return nil, false, errAbsent
	}
	return env, false, nil
}

// getResult fetches a single-object endpoint into out.  The bool reports
// whether the endpoint actually had data; absent data is not an error.
func (c *Client) getResult(ctx context.Context, path string, query url.Values, silent bool, out interface{}) (bool, error) {
	env, err := c.get(ctx, path, query, silent)
	if err == errAbsent {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return false, errors.Wrapf(err, "unexpected result shape from %s", path)
	}
	return true, nil
}

// forEachPage walks a page-number paginated collection.  decode receives the
// raw result array of one page and reports how many items it held; iteration
// stops on a short page or once maxItems have been seen.
func (c *Client) forEachPage(ctx context.Context, path string, query url.Values, decode func(result json.RawMessage) (int, error)) error {
	total := 0
	for page := 1; total < maxItems; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))

		env, err := c.get(ctx, path, q, false)
		if err == errAbsent {
			return nil
		}
		if err != nil {
			return err
		}
		n, err := decode(env.Result)
		if err != nil {
			return errors.Wrapf(err, "unexpected result shape from %s", path)
		}
		if n < perPage {
			return nil
		}
		total += n
	}
	return nil
}

// forEachCursor walks a cursor paginated collection (the physical devices
// endpoint) until the API stops handing back a cursor.
func (c *Client) forEachCursor(ctx context.Context, path string, decode func(result json.RawMessage) (int, error)) error {
	cursor := ""
	for {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(perPage))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		env, err := c.get(ctx, path, q, false)
		if err == errAbsent {
			return nil
		}
		if err != nil {
			return err
		}
		n, err := decode(env.Result)
		if err != nil {
			return errors.Wrapf(err, "unexpected result shape from %s", path)
		}
		if n == 0 || env.ResultInfo == nil || env.ResultInfo.Cursor == "" {
			return nil
		}
		cursor = env.ResultInfo.Cursor
	}
}

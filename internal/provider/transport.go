package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/metrics"
)

// Transport performs authenticated JSON calls against one provider's REST API
// behind a circuit breaker.
type Transport struct {
	provider string
	baseURL  string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewTransport creates a transport for provider rooted at baseURL. client may be nil.
func NewTransport(providerName, baseURL string, client *http.Client) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &Transport{
		provider: providerName,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker(breakerSettings(providerName)),
	}
}

func breakerSettings(providerName string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        providerName,
		MaxRequests: BreakerMaxRequests,
		Interval:    BreakerInterval,
		Timeout:     BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < BreakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.ProviderBreakerChanges.WithLabelValues(name, to.String()).Inc()
			logger.FromContext(context.Background()).Warn(LogMsgBreakerStateChanged,
				"provider", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
	}
}

// Provider returns the provider name this transport serves
func (t *Transport) Provider() string {
	return t.provider
}

// GetJSON issues an authenticated GET for path with query and decodes the body into out
func (t *Transport) GetJSON(ctx context.Context, accessToken, path string, query url.Values, out interface{}) error {
	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBuildRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	return t.do(ctx, t.bearerClient(ctx, accessToken), req, out)
}

// PostForm issues a form POST to an absolute URL using client credentials in the
// Authorization header. It is used for token revocation.
func (t *Transport) PostForm(ctx context.Context, endpoint string, form url.Values, clientID, clientSecret string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBuildRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if clientID != "" {
		req.SetBasicAuth(url.QueryEscape(clientID), url.QueryEscape(clientSecret))
	}

	return t.do(ctx, t.client, req, nil)
}

func (t *Transport) bearerClient(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, t.client)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

func (t *Transport) do(ctx context.Context, client *http.Client, req *http.Request, out interface{}) error {
	_, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues(t.provider, StatusLabelTransportError).Inc()
			return nil, fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
		}
		defer resp.Body.Close()

		metrics.ProviderRequestsTotal.WithLabelValues(t.provider, strconv.Itoa(resp.StatusCode)).Inc()

		if err := CheckStatus(t.provider, resp); err != nil {
			return nil, err
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgDecodeFailed, err)
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.FromContext(ctx).Warn(ErrMsgCircuitOpen, "provider", t.provider)
		return fmt.Errorf("%w: %s: %s: %w", domain.ErrProviderAPI, t.provider, ErrMsgCircuitOpen, err)
	}
	return err
}

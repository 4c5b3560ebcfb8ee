package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// CheckStatus maps a provider response status to the sync error taxonomy.
// 401 and 429 are the only statuses callers special-case; every other
// non-2xx becomes a *domain.ProviderAPIError carrying the body text.
func CheckStatus(providerName string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrAuthenticationExpired, providerName)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, providerName)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &domain.ProviderAPIError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// countsAsFailure decides what trips the circuit breaker: transport errors and
// provider 5xx. Auth, rate-limit and other 4xx answers mean the provider is up.
func countsAsFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *domain.ProviderAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return !domain.IsFatalSyncError(err)
}

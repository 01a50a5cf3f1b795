// Package yahoo scrapes quote fields from Yahoo Finance quote pages.
// This package centralizes all quote page interactions for the application.
package yahoo

import (
	"fmt"
	"time"
)

// NotFoundError reports a symbol whose quote page has no recognizable quote.
// The symbol is likely invalid or delisted.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stock with symbol %q not found, symbol may be invalid", e.Symbol)
}

// FetchError represents a transport or upstream failure fetching a quote page.
type FetchError struct {
	Symbol     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch quote for %s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("failed to fetch quote for %s (status: %d)", e.Symbol, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimitError represents a local rate limiter interruption.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("quote rate limit exceeded, retry after %v", e.RetryAfter)
}

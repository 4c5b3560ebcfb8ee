package provider

import (
	"context"
	"time"

	"github.com/osse101/CurioSync_Go/internal/logger"
)

// SleepFunc pauses for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Visitor is called for every item the pager yields. A non-nil error stops the walk.
type Visitor func(ctx context.Context, item Item) error

// Pager drives the caller-side pagination loop for one group
type Pager struct {
	client    Client
	pageDelay time.Duration
	sleep     SleepFunc
}

// NewPager creates a pager over client. sleep may be nil.
func NewPager(client Client, pageDelay time.Duration, sleep SleepFunc) *Pager {
	if sleep == nil {
		sleep = Sleep
	}
	return &Pager{client: client, pageDelay: pageDelay, sleep: sleep}
}

// Walk fetches pages of req.Group until the provider reports no more pages or
// budget items have been visited, and returns how many items were visited.
// A budget <= 0 means unbounded.
func (p *Pager) Walk(ctx context.Context, req PageRequest, budget int, visit Visitor) (int, error) {
	log := logger.FromContext(ctx)
	visited := 0
	first := true

	for {
		if !first {
			if err := p.sleep(ctx, p.pageDelay); err != nil {
				return visited, err
			}
		}
		first = false

		page, err := p.client.FetchPage(ctx, req)
		if err != nil {
			return visited, err
		}
		log.Debug(LogMsgPageFetched, "group", req.Group.ID, "items", len(page.Items), "has_more", page.HasMore)

		for _, item := range page.Items {
			if budget > 0 && visited >= budget {
				log.Debug(LogMsgBudgetExhausted, "group", req.Group.ID, "visited", visited)
				return visited, nil
			}
			if err := visit(ctx, item); err != nil {
				return visited, err
			}
			visited++
		}

		if budget > 0 && visited >= budget {
			return visited, nil
		}
		if !page.HasMore || page.NextCursor == "" {
			return visited, nil
		}
		req.Cursor = page.NextCursor
	}
}

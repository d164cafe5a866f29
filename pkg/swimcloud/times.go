package swimcloud

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/flatten"
	"github.com/myusername/swim-scraper/pkg/models"
)

// ProfileFastestTimes fetches a swimmer's best time in every event
func (c *Client) ProfileFastestTimes(ctx context.Context, swimmerID string) ([]models.FastestTimeRecord, error) {
	body, err := c.getJSON(ctx, c.url("/api/swimmers/%s/profile_fastest_times/", swimmerID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch fastest times for swimmer %s: %w", swimmerID, err)
	}

	recs, err := flatten.DecodeFastestTimes(body)
	if err != nil {
		return nil, fmt.Errorf("decode fastest times for swimmer %s: %w", swimmerID, err)
	}
	return recs, nil
}

// TimesByEvent fetches every swim of one event for a swimmer. token is the
// "gender|distance|course|stroke" event token.
func (c *Client) TimesByEvent(ctx context.Context, swimmerID, token string) ([]models.EventTimeRecord, error) {
	body, err := c.getJSON(ctx, c.url("/api/swimmers/%s/times_by_event/", swimmerID), map[string]string{"event": token})
	if err != nil {
		return nil, fmt.Errorf("fetch times for swimmer %s event %s: %w", swimmerID, token, err)
	}

	recs, err := flatten.DecodeEventTimes(body)
	if err != nil {
		return nil, fmt.Errorf("decode times for swimmer %s event %s: %w", swimmerID, token, err)
	}
	return recs, nil
}

// SwimmerEventTokens returns the distinct events a swimmer has swum
func (c *Client) SwimmerEventTokens(ctx context.Context, swimmerID string) ([]models.EventToken, error) {
	recs, err := c.ProfileFastestTimes(ctx, swimmerID)
	if err != nil {
		return nil, err
	}
	return flatten.Tokens(swimmerID, recs), nil
}

// SwimmerFastestTimes returns one row per event with the swimmer's best time
func (c *Client) SwimmerFastestTimes(ctx context.Context, swimmerID string) ([]models.SwimRow, error) {
	recs, err := c.ProfileFastestTimes(ctx, swimmerID)
	if err != nil {
		return nil, err
	}
	return flatten.FastestRows(swimmerID, recs), nil
}

// SwimmerAllTimes returns every swim of a swimmer across all events. Events
// whose history cannot be fetched are logged and left out.
func (c *Client) SwimmerAllTimes(ctx context.Context, swimmerID string) ([]models.SwimRow, error) {
	tokens, err := c.SwimmerEventTokens(ctx, swimmerID)
	if err != nil {
		return nil, err
	}

	var rows []models.SwimRow
	for _, tok := range tokens {
		recs, err := c.TimesByEvent(ctx, swimmerID, tok.Token)
		if err != nil {
			c.logger.Warn("skipping event",
				zap.String("swimmer_id", swimmerID),
				zap.String("event", tok.Label),
				zap.String("token", tok.Token),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, flatten.EventRows(swimmerID, tok, recs)...)
	}

	flatten.SortSwims(rows)
	return rows, nil
}

// PowerIndex looks up a swimmer's high school power index. No endpoint
// provides it yet, so the result is always absent.
func (c *Client) PowerIndex(ctx context.Context, swimmerID string) (*float64, error) {
	return nil, nil
}

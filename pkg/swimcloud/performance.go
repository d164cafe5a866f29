package swimcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/myusername/swim-scraper/pkg/flatten"
	"github.com/myusername/swim-scraper/pkg/models"
)

// PerformanceQuery selects a team's performance rankings
type PerformanceQuery struct {
	TeamID      int
	Gender      string
	EventCourse string
	RankType    string
	Limit       int
}

func (q PerformanceQuery) withDefaults() PerformanceQuery {
	if q.Gender == "" {
		q.Gender = "M"
	}
	if q.EventCourse == "" {
		q.EventCourse = "Y"
	}
	if q.RankType == "" {
		q.RankType = "D"
	}
	if q.Limit <= 0 {
		q.Limit = 200
	}
	return q
}

// TeamPerformance fetches the performance rankings of a team
func (c *Client) TeamPerformance(ctx context.Context, q PerformanceQuery) ([]models.Performance, error) {
	q = q.withDefaults()
	params := map[string]string{
		"event_course": q.EventCourse,
		"gender":       q.Gender,
		"limit":        strconv.Itoa(q.Limit),
		"rank_type":    q.RankType,
		"team_id":      strconv.Itoa(q.TeamID),
	}

	body, err := c.getJSON(ctx, c.url("/api/performances/get_for_team/"), params)
	if err != nil {
		return nil, fmt.Errorf("fetch performance for team %d: %w", q.TeamID, err)
	}

	rows, err := flatten.DecodePerformance(body)
	if err != nil {
		return nil, fmt.Errorf("decode performance for team %d: %w", q.TeamID, err)
	}
	return rows, nil
}

package swimcloud

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/codec"
	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/parser"
	"github.com/myusername/swim-scraper/pkg/scraper"
)

// recruitPages is the number of recruiting ranking pages read per query
const recruitPages = 4

// RecruitQuery selects a high school recruiting class. State may be a full
// state name or an abbreviation; International lists swimmers outside the US.
type RecruitQuery struct {
	ClassYear     int
	Gender        string
	State         string
	International bool
}

func (c *Client) recruitURL(q RecruitQuery) (string, error) {
	base := c.url("/recruiting/rankings/%d/%s/", q.ClassYear, q.Gender)
	switch {
	case q.International:
		return base + "2/", nil
	case q.State == "":
		return base, nil
	case codec.IsStateAbbreviation(q.State):
		return base + "1/" + q.State + "/", nil
	}

	abbr, ok := codec.StateAbbreviation(q.State)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownState, q.State)
	}
	return base + "1/" + abbr + "/", nil
}

// HSRecruitRankings reads the recruiting rankings for a class year and gender.
// Pages are read until one is missing, fails with a non-2xx status or has no
// entries.
func (c *Client) HSRecruitRankings(ctx context.Context, q RecruitQuery) ([]models.Recruit, error) {
	if err := checkGender(q.Gender); err != nil {
		return nil, err
	}
	base, err := c.recruitURL(q)
	if err != nil {
		return nil, err
	}

	var recruits []models.Recruit
	for page := 1; page <= recruitPages; page++ {
		html, err := c.getPage(ctx, base, map[string]string{"page": strconv.Itoa(page)})
		var statusErr *scraper.StatusError
		if errors.As(err, &statusErr) {
			c.logger.Debug("recruiting pages ended", zap.Int("page", page), zap.Int("status", statusErr.StatusCode))
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch recruiting page %d: %w", page, err)
		}

		rows, ok := parser.ParseRecruits(html)
		if !ok {
			break
		}
		for i := range rows {
			rows[i].Gender = q.Gender
			rows[i].ClassYear = q.ClassYear
		}
		recruits = append(recruits, rows...)
	}
	return recruits, nil
}

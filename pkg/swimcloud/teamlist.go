package swimcloud

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/parser"
)

// teamIndexPages is the number of pages of the college team index
const teamIndexPages = 31

// TeamList scrapes the college team index. Pages that fail to load or parse
// are logged and skipped; the fixed page delay applies between every page.
func (c *Client) TeamList(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	for page := 1; page <= teamIndexPages; page++ {
		if page > 1 && c.opts.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return teams, ctx.Err()
			case <-time.After(c.opts.PageDelay):
			}
		}

		html, err := c.getPage(ctx, c.url("/team/"), map[string]string{"page": strconv.Itoa(page)})
		if err != nil {
			if ctx.Err() != nil {
				return teams, ctx.Err()
			}
			c.logger.Warn("skipping team index page", zap.Int("page", page), zap.Error(err))
			continue
		}

		rows, err := parser.ParseTeamList(html)
		if err != nil {
			c.logger.Warn("skipping unparsable team index page", zap.Int("page", page), zap.Error(err))
			continue
		}
		c.logger.Debug("parsed team index page", zap.Int("page", page), zap.Int("teams", len(rows)))
		teams = append(teams, rows...)
	}
	return teams, nil
}

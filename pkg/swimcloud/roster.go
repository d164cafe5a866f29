package swimcloud

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/codec"
	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/parser"
	"github.com/myusername/swim-scraper/pkg/teams"
)

// RosterQuery selects a team roster. Zero values mean "not given": without a
// TeamID the team is looked up by name, and without Year or SeasonID the
// current season is used. Year takes precedence over SeasonID.
type RosterQuery struct {
	Team     string
	TeamID   int
	Gender   string
	SeasonID int
	Year     int
	// Pro rosters have no grade column
	Pro bool
}

// Roster fetches and parses the roster of a team for one gender and season
func (c *Client) Roster(ctx context.Context, q RosterQuery) ([]models.RosterEntry, error) {
	if err := checkGender(q.Gender); err != nil {
		return nil, err
	}

	teamName, teamID, err := c.resolveTeam(q.Team, q.TeamID)
	if err != nil {
		return nil, err
	}
	season := c.resolveSeason(q.SeasonID, q.Year)

	log := c.logger.With(
		zap.String("team", teamName),
		zap.Int("team_id", teamID),
		zap.String("gender", q.Gender),
		zap.Int("season_id", season),
	)
	log.Debug("fetching roster")

	params := map[string]string{
		"page":      "1",
		"gender":    q.Gender,
		"season_id": codec.FormatSeason(season),
	}
	html, err := c.getPage(ctx, c.url("/team/%d/roster/", teamID), params)
	if err != nil {
		return nil, fmt.Errorf("fetch roster for %s: %w", teamName, err)
	}

	entries, err := parser.ParseRoster(html, q.Pro)
	if err != nil {
		return nil, fmt.Errorf("parse roster for %s (team %d): %w", teamName, teamID, err)
	}

	year := codec.Year(season)
	for i := range entries {
		entries[i].TeamName = teamName
		entries[i].TeamID = teamID
		entries[i].Gender = q.Gender
		entries[i].Year = year
	}
	log.Debug("parsed roster", zap.Int("swimmers", len(entries)))
	return entries, nil
}

// resolveTeam returns the display name and ID of a team. A given ID wins and
// is named from the reference table when possible.
func (c *Client) resolveTeam(name string, id int) (string, int, error) {
	snap := c.teams.Current()
	if id != 0 {
		if known := snap.TeamName(id); known != "" {
			name = known
		}
		return name, id, nil
	}

	id = snap.TeamID(name)
	if id == teams.NotFound {
		if suggestions := snap.Suggest(name, 3); len(suggestions) > 0 {
			return "", 0, fmt.Errorf("%w %q, did you mean: %s", ErrUnknownTeam, name, strings.Join(suggestions, "; "))
		}
		return "", 0, fmt.Errorf("%w %q", ErrUnknownTeam, name)
	}
	return name, id, nil
}

func (c *Client) resolveSeason(seasonID, year int) int {
	switch {
	case year != 0:
		return codec.SeasonID(year)
	case seasonID != 0:
		return seasonID
	}
	return codec.SeasonID(c.opts.Now().Year())
}

// TeamRankings fetches the national team rankings for a gender and season.
// Zero season and year select the current season.
func (c *Client) TeamRankings(ctx context.Context, gender string, seasonID, year int) ([]models.TeamRanking, error) {
	if err := checkGender(gender); err != nil {
		return nil, err
	}
	season := c.resolveSeason(seasonID, year)

	params := map[string]string{
		"eventCourse": "L",
		"gender":      gender,
		"page":        "1",
		"region":      "",
		"seasonId":    strconv.Itoa(season),
	}
	html, err := c.getPage(ctx, c.url("/team/rankings/"), params)
	if err != nil {
		return nil, fmt.Errorf("fetch team rankings: %w", err)
	}

	rankings, err := parser.ParseTeamRankings(html)
	if err != nil {
		return nil, fmt.Errorf("parse team rankings: %w", err)
	}
	return rankings, nil
}

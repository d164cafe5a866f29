package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/myusername/swim-scraper/pkg/codec"
	"github.com/myusername/swim-scraper/pkg/models"
)

// Sentinel errors for pages that lack the table we scrape
var (
	ErrRosterTableNotFound   = errors.New("roster table not found")
	ErrRankingsTableNotFound = errors.New("team rankings table not found")
)

// Placeholders used by the scraped tables when a value is missing
const (
	NoTeam       = "None"
	NoGrade      = "None"
	NoDivision   = "NONE"
	UnknownState = "NA"
)

const rosterTableSelector = "table.c-table-clean.c-table-clean--middle.table.table-hover"

func newDocument(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}
	return doc, nil
}

// ParseRoster extracts the swimmers listed on a team roster page. Team fields
// are left for the caller to fill in. When pro is set the grade column is not
// read and the grade is recorded as "None".
func ParseRoster(htmlContent string, pro bool) ([]models.RosterEntry, error) {
	doc, err := newDocument(htmlContent)
	if err != nil {
		return nil, err
	}

	table := doc.Find(rosterTableSelector).First()
	if table.Length() == 0 {
		return nil, ErrRosterTableNotFound
	}

	minCells := 4
	if pro {
		minCells = 3
	}

	var roster []models.RosterEntry
	var rowErr error
	bodyRows(table.Find("tr")).EachWithBreak(func(i int, row *goquery.Selection) bool {
		link := row.Find("a").First()
		cols := row.Find("td")
		if link.Length() == 0 || cols.Length() < minCells {
			rowErr = fmt.Errorf("roster row %d: expected a swimmer link and %d cells, got %d cells", i+1, minCells, cols.Length())
			return false
		}

		hometown := strings.TrimSpace(cols.Eq(2).Text())
		city, state := SplitHometown(hometown)

		grade := NoGrade
		if !pro {
			grade = strings.TrimSpace(cols.Eq(3).Text())
		}

		roster = append(roster, models.RosterEntry{
			SwimmerName:   CleanName(link.Text()),
			SwimmerID:     HrefID(link.AttrOr("href", "")),
			Grade:         grade,
			HometownState: state,
			HometownCity:  city,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return roster, nil
}

// ParseRecruits extracts the entries of a recruiting rankings page. ok is
// false when the page has no rankings table or only its header row, which
// marks the end of pagination.
func ParseRecruits(htmlContent string) (recruits []models.Recruit, ok bool) {
	doc, err := newDocument(htmlContent)
	if err != nil {
		return nil, false
	}

	table := doc.Find("div.c-table-clean--responsive").First()
	if table.Length() == 0 {
		return nil, false
	}

	rows := table.Find("tr")
	if rows.Length() <= 1 {
		return nil, false
	}

	bodyRows(rows).Each(func(_ int, row *goquery.Selection) {
		nameLink := row.Find(`a[href*="/swimmer/"]`).First()
		if nameLink.Length() == 0 {
			return
		}

		recruit := models.Recruit{
			SwimmerName: collapseSpace(nameLink.Text()),
			SwimmerID:   HrefID(nameLink.AttrOr("href", "")),
			TeamName:    NoTeam,
			TeamID:      NoTeam,
		}

		if hometownCell := row.Find("td.u-color-mute").First(); hometownCell.Length() > 0 {
			city, state := SplitHometown(collapseSpace(hometownCell.Text()))
			recruit.HometownCity = &city
			recruit.HometownState = &state
		}

		if powerCell := row.Find("td.u-text-end").First(); powerCell.Length() > 0 {
			if index, err := strconv.ParseFloat(strings.TrimSpace(powerCell.Text()), 64); err == nil {
				recruit.HSPowerIndex = &index
			}
		}

		if teamLink := row.Find(`a[href*="/team/"]`).First(); teamLink.Length() > 0 {
			recruit.TeamID = HrefID(teamLink.AttrOr("href", ""))
			if alt := teamLink.Find("img").AttrOr("alt", ""); alt != "" {
				if name := teamNameFromLogo(alt); name != "" {
					recruit.TeamName = name
				}
			} else if name := collapseSpace(teamLink.Text()); name != "" {
				recruit.TeamName = name
			}
		}

		recruits = append(recruits, recruit)
	})

	return recruits, true
}

// teamNameFromLogo turns an image alt text such as "University of Florida logo"
// into the team name
func teamNameFromLogo(alt string) string {
	parts := strings.Fields(alt)
	if len(parts) > 0 && strings.EqualFold(parts[len(parts)-1], "logo") {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " ")
}

// ParseTeamList extracts the teams listed on one page of the college team index
func ParseTeamList(htmlContent string) ([]models.Team, error) {
	doc, err := newDocument(htmlContent)
	if err != nil {
		return nil, err
	}

	var teams []models.Team
	bodyRows(doc.Find("tr")).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		link := cells.Eq(0).Find("a").First()
		id, err := strconv.Atoi(HrefID(link.AttrOr("href", "")))
		if link.Length() == 0 || err != nil {
			return
		}

		team := models.Team{
			Name:         strings.TrimSpace(link.Text()),
			ID:           id,
			State:        strings.TrimSpace(cells.Eq(1).Text()),
			Division:     NoDivision,
			DivisionID:   NoDivision,
			Conference:   NoDivision,
			ConferenceID: NoDivision,
		}
		if !codec.IsStateAbbreviation(team.State) {
			team.State = UnknownState
		}

		if div := cells.Eq(2).Find("a").First(); div.Length() > 0 {
			team.Division = strings.TrimSpace(div.AttrOr("title", ""))
			team.DivisionID = HrefID(div.AttrOr("href", ""))
		}
		if conf := cells.Eq(3).Find("a").First(); conf.Length() > 0 {
			team.Conference = strings.TrimSpace(conf.AttrOr("title", ""))
			team.ConferenceID = HrefID(conf.AttrOr("href", ""))
		}

		teams = append(teams, team)
	})

	return teams, nil
}

// ParseTeamRankings extracts the national team rankings table
func ParseTeamRankings(htmlContent string) ([]models.TeamRanking, error) {
	doc, err := newDocument(htmlContent)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.c-table-clean").First()
	if table.Length() == 0 {
		return nil, ErrRankingsTableNotFound
	}

	var rankings []models.TeamRanking
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		rankings = append(rankings, models.TeamRanking{
			TeamName: strings.TrimSpace(cells.Eq(1).Find("strong").Text()),
			TeamID:   HrefID(cells.Eq(1).Find("a").AttrOr("href", "")),
			Points:   strings.TrimSpace(cells.Eq(2).Find("a").Text()),
		})
	})

	return rankings, nil
}

// bodyRows drops the header row of a table selection
func bodyRows(rows *goquery.Selection) *goquery.Selection {
	if rows.Length() <= 1 {
		return rows.Slice(0, 0)
	}
	return rows.Slice(1, goquery.ToEnd)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

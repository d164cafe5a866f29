// Package utils renders scraped data as console tables and CSV files
package utils

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/myusername/swim-scraper/pkg/batch"
	"github.com/myusername/swim-scraper/pkg/models"
)

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(header)
	t.SetStyle(table.StyleRounded)
	return t
}

// DisplaySwims prints swim rows, one per line, in the order given
func DisplaySwims(w io.Writer, title string, rows []models.SwimRow) {
	t := newTable(w, title, table.Row{"Swimmer", "Event", "Time", "Seconds", "Date", "Meet", "Season", "Place"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.SwimmerID,
			r.EventLabel,
			optString(r.EventTime),
			optFloat(r.Seconds),
			optString(r.DateOfSwim),
			optString(r.MeetName),
			optInt(r.SeasonID),
			optInt(r.Place),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Swims", len(rows)})
	t.Render()
}

// DisplayRoster prints a team roster
func DisplayRoster(w io.Writer, title string, rows []models.RosterEntry) {
	t := newTable(w, title, table.Row{"Swimmer", "ID", "Team", "Grade", "City", "State", "Gender", "Year"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.SwimmerName, r.SwimmerID, r.TeamName, r.Grade, r.HometownCity, r.HometownState, r.Gender, r.Year})
	}
	t.Render()
}

// DisplayRecruits prints recruiting rankings entries
func DisplayRecruits(w io.Writer, title string, rows []models.Recruit) {
	t := newTable(w, title, table.Row{"#", "Swimmer", "ID", "Committed", "City", "State", "Power Index"})
	for i, r := range rows {
		t.AppendRow(table.Row{i + 1, r.SwimmerName, r.SwimmerID, r.TeamName, optString(r.HometownCity), optString(r.HometownState), optFloat(r.HSPowerIndex)})
	}
	t.Render()
}

// DisplayTeams prints reference table rows
func DisplayTeams(w io.Writer, rows []models.Team) {
	t := newTable(w, "", table.Row{"Team", "ID", "State", "Division", "Conference"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.ID, r.State, r.Division, r.Conference})
	}
	t.AppendFooter(table.Row{"", "", "", "Teams", len(rows)})
	t.Render()
}

// DisplayPerformance prints team performance rankings
func DisplayPerformance(w io.Writer, title string, rows []models.Performance) {
	t := newTable(w, title, table.Row{"Place", "Score", "Gender", "Age Group", "Season", "Rank Type", "Course"})
	for _, r := range rows {
		t.AppendRow(table.Row{optInt(r.Place), optFloat(r.Score), optString(r.Gender), optString(r.AgeGroup), optInt(r.SeasonID), optString(r.RankType), optString(r.EventCourse)})
	}
	t.Render()
}

// DisplayTeamRankings prints the national team rankings
func DisplayTeamRankings(w io.Writer, rows []models.TeamRanking) {
	t := newTable(w, "", table.Row{"#", "Team", "ID", "Points"})
	for i, r := range rows {
		t.AppendRow(table.Row{i + 1, r.TeamName, r.TeamID, r.Points})
	}
	t.Render()
}

// DisplayMeetResults prints results read from a meet results PDF
func DisplayMeetResults(w io.Writer, rows []models.MeetResult) {
	t := newTable(w, "", table.Row{"Event", "Place", "Swimmer", "Yr/Age", "Team", "Seed", "Final"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Event, optInt(r.Place), r.SwimmerName, r.Age, r.Team, optFloat(r.SeedTime), r.RawFinal})
	}
	t.Render()
}

// DisplayEvents prints the legacy event table
func DisplayEvents(w io.Writer, labels []string, code func(string) (string, bool)) {
	t := newTable(w, "", table.Row{"Event", "Legacy Code"})
	for _, label := range labels {
		c, _ := code(label)
		t.AppendRow(table.Row{strconv.Quote(label), strconv.Quote(c)})
	}
	t.Render()
}

// DisplayReport prints the outcome of every item in a batch run followed by totals
func DisplayReport(w io.Writer, report *batch.Report) {
	t := newTable(w, fmt.Sprintf("%s run %s", report.Name, report.RunID), table.Row{"Item", "Status", "Rows", "Reason"})
	for _, r := range report.Results {
		t.AppendRow(table.Row{r.Item, r.Status, r.Rows, r.Reason})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d ok, %d skipped, %d failed", report.Count(batch.StatusOK), report.Count(batch.StatusSkipped), report.Count(batch.StatusFailed)),
		report.Duration().Round(time.Millisecond).String(),
		report.Rows(),
		"",
	})
	t.Render()
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/myusername/swim-scraper/pkg/models"
)

var (
	swimColumns = []string{
		"swimmer_id", "event_label", "eventdistance", "eventcourse", "eventstroke_name", "eventgender",
		"eventtime", "seconds", "dateofswim", "meet_name", "season_id", "heat", "lane", "place",
	}
	rosterColumns = []string{
		"swimmer_name", "swimmer_ID", "team_name", "team_ID", "grade",
		"hometown_state", "hometown_city", "HS_power_index", "gender", "year",
	}
	recruitColumns = []string{
		"swimmer_name", "swimmer_ID", "team_name", "team_ID",
		"hometown_state", "hometown_city", "HS_power_index", "gender", "class_year",
	}
	meetResultColumns = []string{
		"event", "place", "swimmer_name", "age", "team", "seed_time", "final_time", "final_raw",
	}
	performanceColumns = []string{
		"id", "score", "gender", "agegroup", "team_id", "season_id",
		"rank_type", "event_course", "place", "updated_at", "created_at",
	}
)

func writeCSV(filename string, header []string, records [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// SaveSwimsToCSV saves swim rows to a CSV file
func SaveSwimsToCSV(rows []models.SwimRow, filename string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.SwimmerID,
			r.EventLabel,
			optString(r.EventDistance),
			optString(r.EventCourse),
			r.EventStroke,
			optString(r.EventGender),
			optString(r.EventTime),
			optFloat(r.Seconds),
			optString(r.DateOfSwim),
			optString(r.MeetName),
			optInt(r.SeasonID),
			optInt(r.Heat),
			optInt(r.Lane),
			optInt(r.Place),
		})
	}
	return writeCSV(filename, swimColumns, records)
}

// SaveRosterToCSV saves roster entries to a CSV file
func SaveRosterToCSV(rows []models.RosterEntry, filename string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		year := ""
		if r.Year != 0 {
			year = strconv.Itoa(r.Year)
		}
		records = append(records, []string{
			r.SwimmerName,
			r.SwimmerID,
			r.TeamName,
			strconv.Itoa(r.TeamID),
			r.Grade,
			r.HometownState,
			r.HometownCity,
			optFloat(r.HSPowerIndex),
			r.Gender,
			year,
		})
	}
	return writeCSV(filename, rosterColumns, records)
}

// SaveRecruitsToCSV saves recruiting rankings entries to a CSV file
func SaveRecruitsToCSV(rows []models.Recruit, filename string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		classYear := ""
		if r.ClassYear != 0 {
			classYear = strconv.Itoa(r.ClassYear)
		}
		records = append(records, []string{
			r.SwimmerName,
			r.SwimmerID,
			r.TeamName,
			r.TeamID,
			optString(r.HometownState),
			optString(r.HometownCity),
			optFloat(r.HSPowerIndex),
			r.Gender,
			classYear,
		})
	}
	return writeCSV(filename, recruitColumns, records)
}

// SaveTeamIDsToCSV saves a team_id,team_name list to a CSV file
func SaveTeamIDsToCSV(teams []models.Team, filename string) error {
	records := make([][]string, 0, len(teams))
	for _, t := range teams {
		records = append(records, []string{strconv.Itoa(t.ID), t.Name})
	}
	return writeCSV(filename, []string{"team_id", "team_name"}, records)
}

// SaveMeetResultsToCSV saves meet results to a CSV file
func SaveMeetResultsToCSV(rows []models.MeetResult, filename string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Event,
			optInt(r.Place),
			r.SwimmerName,
			r.Age,
			r.Team,
			optFloat(r.SeedTime),
			optFloat(r.FinalTime),
			r.RawFinal,
		})
	}
	return writeCSV(filename, meetResultColumns, records)
}

// SavePerformanceToCSV saves team performance rankings to a CSV file
func SavePerformanceToCSV(rows []models.Performance, filename string) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			optInt(r.ID),
			optFloat(r.Score),
			optString(r.Gender),
			optString(r.AgeGroup),
			optInt(r.TeamID),
			optInt(r.SeasonID),
			optString(r.RankType),
			optString(r.EventCourse),
			optInt(r.Place),
			optString(r.UpdatedAt),
			optString(r.CreatedAt),
		})
	}
	return writeCSV(filename, performanceColumns, records)
}

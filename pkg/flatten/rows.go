package flatten

import (
	"sort"

	"github.com/myusername/swim-scraper/pkg/codec"
	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/parser"
)

// missing is how an absent event field is rendered inside labels and tokens
const missing = "None"

// Tokens returns the distinct events found in a swimmer's fastest times.
// Records collapse when their tokens are equal; the first one seen is kept.
func Tokens(swimmerID string, recs []models.FastestTimeRecord) []models.EventToken {
	var tokens []models.EventToken
	seen := make(map[string]bool)

	for _, rec := range recs {
		token := Token(rec)
		if seen[token] {
			continue
		}
		seen[token] = true

		tokens = append(tokens, models.EventToken{
			SwimmerID:     swimmerID,
			Token:         token,
			Label:         Label(rec),
			EventDistance: rec.EventDistance,
			EventStroke:   rec.EventStroke,
			EventCourse:   rec.EventCourse,
			EventGender:   rec.EventGender,
		})
	}
	return tokens
}

// Token builds the times_by_event token for a record
func Token(rec models.FastestTimeRecord) string {
	gender := ""
	if rec.EventGender != nil {
		gender = *rec.EventGender
	}
	return codec.EventToken(gender, orMissing(rec.EventDistance), orMissing(rec.EventCourse), orMissing(rec.EventStroke))
}

// Label builds an event label such as "50 Y Free" from the raw fields of a record
func Label(rec models.FastestTimeRecord) string {
	return codec.EventName(orMissing(rec.EventDistance), orMissing(rec.EventCourse), orMissing(rec.EventStroke))
}

// FastestRows flattens fastest time records into one row each, sorted by
// swimmer ID and event label
func FastestRows(swimmerID string, recs []models.FastestTimeRecord) []models.SwimRow {
	rows := make([]models.SwimRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, baseRow(swimmerID, Label(rec), rec))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SwimmerID != rows[j].SwimmerID {
			return rows[i].SwimmerID < rows[j].SwimmerID
		}
		return rows[i].EventLabel < rows[j].EventLabel
	})
	return rows
}

// EventRows flattens the history of one event. The label comes from the
// token the history was requested with, not from the records.
func EventRows(swimmerID string, tok models.EventToken, recs []models.EventTimeRecord) []models.SwimRow {
	rows := make([]models.SwimRow, 0, len(recs))
	for _, rec := range recs {
		row := baseRow(swimmerID, tok.Label, rec.FastestTimeRecord)
		row.Heat = rec.Heat
		row.Lane = rec.Lane
		row.Place = rec.Place
		rows = append(rows, row)
	}
	return rows
}

// SortSwims orders rows by swimmer ID, event label and date of swim, with
// rows lacking a date last. Labels compare as plain strings, so "100 Y Free"
// sorts before "50 Y Free" and the result is not chronological across events.
func SortSwims(rows []models.SwimRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.SwimmerID != b.SwimmerID {
			return a.SwimmerID < b.SwimmerID
		}
		if a.EventLabel != b.EventLabel {
			return a.EventLabel < b.EventLabel
		}
		switch {
		case a.DateOfSwim == nil:
			return false
		case b.DateOfSwim == nil:
			return true
		}
		return *a.DateOfSwim < *b.DateOfSwim
	})
}

func baseRow(swimmerID, label string, rec models.FastestTimeRecord) models.SwimRow {
	row := models.SwimRow{
		SwimmerID:     swimmerID,
		EventLabel:    label,
		EventDistance: rec.EventDistance,
		EventCourse:   rec.EventCourse,
		EventStroke:   codec.StrokeName(orMissing(rec.EventStroke)),
		EventGender:   rec.EventGender,
		EventTime:     coalesce(rec.EventTime, rec.Time),
		DateOfSwim:    coalesce(rec.DateOfSwim, rec.DateCreated),
		MeetName:      coalesce(rec.MeetName, rec.Name),
		SeasonID:      rec.SeasonID,
	}
	if row.EventTime != nil {
		if seconds, err := parser.ParseTime(*row.EventTime); err == nil {
			row.Seconds = seconds
		}
	}
	return row
}

func coalesce(primary, alternate *string) *string {
	if primary != nil {
		return primary
	}
	return alternate
}

func orMissing(s *string) string {
	if s == nil {
		return missing
	}
	return *s
}

// Package teams holds the college teams reference table used to resolve team
// names and IDs
package teams

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/models"
)

// Columns is the header of the reference table file, in order
var Columns = []string{
	"team_name",
	"team_ID",
	"team_state",
	"team_division",
	"team_division_ID",
	"team_conference",
	"team_conference_ID",
}

// NotFound is returned by TeamID when no team carries the name
const NotFound = -1

// Snapshot is an immutable copy of the reference table
type Snapshot struct {
	teams []models.Team
}

// NewSnapshot builds a snapshot from a copy of rows
func NewSnapshot(rows []models.Team) *Snapshot {
	teams := make([]models.Team, len(rows))
	copy(teams, rows)
	return &Snapshot{teams: teams}
}

// Len returns the number of teams in the snapshot
func (s *Snapshot) Len() int {
	return len(s.teams)
}

// Teams returns a copy of every team in file order
func (s *Snapshot) Teams() []models.Team {
	return NewSnapshot(s.teams).teams
}

// TeamID returns the ID of the team with the given name. When several rows
// share the name the last one wins.
func (s *Snapshot) TeamID(name string) int {
	id := NotFound
	for _, t := range s.teams {
		if t.Name == name {
			id = t.ID
		}
	}
	return id
}

// TeamName returns the name of the team with the given ID, or "" when absent.
// When several rows share the ID the last one wins.
func (s *Snapshot) TeamName(id int) string {
	name := ""
	for _, t := range s.teams {
		if t.ID == id {
			name = t.Name
		}
	}
	return name
}

// Filter selects teams by name, division or conference. Only the first
// non-empty filter in that order is applied; with no filters every team is
// returned.
func (s *Snapshot) Filter(names, conferences, divisions []string) []models.Team {
	var match func(models.Team) bool
	switch {
	case len(names) > 0:
		match = func(t models.Team) bool { return contains(names, t.Name) }
	case len(divisions) > 0:
		match = func(t models.Team) bool { return contains(divisions, t.Division) }
	case len(conferences) > 0:
		match = func(t models.Team) bool { return contains(conferences, t.Conference) }
	default:
		return s.Teams()
	}

	var out []models.Team
	for _, t := range s.teams {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Suggest returns up to n team names closest to name by Jaro-Winkler
// similarity, best first
func (s *Snapshot) Suggest(name string, n int) []string {
	type scored struct {
		name  string
		score float64
	}

	seen := make(map[string]bool)
	var candidates []scored
	query := strings.ToLower(name)
	for _, t := range s.teams {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		candidates = append(candidates, scored{t.Name, matchr.JaroWinkler(query, strings.ToLower(t.Name), false)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.name)
	}
	return out
}

// Load reads the reference table from a CSV file. It never fails: a missing,
// empty or header-less file yields an empty snapshot, absent columns read as
// empty values and rows whose team_ID is not a whole number are skipped. A
// leading byte order mark on the header is ignored.
func Load(path string, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		log.Warn("teams CSV not found, using empty table", zap.Error(err))
		return NewSnapshot(nil)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		log.Warn("teams CSV is empty, using empty table")
		return NewSnapshot(nil)
	}
	if err != nil {
		log.Warn("teams CSV has no readable header, using empty table", zap.Error(err))
		return NewSnapshot(nil)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{"team_name", "team_ID"} {
		if _, ok := index[col]; !ok {
			log.Warn("teams CSV header is missing a column", zap.String("column", col))
		}
	}

	var rows []models.Team
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Warn("skipping unreadable teams row", zap.Int("line", line), zap.Error(err))
			continue
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id, ok := parseID(get("team_ID"))
		if !ok {
			log.Warn("skipping teams row with invalid team_ID", zap.Int("line", line), zap.String("team_ID", get("team_ID")))
			continue
		}

		rows = append(rows, models.Team{
			Name:         get("team_name"),
			ID:           id,
			State:        get("team_state"),
			Division:     get("team_division"),
			DivisionID:   get("team_division_ID"),
			Conference:   get("team_conference"),
			ConferenceID: get("team_conference_ID"),
		})
	}

	log.Debug("loaded teams table", zap.Int("teams", len(rows)))
	return &Snapshot{teams: rows}
}

// parseID accepts integer IDs and whole floats such as "117.0", the form
// spreadsheet tools write for an integer column with blanks
func parseID(text string) (int, bool) {
	if id, err := strconv.Atoi(text); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Write saves teams to a CSV file with the reference table header
func Write(path string, teams []models.Team) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range teams {
		record := []string{
			t.Name,
			strconv.Itoa(t.ID),
			t.State,
			t.Division,
			t.DivisionID,
			t.Conference,
			t.ConferenceID,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write team %d: %w", t.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush teams CSV: %w", err)
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

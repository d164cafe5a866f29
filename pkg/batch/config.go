package batch

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

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/models"
)

// TeamConfig is one row of the team config file: a team and gender to dump
type TeamConfig struct {
	TeamID   int
	TeamName string
	Gender   string
}

var teamConfigColumns = []string{"team_id", "team_name", "gender"}

// table is a CSV file read into memory with its header indexed by name
type table struct {
	columns map[string]int
	records [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &table{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, col := range header {
		t.columns[strings.TrimSpace(col)] = i
	}

	t.records, err = reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

func (t *table) missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if _, ok := t.columns[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func (t *table) get(record []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ReadTeamConfig reads a team_id,team_name,gender CSV. A missing file, a
// missing column or a file without a single valid row is an error; invalid
// rows are skipped with a warning.
func ReadTeamConfig(path string, logger *zap.Logger) ([]TeamConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if missing := t.missing(teamConfigColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing required columns: %s", path, strings.Join(missing, ", "))
	}

	var cfgs []TeamConfig
	for i, record := range t.records {
		id, idErr := strconv.Atoi(t.get(record, "team_id"))
		cfg := TeamConfig{
			TeamID:   id,
			TeamName: t.get(record, "team_name"),
			Gender:   strings.ToUpper(t.get(record, "gender")),
		}
		if idErr != nil || cfg.TeamName == "" || (cfg.Gender != "M" && cfg.Gender != "F") {
			logger.Warn("skipping invalid config row", zap.Int("line", i+2), zap.Strings("row", record))
			continue
		}
		cfgs = append(cfgs, cfg)
	}

	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no valid rows found in %s", path)
	}
	return cfgs, nil
}

// UniqueTeams returns one team per ID, named by the last config row carrying
// it, sorted by name and ID
func UniqueTeams(cfgs []TeamConfig) []models.Team {
	names := make(map[int]string)
	for _, c := range cfgs {
		names[c.TeamID] = c.TeamName
	}

	teams := make([]models.Team, 0, len(names))
	for id, name := range names {
		teams = append(teams, models.Team{ID: id, Name: name})
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID < teams[j].ID
	})
	return teams
}

// LoadSwimmerIDs reads the swimmer_ID column of a roster CSV. Blank IDs are
// dropped and duplicates removed, keeping first-seen order.
func LoadSwimmerIDs(path string) ([]string, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if missing := t.missing("swimmer_ID"); len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing the swimmer_ID column", path)
	}

	var ids []string
	seen := make(map[string]bool)
	for _, record := range t.records {
		id := t.get(record, "swimmer_ID")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// TopRecruit returns the ID and name of the recruit with the lowest
// HS_power_index in a recruits CSV. Rows whose index does not parse are ignored.
func TopRecruit(path string) (id, name string, err error) {
	t, err := readTable(path)
	if err != nil {
		return "", "", err
	}
	if missing := t.missing("HS_power_index", "swimmer_ID"); len(missing) > 0 {
		return "", "", fmt.Errorf("%s must have HS_power_index and swimmer_ID columns", path)
	}

	best := 0.0
	found := false
	for _, record := range t.records {
		index, err := strconv.ParseFloat(t.get(record, "HS_power_index"), 64)
		if err != nil || math.IsNaN(index) {
			continue
		}
		if !found || index < best {
			best = index
			id = t.get(record, "swimmer_ID")
			name = t.get(record, "swimmer_name")
			found = true
		}
	}

	if !found {
		return "", "", fmt.Errorf("no recruits with a valid HS_power_index found in %s", path)
	}
	return id, name, nil
}

package teams

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/myusername/swim-scraper/pkg/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleTeams() []models.Team {
	return []models.Team{
		{Name: "University of Florida", ID: 117, State: "FL", Division: "NCAA DI", DivisionID: "1", Conference: "SEC", ConferenceID: "7"},
		{Name: "University of Georgia", ID: 127, State: "GA", Division: "NCAA DI", DivisionID: "1", Conference: "SEC", ConferenceID: "7"},
		{Name: "Kenyon College", ID: 298, State: "OH", Division: "NCAA DIII", DivisionID: "3", Conference: "NCAC", ConferenceID: "40"},
		{Name: "University of Florida", ID: 999, State: "FL", Division: "Club", DivisionID: "9", Conference: "NONE", ConferenceID: "NONE"},
	}
}

func TestLookupsLastMatchWins(t *testing.T) {
	snap := NewSnapshot(append(sampleTeams(), models.Team{Name: "Duplicate ID", ID: 127}))

	// Later rows shadow earlier rows sharing the key
	assert.Equal(t, 999, snap.TeamID("University of Florida"))
	assert.Equal(t, "Duplicate ID", snap.TeamName(127))

	assert.Equal(t, 298, snap.TeamID("Kenyon College"))
	assert.Equal(t, "Kenyon College", snap.TeamName(298))
}

func TestLookupsNotFound(t *testing.T) {
	snap := NewSnapshot(sampleTeams())
	assert.Equal(t, NotFound, snap.TeamID("Nowhere State"))
	assert.Equal(t, "", snap.TeamName(1))

	empty := NewSnapshot(nil)
	assert.Equal(t, -1, empty.TeamID("University of Florida"))
	assert.Equal(t, "", empty.TeamName(117))
}

func TestSnapshotIsACopy(t *testing.T) {
	rows := sampleTeams()
	snap := NewSnapshot(rows)
	rows[0].Name = "Changed"
	assert.Equal(t, "University of Florida", snap.TeamName(117))

	teams := snap.Teams()
	teams[2].Name = "Changed"
	assert.Equal(t, 298, snap.TeamID("Kenyon College"))
}

func TestFilter(t *testing.T) {
	snap := NewSnapshot(sampleTeams())

	tests := []struct {
		name        string
		names       []string
		conferences []string
		divisions   []string
		want        []int
	}{
		{"no filters", nil, nil, nil, []int{117, 127, 298, 999}},
		{"by name", []string{"Kenyon College"}, nil, nil, []int{298}},
		{"by conference", nil, []string{"SEC"}, nil, []int{117, 127}},
		{"by division", nil, nil, []string{"NCAA DIII", "Club"}, []int{298, 999}},
		{"names take precedence", []string{"University of Georgia"}, []string{"NCAC"}, []string{"Club"}, []int{127}},
		{"divisions before conferences", nil, []string{"SEC"}, []string{"NCAA DIII"}, []int{298}},
		{"no match", []string{"Nowhere"}, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, team := range snap.Filter(tt.names, tt.conferences, tt.divisions) {
				got = append(got, team.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest(t *testing.T) {
	snap := NewSnapshot(sampleTeams())

	got := snap.Suggest("university of florda", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "University of Florida", got[0])
	assert.Equal(t, "University of Georgia", got[1])

	assert.Len(t, snap.Suggest("x", 10), 3)
	assert.Empty(t, NewSnapshot(nil).Suggest("x", 3))
}

func TestLoadDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.csv") }},
		{"zero bytes", func(t *testing.T) string { return writeFile(t, "") }},
		{"blank lines only", func(t *testing.T) string { return writeFile(t, "\n\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Load(tt.path(t), nil)
			require.NotNil(t, snap)
			assert.Equal(t, 0, snap.Len())
			assert.Equal(t, -1, snap.TeamID("University of Florida"))
		})
	}
}

func TestLoadFillsMissingColumnsAndSkipsBadIDs(t *testing.T) {
	path := writeFile(t, "team_ID,team_name,team_state\n"+
		"117,University of Florida,FL\n"+
		"abc,Broken Row,TX\n"+
		"127,University of Georgia\n")

	snap := Load(path, nil)
	want := []models.Team{
		{Name: "University of Florida", ID: 117, State: "FL"},
		{Name: "University of Georgia", ID: 127},
	}
	if diff := cmp.Diff(want, snap.Teams()); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	path := writeFile(t, "\ufeffteam_name,team_ID,team_state\nUniversity of Florida,117,FL\n")

	snap := Load(path, nil)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, 117, snap.TeamID("University of Florida"))
	assert.Equal(t, "University of Florida", snap.TeamName(117))
}

func TestLoadAcceptsWholeFloatIDs(t *testing.T) {
	path := writeFile(t, "team_name,team_ID\n"+
		"University of Florida,117.0\n"+
		"Blank ID,\n"+
		"Fractional ID,12.5\n")

	snap := Load(path, nil)
	want := []models.Team{{Name: "University of Florida", ID: 117}}
	if diff := cmp.Diff(want, snap.Teams()); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWarnsOnMissingKeyColumns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	path := writeFile(t, "name,id\nUniversity of Florida,117\n")

	snap := Load(path, zap.New(core))
	assert.Equal(t, 0, snap.Len())

	missing := logs.FilterMessage("teams CSV header is missing a column").All()
	require.Len(t, missing, 2)
	assert.Equal(t, "team_name", missing[0].ContextMap()["column"])
	assert.Equal(t, "team_ID", missing[1].ContextMap()["column"])
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	require.NoError(t, Write(path, sampleTeams()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "team_name,team_ID,team_state,team_division,team_division_ID,team_conference,team_conference_ID\n")

	snap := Load(path, nil)
	if diff := cmp.Diff(sampleTeams(), snap.Teams()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceReplace(t *testing.T) {
	svc := NewService(nil, nil)
	assert.Equal(t, 0, svc.Current().Len())

	first := NewSnapshot(sampleTeams())
	svc.Replace(first)
	assert.Same(t, first, svc.Current())

	path := writeFile(t, "team_name,team_ID\nKenyon College,298\n")
	reloaded := svc.Reload(path)
	assert.Same(t, reloaded, svc.Current())
	assert.Equal(t, 298, svc.Current().TeamID("Kenyon College"))

	// The previous snapshot is untouched by the reload
	assert.Equal(t, 4, first.Len())
}

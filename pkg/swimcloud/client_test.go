package swimcloud

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/scraper"
	"github.com/myusername/swim-scraper/pkg/teams"
)

type call struct {
	URL     string
	Params  map[string]string
	Headers map[string]string
}

// fakeFetcher answers requests from a handler and records every call
type fakeFetcher struct {
	handle func(url string, params map[string]string) ([]byte, error)
	calls  []call
}

func (f *fakeFetcher) Get(_ context.Context, url string, params map[string]string, headers map[string]string) ([]byte, error) {
	f.calls = append(f.calls, call{URL: url, Params: params, Headers: headers})
	return f.handle(url, params)
}

func (f *fakeFetcher) urls() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.URL)
	}
	return out
}

func fixedNow() time.Time {
	return time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
}

func newTestClient(f *fakeFetcher, rows ...models.Team) *Client {
	svc := teams.NewService(teams.NewSnapshot(rows), nil)
	return NewClient(f, svc, Options{BaseURL: "https://sc.test", Now: fixedNow})
}

const fastestTimes = `[
	{"eventgender": "M", "eventdistance": 100, "eventcourse": "Y", "eventstroke": 1, "eventtime": "45.10", "dateofswim": "2024-03-01"},
	{"eventgender": "M", "eventdistance": 50, "eventcourse": "Y", "eventstroke": 1, "eventtime": "20.50", "dateofswim": "2024-02-01"},
	{"eventgender": "M", "eventdistance": 100, "eventcourse": "Y", "eventstroke": 1, "eventtime": "45.90", "dateofswim": "2023-03-01"}
]`

func TestSwimmerAllTimesDeduplicatesAndSorts(t *testing.T) {
	f := &fakeFetcher{handle: func(url string, params map[string]string) ([]byte, error) {
		switch {
		case strings.HasSuffix(url, "/profile_fastest_times/"):
			return []byte(fastestTimes), nil
		case params["event"] == "1|100|Y|1":
			return []byte(`{"results": [
				{"eventtime": "46.00", "dateofswim": "2023-11-01", "meet_name": "Invite", "heat": 2, "lane": 5, "place": 3},
				{"eventtime": "45.10", "dateofswim": "2024-03-01", "meet_name": "SECs"},
				{"time": "47.00", "dateofswim": null}
			]}`), nil
		case params["event"] == "1|50|Y|1":
			return []byte(`[{"eventtime": "20.50", "dateofswim": "2024-02-01"}]`), nil
		}
		return nil, errors.New("unexpected request")
	}}

	rows, err := newTestClient(f).SwimmerAllTimes(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://sc.test/api/swimmers/42/profile_fastest_times/",
		"https://sc.test/api/swimmers/42/times_by_event/",
		"https://sc.test/api/swimmers/42/times_by_event/",
	}, f.urls())
	assert.Equal(t, "application/json", f.calls[1].Headers["Accept"])

	type key struct{ Label, Date, Time string }
	var got []key
	for _, r := range rows {
		date := "<nil>"
		if r.DateOfSwim != nil {
			date = *r.DateOfSwim
		}
		got = append(got, key{r.EventLabel, date, *r.EventTime})
	}
	want := []key{
		{"100 Y Free", "2023-11-01", "46.00"},
		{"100 Y Free", "2024-03-01", "45.10"},
		{"100 Y Free", "<nil>", "47.00"},
		{"50 Y Free", "2024-02-01", "20.50"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("all times mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, *rows[0].Place)
}

func TestSwimmerAllTimesSkipsFailedEvent(t *testing.T) {
	f := &fakeFetcher{handle: func(url string, params map[string]string) ([]byte, error) {
		switch {
		case strings.HasSuffix(url, "/profile_fastest_times/"):
			return []byte(fastestTimes), nil
		case params["event"] == "1|100|Y|1":
			return nil, &scraper.StatusError{StatusCode: http.StatusInternalServerError, URL: url}
		}
		return []byte(`[{"eventtime": "20.50"}]`), nil
	}}

	rows, err := newTestClient(f).SwimmerAllTimes(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50 Y Free", rows[0].EventLabel)
}

func TestSwimmerAllTimesPropagatesProfileError(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return nil, &scraper.StatusError{StatusCode: http.StatusNotFound}
	}}

	_, err := newTestClient(f).SwimmerAllTimes(context.Background(), "42")
	var statusErr *scraper.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestSwimmerFastestTimes(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(fastestTimes), nil
	}}

	rows, err := newTestClient(f).SwimmerFastestTimes(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "100 Y Free", rows[0].EventLabel)
	assert.Equal(t, "100 Y Free", rows[1].EventLabel)
	assert.Equal(t, "50 Y Free", rows[2].EventLabel)
}

func TestTeamPerformance(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(`{"count": 1, "results": [{"id": 9, "score": 812.5, "gender": "M", "team_id": 117, "season_id": 28, "place": 4}]}`), nil
	}}

	perf, err := newTestClient(f).TeamPerformance(context.Background(), PerformanceQuery{TeamID: 117})
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.InDelta(t, 812.5, *perf[0].Score, 1e-9)
	assert.Equal(t, 4, *perf[0].Place)

	assert.Equal(t, "https://sc.test/api/performances/get_for_team/", f.calls[0].URL)
	assert.Equal(t, map[string]string{
		"event_course": "Y",
		"gender":       "M",
		"limit":        "200",
		"rank_type":    "D",
		"team_id":      "117",
	}, f.calls[0].Params)
}

func TestTeamPerformanceToleratesStringScores(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(`{"results": [{"id": 9, "score": "812.5", "place": "4"}, {"id": 10, "score": "n/a"}]}`), nil
	}}

	perf, err := newTestClient(f).TeamPerformance(context.Background(), PerformanceQuery{TeamID: 117})
	require.NoError(t, err)
	require.Len(t, perf, 2)
	assert.InDelta(t, 812.5, *perf[0].Score, 1e-9)
	assert.Equal(t, 4, *perf[0].Place)
	assert.Nil(t, perf[1].Score)
	assert.Equal(t, 10, *perf[1].ID)
}

const rosterPage = `<table class="c-table-clean c-table-clean--middle table table-hover">
<tr><th>Name</th><th></th><th>Hometown</th><th>Class</th></tr>
<tr><td><a href="/swimmer/77">Smith, John</a></td><td>M</td><td>Austin, TX</td><td>Junior</td></tr>
</table>`

func TestRosterByName(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(rosterPage), nil
	}}
	client := newTestClient(f, models.Team{Name: "University of Florida", ID: 117})

	roster, err := client.Roster(context.Background(), RosterQuery{Team: "University of Florida", Gender: "M", Year: 2024})
	require.NoError(t, err)

	want := []models.RosterEntry{{
		SwimmerName:   "John Smith",
		SwimmerID:     "77",
		TeamName:      "University of Florida",
		TeamID:        117,
		Grade:         "Junior",
		HometownState: "TX",
		HometownCity:  "Austin",
		Gender:        "M",
		Year:          2024,
	}}
	if diff := cmp.Diff(want, roster); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}

	req := f.calls[0]
	assert.Equal(t, "https://sc.test/team/117/roster/", req.URL)
	assert.Equal(t, map[string]string{"page": "1", "gender": "M", "season_id": "28"}, req.Params)
	assert.Equal(t, DefaultReferer, req.Headers["Referer"])
	assert.Equal(t, DefaultBrowserUserAgent, req.Headers["User-Agent"])
}

func TestRosterSeasonResolution(t *testing.T) {
	tests := []struct {
		name  string
		query RosterQuery
		want  string
	}{
		{"year wins over season", RosterQuery{TeamID: 1, Gender: "F", Year: 2020, SeasonID: 5}, "24"},
		{"season given", RosterQuery{TeamID: 1, Gender: "F", SeasonID: 27}, "27"},
		{"current year", RosterQuery{TeamID: 1, Gender: "F"}, "28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
				return []byte(rosterPage), nil
			}}
			_, err := newTestClient(f).Roster(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.calls[0].Params["season_id"])
		})
	}
}

func TestRosterTeamIDKeepsGivenNameWhenUnknown(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(rosterPage), nil
	}}

	roster, err := newTestClient(f).Roster(context.Background(), RosterQuery{Team: "Gators", TeamID: 117, Gender: "M"})
	require.NoError(t, err)
	assert.Equal(t, "Gators", roster[0].TeamName)
	assert.Equal(t, 117, roster[0].TeamID)
}

func TestRosterErrors(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(`<p>nothing here</p>`), nil
	}}
	client := newTestClient(f, models.Team{Name: "University of Florida", ID: 117})

	_, err := client.Roster(context.Background(), RosterQuery{TeamID: 117, Gender: "X"})
	assert.ErrorIs(t, err, ErrInvalidGender)

	_, err = client.Roster(context.Background(), RosterQuery{Team: "Univ of Florida", Gender: "M"})
	assert.ErrorIs(t, err, ErrUnknownTeam)
	assert.Contains(t, err.Error(), "University of Florida")

	assert.Empty(t, f.calls)

	_, err = client.Roster(context.Background(), RosterQuery{TeamID: 117, Gender: "M"})
	assert.Error(t, err)
}

func recruitPage(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="c-table-clean--responsive"><table><tr><th>Name</th></tr>`)
	for _, id := range ids {
		b.WriteString(`<tr><td><a href="/swimmer/` + id + `/">Swimmer ` + id + `</a></td><td class="u-text-end">500.5</td></tr>`)
	}
	b.WriteString(`</table></div>`)
	return b.String()
}

func TestHSRecruitRankingsPagination(t *testing.T) {
	tests := []struct {
		name  string
		pages map[string]string
		want  int
		calls int
	}{
		{"stops on empty page", map[string]string{"1": recruitPage("1", "2"), "2": recruitPage()}, 2, 2},
		{"stops on status error", map[string]string{"1": recruitPage("1")}, 1, 2},
		{"reads four pages at most", map[string]string{
			"1": recruitPage("1"), "2": recruitPage("2"), "3": recruitPage("3"), "4": recruitPage("4"), "5": recruitPage("5"),
		}, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{handle: func(url string, params map[string]string) ([]byte, error) {
				page, ok := tt.pages[params["page"]]
				if !ok {
					return nil, &scraper.StatusError{StatusCode: http.StatusNotFound, URL: url}
				}
				return []byte(page), nil
			}}

			recruits, err := newTestClient(f).HSRecruitRankings(context.Background(), RecruitQuery{ClassYear: 2028, Gender: "F"})
			require.NoError(t, err)
			assert.Len(t, recruits, tt.want)
			assert.Len(t, f.calls, tt.calls)
			for _, r := range recruits {
				assert.Equal(t, "F", r.Gender)
				assert.Equal(t, 2028, r.ClassYear)
			}
		})
	}
}

func TestHSRecruitRankingsURLs(t *testing.T) {
	tests := []struct {
		name  string
		query RecruitQuery
		want  string
	}{
		{"national", RecruitQuery{ClassYear: 2028, Gender: "M"}, "https://sc.test/recruiting/rankings/2028/M/"},
		{"state name", RecruitQuery{ClassYear: 2028, Gender: "M", State: "Texas"}, "https://sc.test/recruiting/rankings/2028/M/1/TX/"},
		{"state abbreviation", RecruitQuery{ClassYear: 2028, Gender: "M", State: "FL"}, "https://sc.test/recruiting/rankings/2028/M/1/FL/"},
		{"international", RecruitQuery{ClassYear: 2028, Gender: "M", State: "Texas", International: true}, "https://sc.test/recruiting/rankings/2028/M/2/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
				return []byte(recruitPage()), nil
			}}
			_, err := newTestClient(f).HSRecruitRankings(context.Background(), tt.query)
			require.NoError(t, err)
			require.Len(t, f.calls, 1)
			assert.Equal(t, tt.want, f.calls[0].URL)
			assert.Equal(t, "1", f.calls[0].Params["page"])
		})
	}
}

func TestHSRecruitRankingsUnknownState(t *testing.T) {
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) { return nil, nil }}
	_, err := newTestClient(f).HSRecruitRankings(context.Background(), RecruitQuery{ClassYear: 2028, Gender: "M", State: "Atlantis"})
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.Empty(t, f.calls)
}

func TestTeamList(t *testing.T) {
	const page = `<table>
<tr><th>Team</th><th>State</th><th>Division</th><th>Conference</th></tr>
<tr><td><a href="/team/117/">Florida</a></td><td>FL</td><td></td><td></td></tr>
</table>`
	f := &fakeFetcher{handle: func(url string, params map[string]string) ([]byte, error) {
		if params["page"] == "2" {
			return nil, &scraper.StatusError{StatusCode: http.StatusBadGateway, URL: url}
		}
		return []byte(page), nil
	}}

	client := NewClient(f, nil, Options{BaseURL: "https://sc.test", PageDelay: -1})
	list, err := client.TeamList(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.calls, 31)
	assert.Len(t, list, 30)
	assert.Equal(t, "https://sc.test/team/", f.calls[0].URL)
}

func TestTeamRankings(t *testing.T) {
	const page = `<table class="c-table-clean"><tbody>
<tr><td>1</td><td><a href="/team/117"><strong>Florida</strong></a></td><td><a>1200</a></td></tr>
</tbody></table>`
	f := &fakeFetcher{handle: func(string, map[string]string) ([]byte, error) {
		return []byte(page), nil
	}}

	rankings, err := newTestClient(f).TeamRankings(context.Background(), "M", 0, 2023)
	require.NoError(t, err)
	assert.Equal(t, []models.TeamRanking{{TeamName: "Florida", TeamID: "117", Points: "1200"}}, rankings)
	assert.Equal(t, "27", f.calls[0].Params["seasonId"])
}

func TestPowerIndexIsAbsent(t *testing.T) {
	index, err := newTestClient(&fakeFetcher{}).PowerIndex(context.Background(), "42")
	require.NoError(t, err)
	assert.Nil(t, index)
}

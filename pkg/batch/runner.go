package batch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/swimcloud"
)

// Source is the part of the swimcloud client the batch drivers use
type Source interface {
	Roster(ctx context.Context, q swimcloud.RosterQuery) ([]models.RosterEntry, error)
	HSRecruitRankings(ctx context.Context, q swimcloud.RecruitQuery) ([]models.Recruit, error)
	SwimmerAllTimes(ctx context.Context, swimmerID string) ([]models.SwimRow, error)
}

// Runner drives batch dumps sequentially. A failing item is logged, recorded
// in the report and the run moves on; nothing is retried.
type Runner struct {
	src    Source
	logger *zap.Logger
	now    func() time.Time
}

// NewRunner creates a runner reading from src
func NewRunner(src Source, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{src: src, logger: logger, now: time.Now}
}

// GatherRosters fetches the roster of every configured team and gender for
// each year from startYear to endYear inclusive. Rows are sorted by team
// name, gender, year and swimmer name.
func (r *Runner) GatherRosters(ctx context.Context, cfgs []TeamConfig, startYear, endYear int) ([]models.RosterEntry, *Report) {
	report := newReport("rosters", r.now)
	defer func() { report.Finished = r.now() }()

	var rows []models.RosterEntry
	for _, cfg := range cfgs {
		for year := startYear; year <= endYear; year++ {
			if ctx.Err() != nil {
				return sortRosters(rows), report
			}

			item := fmt.Sprintf("%s (%s) %d", cfg.TeamName, cfg.Gender, year)
			log := r.logger.With(zap.String("team", cfg.TeamName), zap.String("gender", cfg.Gender), zap.Int("year", year))
			log.Info("fetching roster")

			roster, err := r.src.Roster(ctx, swimcloud.RosterQuery{
				Team:   cfg.TeamName,
				TeamID: cfg.TeamID,
				Gender: cfg.Gender,
				Year:   year,
			})
			if err != nil {
				log.Error("failed to fetch roster", zap.Error(err))
				report.fail(item, err)
				continue
			}
			if len(roster) == 0 {
				log.Warn("no roster rows returned")
				report.skip(item, "no roster rows returned")
				continue
			}

			for _, entry := range roster {
				entry.Gender = cfg.Gender
				entry.Year = year
				rows = append(rows, entry)
			}
			report.ok(item, len(roster))
		}
	}

	return sortRosters(rows), report
}

func sortRosters(rows []models.RosterEntry) []models.RosterEntry {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		if a.Gender != b.Gender {
			return a.Gender < b.Gender
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.SwimmerName < b.SwimmerName
	})
	return rows
}

// GatherRecruits fetches the recruiting class of classYear for each gender
func (r *Runner) GatherRecruits(ctx context.Context, classYear int, genders []string) ([]models.Recruit, *Report) {
	report := newReport("recruits", r.now)
	defer func() { report.Finished = r.now() }()

	var rows []models.Recruit
	for _, gender := range genders {
		item := fmt.Sprintf("class %d (%s)", classYear, gender)
		log := r.logger.With(zap.Int("class_year", classYear), zap.String("gender", gender))
		log.Info("fetching recruits")

		recruits, err := r.src.HSRecruitRankings(ctx, swimcloud.RecruitQuery{ClassYear: classYear, Gender: gender})
		if err != nil {
			log.Error("failed to fetch recruits", zap.Error(err))
			report.fail(item, err)
			continue
		}
		if len(recruits) == 0 {
			report.skip(item, "no recruits found")
			continue
		}

		for _, rec := range recruits {
			rec.Gender = gender
			rec.ClassYear = classYear
			rows = append(rows, rec)
		}
		log.Info("fetched recruits", zap.Int("recruits", len(recruits)))
		report.ok(item, len(recruits))
	}
	return rows, report
}

// GatherAllTimes fetches every swim of each swimmer and concatenates them
// in swimmer order
func (r *Runner) GatherAllTimes(ctx context.Context, ids []string) ([]models.SwimRow, *Report) {
	report := newReport("all-times", r.now)
	defer func() { report.Finished = r.now() }()

	var rows []models.SwimRow
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}

		log := r.logger.With(zap.String("swimmer_id", id), zap.Int("n", i+1), zap.Int("of", len(ids)))
		swims, err := r.src.SwimmerAllTimes(ctx, id)
		if err != nil {
			log.Error("failed to fetch swims", zap.Error(err))
			report.fail(id, err)
			continue
		}
		if len(swims) == 0 {
			log.Info("no data")
			report.skip(id, "no data")
			continue
		}

		log.Info("fetched swims", zap.Int("rows", len(swims)))
		rows = append(rows, swims...)
		report.ok(id, len(swims))
	}
	return rows, report
}

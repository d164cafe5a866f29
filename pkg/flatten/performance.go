package flatten

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/myusername/swim-scraper/pkg/models"
)

// DecodePerformance decodes a team performance response body. Members are
// read leniently: a value of an unexpected kind, or a number given as a
// string, is converted when possible and left absent otherwise, so one odd
// field never drops the rankings.
func DecodePerformance(body []byte) ([]models.Performance, error) {
	raws, err := recordList(body)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Performance, 0, len(raws))
	for i, raw := range raws {
		fields, err := recordFields(i, raw)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.Performance{
			ID:          looseInt(i, fields, "id"),
			Score:       looseFloat(i, fields, "score"),
			Gender:      looseText(i, fields, "gender"),
			AgeGroup:    looseText(i, fields, "agegroup"),
			TeamID:      looseInt(i, fields, "team_id"),
			SeasonID:    looseInt(i, fields, "season_id"),
			RankType:    looseText(i, fields, "rank_type"),
			EventCourse: looseText(i, fields, "event_course"),
			Place:       looseInt(i, fields, "place"),
			UpdatedAt:   looseText(i, fields, "updated_at"),
			CreatedAt:   looseText(i, fields, "created_at"),
		})
	}
	return rows, nil
}

func looseText(index int, fields map[string]json.RawMessage, key string) *string {
	text, _, err := textField(index, fields, key)
	if err != nil {
		return nil
	}
	return text
}

func looseFloat(index int, fields map[string]json.RawMessage, key string) *float64 {
	text := looseText(index, fields, key)
	if text == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func looseInt(index int, fields map[string]json.RawMessage, key string) *int {
	f := looseFloat(index, fields, key)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	n := int(*f)
	return &n
}

// Package flatten decodes swimcloud swimmer time responses and flattens them
// into uniform swim rows
package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/myusername/swim-scraper/pkg/models"
)

// ErrUnrecognizedShape is returned when a response does not carry a list of records
var ErrUnrecognizedShape = errors.New("could not locate a list of records in response")

// FieldError reports a record member whose JSON kind does not match what the
// record type expects
type FieldError struct {
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var (
	errNotScalar  = errors.New("expected a string or number")
	errNotInteger = errors.New("expected an integer")
)

// DecodeFastestTimes decodes a profile_fastest_times response body
func DecodeFastestTimes(body []byte) ([]models.FastestTimeRecord, error) {
	raws, err := recordList(body)
	if err != nil {
		return nil, err
	}

	recs := make([]models.FastestTimeRecord, 0, len(raws))
	for i, raw := range raws {
		fields, err := recordFields(i, raw)
		if err != nil {
			return nil, err
		}
		rec, err := decodeFastest(i, fields)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DecodeEventTimes decodes a times_by_event response body
func DecodeEventTimes(body []byte) ([]models.EventTimeRecord, error) {
	raws, err := recordList(body)
	if err != nil {
		return nil, err
	}

	recs := make([]models.EventTimeRecord, 0, len(raws))
	for i, raw := range raws {
		fields, err := recordFields(i, raw)
		if err != nil {
			return nil, err
		}
		base, err := decodeFastest(i, fields)
		if err != nil {
			return nil, err
		}
		rec := models.EventTimeRecord{FastestTimeRecord: base}
		if rec.Heat, err = integerField(i, fields, "heat"); err != nil {
			return nil, err
		}
		if rec.Lane, err = integerField(i, fields, "lane"); err != nil {
			return nil, err
		}
		if rec.Place, err = integerField(i, fields, "place"); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// recordList locates the list of records in a response. The list is either
// the whole document, the "results" or "times" member of an object, or the
// only array valued member of an object.
func recordList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrUnrecognizedShape
	}

	switch body[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode record list: %w", err)
		}
		return list, nil
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(body, &members); err != nil {
			return nil, fmt.Errorf("decode response object: %w", err)
		}
		for _, key := range []string{"results", "times"} {
			if raw, ok := members[key]; ok && isArray(raw) {
				return arrayOf(raw)
			}
		}
		var found []json.RawMessage
		for _, raw := range members {
			if isArray(raw) {
				found = append(found, raw)
			}
		}
		if len(found) == 1 {
			return arrayOf(found[0])
		}
	}
	return nil, ErrUnrecognizedShape
}

func arrayOf(raw json.RawMessage) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode record list: %w", err)
	}
	return list, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func recordFields(index int, raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("record %d: %w", index, ErrUnrecognizedShape)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("record %d: %w", index, err)
	}
	return fields, nil
}

func decodeFastest(index int, fields map[string]json.RawMessage) (models.FastestTimeRecord, error) {
	var rec models.FastestTimeRecord
	var err error

	plain := []struct {
		key string
		dst **string
	}{
		{"eventgender", &rec.EventGender},
		{"eventdistance", &rec.EventDistance},
		{"eventcourse", &rec.EventCourse},
		{"eventstroke", &rec.EventStroke},
		{"time", &rec.Time},
		{"date_created", &rec.DateCreated},
		{"name", &rec.Name},
	}
	for _, f := range plain {
		if *f.dst, _, err = textField(index, fields, f.key); err != nil {
			return rec, err
		}
	}

	// Primary members of a fallback pair are only kept when truthy so that
	// the alternate member takes over for null, "" and 0
	primary := []struct {
		key string
		dst **string
	}{
		{"eventtime", &rec.EventTime},
		{"dateofswim", &rec.DateOfSwim},
		{"meet_name", &rec.MeetName},
	}
	for _, f := range primary {
		value, truthy, err := textField(index, fields, f.key)
		if err != nil {
			return rec, err
		}
		if truthy {
			*f.dst = value
		}
	}

	if rec.SeasonID, err = integerField(index, fields, "season_id"); err != nil {
		return rec, err
	}
	return rec, nil
}

// textField returns the literal text of a string or number member and
// whether the value is truthy
func textField(index int, fields map[string]json.RawMessage, key string) (*string, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, false, nil
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return nil, false, &FieldError{Index: index, Field: key, Err: err}
	}

	switch v := value.(type) {
	case nil:
		return nil, false, nil
	case string:
		return &v, v != "", nil
	case json.Number:
		text := v.String()
		f, err := v.Float64()
		return &text, err != nil || f != 0, nil
	}
	return nil, false, &FieldError{Index: index, Field: key, Err: errNotScalar}
}

// integerField decodes an integer member given as a JSON number or a numeric
// string. An empty string counts as absent.
func integerField(index int, fields map[string]json.RawMessage, key string) (*int, error) {
	text, _, err := textField(index, fields, key)
	if err != nil || text == nil || *text == "" {
		return nil, err
	}
	n, err := strconv.Atoi(*text)
	if err != nil {
		return nil, &FieldError{Index: index, Field: key, Err: errNotInteger}
	}
	return &n, nil
}

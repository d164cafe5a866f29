package codec

import (
	"fmt"
	"strconv"
)

var strokeNames = map[string]string{
	"1": "Free",
	"2": "Back",
	"3": "Breast",
	"4": "Fly",
	"5": "IM",
}

// SeasonEpoch is the calendar year of season 0
const SeasonEpoch = 1996

// GenderCode maps an eventgender value to the numeric code used in event tokens
func GenderCode(gender string) int {
	switch gender {
	case "M":
		return 1
	case "F":
		return 2
	}
	return 0
}

// StrokeName returns the stroke name for a numeric stroke code. Unknown codes
// are returned unchanged.
func StrokeName(code string) string {
	if name, ok := strokeNames[code]; ok {
		return name
	}
	return code
}

// EventToken builds the "gender|distance|course|stroke" token used by the
// times_by_event endpoint. Distance, course and stroke are passed through as is.
func EventToken(gender, distance, course, stroke string) string {
	return fmt.Sprintf("%d|%s|%s|%s", GenderCode(gender), distance, course, stroke)
}

// EventName builds a label such as "50 Y Free" from raw event fields
func EventName(distance, course, stroke string) string {
	return fmt.Sprintf("%s %s %s", distance, course, StrokeName(stroke))
}

// SeasonID converts a calendar year to a swimcloud season ID
func SeasonID(year int) int {
	return year - SeasonEpoch
}

// Year converts a swimcloud season ID to its calendar year
func Year(seasonID int) int {
	return seasonID + SeasonEpoch
}

// FormatSeason renders a season ID the way it appears in query strings
func FormatSeason(seasonID int) string {
	return strconv.Itoa(seasonID)
}

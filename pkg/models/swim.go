// Package models contains data structures for swim results, rosters and reference data
package models

// FastestTimeRecord is one entry of the profile_fastest_times response.
// Every member is optional since the upstream schema is not fixed; scalar
// values are kept as their literal text.
type FastestTimeRecord struct {
	EventGender   *string
	EventDistance *string
	EventCourse   *string
	EventStroke   *string

	EventTime   *string
	Time        *string
	DateOfSwim  *string
	DateCreated *string
	MeetName    *string
	Name        *string
	SeasonID    *int
}

// EventTimeRecord is one entry of the times_by_event response
type EventTimeRecord struct {
	FastestTimeRecord

	Heat  *int
	Lane  *int
	Place *int
}

// EventToken identifies one distinct event a swimmer has swum
type EventToken struct {
	SwimmerID     string
	Token         string
	Label         string
	EventDistance *string
	EventStroke   *string
	EventCourse   *string
	EventGender   *string
}

// SwimRow is the flat row produced for a single swim
type SwimRow struct {
	SwimmerID     string
	EventLabel    string
	EventDistance *string
	EventCourse   *string
	EventStroke   string
	EventGender   *string
	EventTime     *string
	Seconds       *float64
	DateOfSwim    *string
	MeetName      *string
	SeasonID      *int
	Heat          *int
	Lane          *int
	Place         *int
}

// MeetResult holds one result line read from a meet results PDF
type MeetResult struct {
	Event       string
	Place       *int
	SwimmerName string
	Age         string
	Team        string
	SeedTime    *float64
	FinalTime   *float64
	RawFinal    string
}

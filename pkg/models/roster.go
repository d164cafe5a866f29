package models

// RosterEntry holds one swimmer listed on a team roster
type RosterEntry struct {
	SwimmerName   string
	SwimmerID     string
	TeamName      string
	TeamID        int
	Grade         string
	HometownState string
	HometownCity  string
	HSPowerIndex  *float64

	// Filled in by the batch drivers
	Gender string
	Year   int
}

// Recruit holds one entry of the high school recruiting rankings
type Recruit struct {
	SwimmerName   string
	SwimmerID     string
	TeamName      string
	TeamID        string
	HometownState *string
	HometownCity  *string
	HSPowerIndex  *float64

	// Filled in by the batch drivers
	Gender    string
	ClassYear int
}

// Team is one row of the college teams reference table
type Team struct {
	Name         string
	ID           int
	State        string
	Division     string
	DivisionID   string
	Conference   string
	ConferenceID string
}

// TeamRanking is one row of the national team rankings page
type TeamRanking struct {
	TeamName string
	TeamID   string
	Points   string
}

// Performance is one entry of the team performance rankings API
type Performance struct {
	ID          *int     `json:"id"`
	Score       *float64 `json:"score"`
	Gender      *string  `json:"gender"`
	AgeGroup    *string  `json:"agegroup"`
	TeamID      *int     `json:"team_id"`
	SeasonID    *int     `json:"season_id"`
	RankType    *string  `json:"rank_type"`
	EventCourse *string  `json:"event_course"`
	Place       *int     `json:"place"`
	UpdatedAt   *string  `json:"updated_at"`
	CreatedAt   *string  `json:"created_at"`
}

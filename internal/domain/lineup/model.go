package lineup

// Record ties a player to the match they appeared in, one row per player per
// team sheet. Substitution fields stay nil for players who were never
// involved in a swap.
type Record struct {
	MatchID                 int    `validate:"required,gt=0"`
	TeamID                  int    `validate:"required,gt=0"`
	PlayerID                int    `validate:"required,gt=0"`
	PlayerName              string `validate:"required"`
	PlayerPosition          string `validate:"required"`
	Field                   string `validate:"required"`
	FirstEleven             bool
	SubbedInPlayerID        *float64
	SubbedInPeriod          *string
	SubbedInExpandedMinute  *float64
	SubbedOutPlayerID       *float64
	SubbedOutPeriod         *string
	SubbedOutExpandedMinute *float64
}

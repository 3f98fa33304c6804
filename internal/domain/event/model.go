package event

// Qualifier is one flattened event qualifier. Value is empty when the raw
// qualifier carries no value.
type Qualifier struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// Record is a single on-pitch event. Pointer fields are genuinely optional in
// the source payload and stay NULL in storage when absent.
type Record struct {
	EventID         int      `validate:"required,gt=0"`
	MatchID         int      `validate:"required,gt=0"`
	Minute          int      `validate:"gte=0"`
	Second          *float64 `validate:"omitempty,gte=0"`
	ExpandedMinute  int      `validate:"gte=0"`
	TeamID          int      `validate:"required,gt=0"`
	PlayerID        int      `validate:"required,gt=0"`
	RelatedPlayerID *float64
	X               float64 `validate:"gte=0"`
	Y               float64 `validate:"gte=0"`
	EndX            *float64
	EndY            *float64
	BlockedX        *float64
	BlockedY        *float64
	GoalMouthZ      *float64
	GoalMouthY      *float64
	Qualifiers      []Qualifier
	IsTouch         bool
	IsShot          bool
	IsGoal          bool
	CardType        bool
	Type            string `validate:"required"`
	OutcomeType     string `validate:"required"`
	Period          string `validate:"required"`
}

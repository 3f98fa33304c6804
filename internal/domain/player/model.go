package player

// Record is one entry of a match roster, flattened from the home and away
// team sheets.
type Record struct {
	PlayerID int    `validate:"required,gt=0"`
	ShirtNo  int    `validate:"gte=0"`
	Name     string `validate:"required"`
	Age      int    `validate:"gte=0"`
	Height   int    `validate:"gte=0"`
	Weight   int    `validate:"gte=0"`
	TeamID   int    `validate:"required,gt=0"`
}

package game

// Settings carries the tunable rules constants for a match.
type Settings struct {
	MaxCredits       int
	StartingCredits  int
	CreditsPerTurn   int
	MaxHandSize      int
	StartingHandSize int
	BattlefieldSlots int
	MaxTurns         int
}

// DefaultSettings returns the baseline rule set.
func DefaultSettings() Settings {
	return Settings{
		MaxCredits:       20,
		StartingCredits:  5,
		CreditsPerTurn:   3,
		MaxHandSize:      7,
		StartingHandSize: 4,
		BattlefieldSlots: 5,
		MaxTurns:         50,
	}
}

package engine

import "fmt"

// Config holds the ruleset for one game. It is read-only once the game exists.
type Config struct {
	PlayerCount             int `json:"player_count" yaml:"player_count"`
	PointsToWin             int `json:"points_to_win" yaml:"points_to_win"`
	MaxCharacterRepetitions int `json:"max_character_repetitions" yaml:"max_character_repetitions"`
	MaxArsenalItems         int `json:"max_arsenal_items" yaml:"max_arsenal_items"`
}

func DefaultConfig() Config {
	return Config{
		PlayerCount:             2,
		PointsToWin:             5,
		MaxCharacterRepetitions: 3,
		MaxArsenalItems:         2,
	}
}

// Validate rejects rulesets the engine cannot resolve. Characters must end up
// distinct, so there can be no more players than characters.
func (c Config) Validate() error {
	switch {
	case c.PlayerCount < 2 || c.PlayerCount > characterCount:
		return fmt.Errorf("%w: player_count must be between 2 and %d, got %d",
			ErrInvalidConfig, characterCount, c.PlayerCount)
	case c.PointsToWin < 1:
		return fmt.Errorf("%w: points_to_win must be positive, got %d", ErrInvalidConfig, c.PointsToWin)
	case c.MaxCharacterRepetitions < 1:
		return fmt.Errorf("%w: max_character_repetitions must be positive, got %d",
			ErrInvalidConfig, c.MaxCharacterRepetitions)
	case c.MaxArsenalItems < 1:
		return fmt.Errorf("%w: max_arsenal_items must be positive, got %d", ErrInvalidConfig, c.MaxArsenalItems)
	}
	return nil
}

// Deductions returns how many points to take from each player given their
// post-gain totals. Below the threshold nothing is deducted. Otherwise every
// player loses the leader's excess, plus one more when the lead is tied so
// nobody can win on a tied top score.
func (c Config) Deductions(points []int) []int {
	deductions := make([]int, len(points))
	if len(points) == 0 {
		return deductions
	}
	top := points[0]
	for _, p := range points[1:] {
		if p > top {
			top = p
		}
	}
	if top < c.PointsToWin {
		return deductions
	}
	leaders := 0
	for _, p := range points {
		if p == top {
			leaders++
		}
	}
	d := top - c.PointsToWin
	if leaders > 1 {
		d++
	}
	for i := range deductions {
		deductions[i] = d
	}
	return deductions
}

package engine

import "errors"

// ErrStreakCapped is returned when a character is repeated past the cap.
var ErrStreakCapped = errors.New("character repeated too many times")

// CharacterStreak counts consecutive picks of the same character.
type CharacterStreak struct {
	Character Character `json:"character"`
	Times     int       `json:"times"`
}

// streak is the per-player counter; nil means no pick yet.
type streak struct {
	current *CharacterStreak
}

// choices returns every character except one whose streak reached maxTimes.
func (s streak) choices(maxTimes int) []Character {
	all := AllCharacters()
	if s.current == nil || s.current.Times < maxTimes {
		return all
	}
	out := all[:0]
	for _, c := range all {
		if c != s.current.Character {
			out = append(out, c)
		}
	}
	return out
}

// choose records a pick. Only repeating the capped character fails.
func (s *streak) choose(maxTimes int, c Character) error {
	switch {
	case s.current == nil:
		s.current = &CharacterStreak{Character: c, Times: 1}
	case s.current.Character == c:
		if s.current.Times >= maxTimes {
			return ErrStreakCapped
		}
		s.current.Times++
	default:
		s.current.Character = c
		s.current.Times = 1
	}
	return nil
}

func (s streak) snapshot() *CharacterStreak {
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

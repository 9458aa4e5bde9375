package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownName is returned when decoding a name that matches nothing.
var ErrUnknownName = errors.New("unknown name")

func (c Character) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Character) UnmarshalText(b []byte) error {
	v, ok := ParseCharacter(string(b))
	if !ok {
		return fmt.Errorf("%w: character %q", ErrUnknownName, b)
	}
	*c = v
	return nil
}

func (b Booster) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Booster) UnmarshalText(text []byte) error {
	v, ok := ParseBooster(string(text))
	if !ok {
		return fmt.Errorf("%w: booster %q", ErrUnknownName, text)
	}
	*b = v
	return nil
}

func (m Move) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Move) UnmarshalText(b []byte) error {
	v, ok := ParseMove(string(b))
	if !ok {
		return fmt.Errorf("%w: move %q", ErrUnknownName, b)
	}
	*m = v
	return nil
}

func (p GamePhase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *GamePhase) UnmarshalText(b []byte) error {
	key := normalizeName(string(b))
	for phase, name := range phaseNames {
		if normalizeName(name) == key {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("%w: phase %q", ErrUnknownName, b)
}

// ParseArsenalItem accepts "Mirror" or a move name.
func ParseArsenalItem(s string) (ArsenalItem, error) {
	if normalizeName(s) == "mirror" {
		return MirrorItem(), nil
	}
	m, ok := ParseMove(s)
	if !ok {
		return ArsenalItem{}, fmt.Errorf("%w: arsenal item %q", ErrUnknownName, s)
	}
	return MoveItem(m), nil
}

func (a ArsenalItem) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ArsenalItem) UnmarshalText(b []byte) error {
	v, err := ParseArsenalItem(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAction accepts "Concede", "Mirror(<move>)" or a move name.
func ParseAction(s string) (Action, error) {
	if normalizeName(s) == "concede" {
		return ConcedeAction(), nil
	}
	if inner, ok := unwrapCall(s, "mirror"); ok {
		m, ok := ParseMove(inner)
		if !ok {
			return Action{}, fmt.Errorf("%w: mirrored move %q", ErrUnknownName, inner)
		}
		return MirrorAction(m), nil
	}
	m, ok := ParseMove(s)
	if !ok {
		return Action{}, fmt.Errorf("%w: action %q", ErrUnknownName, s)
	}
	return MoveAction(m), nil
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseDequeueChoice accepts "decline", "just_exit" or "drain_and_exit(<item>)".
func ParseDequeueChoice(s string) (DequeueChoice, error) {
	switch normalizeName(s) {
	case "decline":
		return Decline(), nil
	case "just_exit", "justexit":
		return JustExit(), nil
	}
	for _, prefix := range []string{"drain_and_exit", "drainandexit"} {
		if inner, ok := unwrapCall(s, prefix); ok {
			item, err := ParseArsenalItem(inner)
			if err != nil {
				return DequeueChoice{}, err
			}
			return DrainAndExit(item), nil
		}
	}
	return DequeueChoice{}, fmt.Errorf("%w: dequeue choice %q", ErrUnknownName, s)
}

func (d DequeueChoice) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DequeueChoice) UnmarshalText(b []byte) error {
	v, err := ParseDequeueChoice(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// unwrapCall matches "name(inner)" case-insensitively and returns inner.
func unwrapCall(s, name string) (string, bool) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", false
	}
	if normalizeName(s[:open]) != name {
		return "", false
	}
	return s[open+1 : len(s)-1], true
}

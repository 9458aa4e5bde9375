package engine

// Character identifies one of the playable characters.
type Character int

const (
	CharacterNinja Character = iota
	CharacterZombie
	CharacterSamurai
	CharacterClown

	characterCount = int(CharacterClown) + 1
)

var characterNames = map[Character]string{
	CharacterNinja:   "Ninja",
	CharacterZombie:  "Zombie",
	CharacterSamurai: "Samurai",
	CharacterClown:   "Clown",
}

func (c Character) String() string {
	if s, ok := characterNames[c]; ok {
		return s
	}
	return "Unknown"
}

func (c Character) valid() bool {
	return c >= 0 && int(c) < characterCount
}

// AllCharacters returns the characters in table order.
func AllCharacters() []Character {
	return []Character{
		CharacterNinja, CharacterZombie, CharacterSamurai, CharacterClown,
	}
}

// Moves returns the character's three base moves.
func (c Character) Moves() []Move {
	switch c {
	case CharacterNinja:
		return []Move{MoveKick, MoveNinjaSword, MoveNunchucks}
	case CharacterZombie:
		return []Move{MoveRampage, MoveMuscle, MoveZap}
	case CharacterSamurai:
		return []Move{MoveSamuraiSword, MoveHelmet, MoveSmash}
	case CharacterClown:
		return []Move{MoveJugglingKnives, MoveAcidSpray, MoveNose}
	default:
		return nil
	}
}

// Boosters returns the boosters the character may pick, BoosterNone last.
func (c Character) Boosters() []Booster {
	switch c {
	case CharacterNinja:
		return []Booster{BoosterShadow, BoosterSpeedy, BoosterNone}
	case CharacterZombie:
		return []Booster{BoosterRegenerative, BoosterZombieCorps, BoosterNone}
	case CharacterSamurai:
		return []Booster{BoosterAtlas, BoosterStrong, BoosterNone}
	case CharacterClown:
		return []Booster{BoosterBackwards, BoosterMoustachio, BoosterNone}
	default:
		return nil
	}
}

// PointsAgainst returns the headstart c earns against other.
func (c Character) PointsAgainst(other Character) int {
	if !c.valid() || !other.valid() {
		return 0
	}
	return int(characterHeadstarts[int(other)*characterCount+int(c)])
}

// ParseCharacter resolves a character name, ignoring case and whitespace.
func ParseCharacter(s string) (Character, bool) {
	key := normalizeName(s)
	for c, name := range characterNames {
		if normalizeName(name) == key {
			return c, true
		}
	}
	return 0, false
}

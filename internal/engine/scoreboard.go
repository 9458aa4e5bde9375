package engine

// Scoreboard is a detached, serializable snapshot of every player.
type Scoreboard struct {
	Phase   GamePhase    `json:"phase"`
	Players []PlayerView `json:"players"`
}

// PlayerView holds whatever the player's current shape exposes.
type PlayerView struct {
	Streak    *CharacterStreak `json:"streak,omitempty"`
	Points    int              `json:"points"`
	Character *Character       `json:"character,omitempty"`
	Booster   *Booster         `json:"booster,omitempty"`
	Arsenal   []ArsenalItem    `json:"arsenal,omitempty"`
	Queue     *QueueView       `json:"queue,omitempty"`
}

// QueueView is the exported form of a Queue.
type QueueView struct {
	Entrance *ArsenalItem  `json:"entrance"`
	Pool     []ArsenalItem `json:"pool"`
	Exit     *ArsenalItem  `json:"exit"`
}

// Scoreboard returns a snapshot of the game. Mutating it does not affect g.
func (g *Game) Scoreboard() Scoreboard {
	sb := Scoreboard{Phase: g.phase}
	switch g.phase {
	case PhaseCharacter:
		for _, p := range g.characterless {
			sb.Players = append(sb.Players, PlayerView{Streak: p.streak.snapshot()})
		}
	case PhaseBooster:
		for _, p := range g.boosterless {
			c := p.character
			sb.Players = append(sb.Players, PlayerView{Points: p.points, Character: &c})
		}
	case PhaseDequeue:
		for _, p := range g.dequeueing {
			sb.Players = append(sb.Players, p.loadout.view())
		}
	case PhaseAction:
		for _, p := range g.actionless {
			sb.Players = append(sb.Players, p.loadout.view())
		}
	case PhaseFinal:
		for _, p := range g.finished {
			sb.Players = append(sb.Players, p.loadout.view())
		}
	}
	return sb
}

func (l *loadout) view() PlayerView {
	c, b := l.character, l.booster
	arsenal := make([]ArsenalItem, len(l.arsenal))
	copy(arsenal, l.arsenal)
	return PlayerView{
		Points:    l.points,
		Character: &c,
		Booster:   &b,
		Arsenal:   arsenal,
		Queue: &QueueView{
			Entrance: copyItem(l.queue.entrance),
			Pool:     l.queue.Pool(),
			Exit:     copyItem(l.queue.exit),
		},
	}
}

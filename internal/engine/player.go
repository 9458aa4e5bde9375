package engine

// Player shapes. Each shape exposes only the choice valid in its phase and is
// consumed by its conversion into the next shape; using a consumed shape
// panics.

type spent bool

func (s *spent) consume() {
	if *s {
		panic("engine: player used after conversion")
	}
	*s = true
}

func (s spent) check() {
	if s {
		panic("engine: player used after conversion")
	}
}

// CharacterlessPlayer has not settled on a character yet.
type CharacterlessPlayer struct {
	config Config
	streak streak
	used   spent
}

func NewCharacterlessPlayer(config Config) *CharacterlessPlayer {
	return &CharacterlessPlayer{config: config}
}

// Choices returns the characters the player may pick.
func (p *CharacterlessPlayer) Choices() []Character {
	p.used.check()
	return p.streak.choices(p.config.MaxCharacterRepetitions)
}

// Streak returns the current repetition streak, if any.
func (p *CharacterlessPlayer) Streak() *CharacterStreak {
	p.used.check()
	return p.streak.snapshot()
}

// AddToStreak records a pick that did not resolve the phase.
func (p *CharacterlessPlayer) AddToStreak(c Character) error {
	p.used.check()
	return p.streak.choose(p.config.MaxCharacterRepetitions, c)
}

// IntoBoosterless consumes p.
func (p *CharacterlessPlayer) IntoBoosterless(h CharacterHeadstart) *BoosterlessPlayer {
	p.used.consume()
	return &BoosterlessPlayer{
		config:    p.config,
		points:    h.Headstart,
		character: h.Character,
	}
}

// BoosterlessPlayer has a character and its headstart.
type BoosterlessPlayer struct {
	config    Config
	points    int
	character Character
	used      spent
}

func (p *BoosterlessPlayer) Points() int {
	p.used.check()
	return p.points
}

func (p *BoosterlessPlayer) Character() Character {
	p.used.check()
	return p.character
}

// Choices returns the boosters the character allows.
func (p *BoosterlessPlayer) Choices() []Booster {
	p.used.check()
	return p.character.Boosters()
}

// IntoDequeueChoiceless consumes p and builds the initial arsenal.
func (p *BoosterlessPlayer) IntoDequeueChoiceless(b Booster) *DequeueChoicelessPlayer {
	p.used.consume()
	return &DequeueChoicelessPlayer{loadout: loadout{
		config:    p.config,
		points:    p.points,
		character: p.character,
		booster:   b,
		arsenal:   initialArsenal(p.character, b),
		queue:     NewQueue(),
	}}
}

func initialArsenal(c Character, b Booster) []ArsenalItem {
	moves := append(c.Moves(), b.Moves()...)
	moves = b.ReplaceMoves(moves)
	arsenal := make([]ArsenalItem, len(moves))
	for i, m := range moves {
		arsenal[i] = MoveItem(m)
	}
	return arsenal
}

// loadout is the state shared by the three shapes after boosters.
type loadout struct {
	config    Config
	points    int
	character Character
	booster   Booster
	arsenal   []ArsenalItem
	queue     Queue
	used      spent
}

func (l *loadout) Points() int {
	l.used.check()
	return l.points
}

func (l *loadout) Character() Character {
	l.used.check()
	return l.character
}

func (l *loadout) Booster() Booster {
	l.used.check()
	return l.booster
}

// Arsenal returns a copy of the items the player can spend.
func (l *loadout) Arsenal() []ArsenalItem {
	l.used.check()
	out := make([]ArsenalItem, len(l.arsenal))
	copy(out, l.arsenal)
	return out
}

// Queue returns a copy of the player's queue.
func (l *loadout) Queue() Queue {
	l.used.check()
	return l.queue.clone()
}

// take copies the loadout out of a shape and marks the shape consumed.
func (l *loadout) take() loadout {
	out := *l
	l.used.consume()
	return out
}

// DequeueChoicelessPlayer is deciding whether to pull an item out of the queue.
type DequeueChoicelessPlayer struct {
	loadout
}

// canDequeue: the arsenal has room, or the exit holds nothing that could
// overflow it.
func (p *DequeueChoicelessPlayer) canDequeue() bool {
	return len(p.arsenal) < p.config.MaxArsenalItems || p.queue.ExitVacant()
}

// Choices returns one drain per pool item, then JustExit and Decline, or only
// Decline when the player may not dequeue.
func (p *DequeueChoicelessPlayer) Choices() []DequeueChoice {
	p.used.check()
	if !p.canDequeue() {
		return []DequeueChoice{Decline()}
	}
	choices := make([]DequeueChoice, 0, len(p.queue.pool)+2)
	for _, item := range p.queue.pool {
		choices = append(choices, DrainAndExit(item))
	}
	return append(choices, JustExit(), Decline())
}

// IntoActionless consumes p, applying choice to the queue. The choice must be
// one of Choices().
func (p *DequeueChoicelessPlayer) IntoActionless(choice DequeueChoice) *ActionlessPlayer {
	l := p.take()
	exiting, err := l.queue.Dequeue(choice)
	if err != nil {
		panic("engine: dequeue choice not offered: " + err.Error())
	}
	if exiting != nil {
		l.arsenal = append(l.arsenal, *exiting)
	}
	return &ActionlessPlayer{loadout: l}
}

// ActionlessPlayer is picking an action for the round.
type ActionlessPlayer struct {
	loadout
}

// Choices returns a Move action per non-Mirror arsenal item and, when the
// arsenal holds a Mirror, a Mirror action per move in the pool. Concede is
// offered only when nothing else is.
func (p *ActionlessPlayer) Choices() []Action {
	p.used.check()
	var actions []Action
	hasMirror := false
	for _, item := range p.arsenal {
		if item.Mirror {
			hasMirror = true
			continue
		}
		actions = append(actions, MoveAction(item.Move))
	}
	if hasMirror {
		for _, item := range p.queue.pool {
			if !item.Mirror {
				actions = append(actions, MirrorAction(item.Move))
			}
		}
	}
	if len(actions) == 0 {
		actions = append(actions, ConcedeAction())
	}
	return actions
}

// IntoDequeueChoiceless consumes p after a round that did not end the game.
func (p *ActionlessPlayer) IntoDequeueChoiceless(r ActionResult) *DequeueChoicelessPlayer {
	l := p.take()
	l.settle(r)
	return &DequeueChoicelessPlayer{loadout: l}
}

// IntoFinished consumes p after the deciding round.
func (p *ActionlessPlayer) IntoFinished(r ActionResult) *FinishedPlayer {
	l := p.take()
	l.settle(r)
	return &FinishedPlayer{loadout: l}
}

// settle spends the action's item and applies the point change. Points never
// drop below zero.
func (l *loadout) settle(r ActionResult) {
	item, ok := r.Action.item()
	if ok {
		for i, a := range l.arsenal {
			if a == item {
				l.arsenal = append(l.arsenal[:i], l.arsenal[i+1:]...)
				break
			}
		}
	}
	if !r.Destroyed {
		if ok {
			l.queue.Enqueue(&item)
		} else {
			l.queue.Enqueue(nil)
		}
	}
	l.points += r.Points
	if l.points < 0 {
		l.points = 0
	}
}

// FinishedPlayer is the read-only end-of-game shape.
type FinishedPlayer struct {
	loadout
}

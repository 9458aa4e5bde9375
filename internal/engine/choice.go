package engine

import "fmt"

// ArsenalItem is either the Mirror capability or a specific move.
// Build values with MirrorItem and MoveItem so that == compares correctly.
type ArsenalItem struct {
	Mirror bool
	Move   Move
}

// MirrorItem returns the Mirror arsenal item.
func MirrorItem() ArsenalItem { return ArsenalItem{Mirror: true} }

// MoveItem returns the arsenal item for m.
func MoveItem(m Move) ArsenalItem { return ArsenalItem{Move: m} }

func (a ArsenalItem) String() string {
	if a.Mirror {
		return "Mirror"
	}
	return a.Move.String()
}

// ActionKind tags an Action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionMirror
	ActionConcede
)

var actionKindNames = map[ActionKind]string{
	ActionMove:    "move",
	ActionMirror:  "mirror",
	ActionConcede: "concede",
}

func (k ActionKind) String() string {
	if s, ok := actionKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is a player's choice during an Action phase.
type Action struct {
	Kind ActionKind
	Move Move
}

// MoveAction uses m from the arsenal.
func MoveAction(m Move) Action { return Action{Kind: ActionMove, Move: m} }

// MirrorAction echoes m from the queue pool using the Mirror item.
func MirrorAction(m Move) Action { return Action{Kind: ActionMirror, Move: m} }

// ConcedeAction is only legal when nothing else is.
func ConcedeAction() Action { return Action{Kind: ActionConcede} }

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return a.Move.String()
	case ActionMirror:
		return fmt.Sprintf("Mirror(%s)", a.Move)
	default:
		return "Concede"
	}
}

// PointsAgainst scores a against other. Concede scores nothing and concedes
// a point to every non-Concede action.
func (a Action) PointsAgainst(other Action) int {
	switch {
	case a.Kind == ActionConcede:
		return 0
	case other.Kind == ActionConcede:
		return 1
	default:
		return a.Move.PointsAgainst(other.Move)
	}
}

// item returns the arsenal item the action spends, if any.
func (a Action) item() (ArsenalItem, bool) {
	switch a.Kind {
	case ActionMove:
		return MoveItem(a.Move), true
	case ActionMirror:
		return MirrorItem(), true
	default:
		return ArsenalItem{}, false
	}
}

func (a Action) isDestructive() bool {
	return a.Kind != ActionConcede && a.Move.IsDestructive()
}

func (a Action) isSingleUse() bool {
	return a.Kind != ActionConcede && a.Move.IsSingleUse()
}

// whichDestroyed reports, per action, whether its spent item stays out of the
// queue: any destructive action in the batch destroys all of them, and a
// single-use action always destroys itself.
func whichDestroyed(actions []Action) []bool {
	anyDestructive := false
	for _, a := range actions {
		if a.isDestructive() {
			anyDestructive = true
			break
		}
	}
	destroyed := make([]bool, len(actions))
	for i, a := range actions {
		destroyed[i] = anyDestructive || a.isSingleUse()
	}
	return destroyed
}

// DequeueKind tags a DequeueChoice.
type DequeueKind int

const (
	DequeueDecline DequeueKind = iota
	DequeueJustExit
	DequeueDrainAndExit
)

var dequeueKindNames = map[DequeueKind]string{
	DequeueDecline:      "decline",
	DequeueJustExit:     "just_exit",
	DequeueDrainAndExit: "drain_and_exit",
}

func (k DequeueKind) String() string {
	if s, ok := dequeueKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// DequeueChoice is a player's queue decision before acting.
type DequeueChoice struct {
	Kind DequeueKind
	Item ArsenalItem
}

// Decline leaves the queue untouched.
func Decline() DequeueChoice { return DequeueChoice{Kind: DequeueDecline} }

// JustExit releases the exit item without draining the pool.
func JustExit() DequeueChoice { return DequeueChoice{Kind: DequeueJustExit} }

// DrainAndExit moves item from the pool into the exit slot.
func DrainAndExit(item ArsenalItem) DequeueChoice {
	return DequeueChoice{Kind: DequeueDrainAndExit, Item: item}
}

func (d DequeueChoice) String() string {
	if d.Kind == DequeueDrainAndExit {
		return fmt.Sprintf("%s(%s)", d.Kind, d.Item)
	}
	return d.Kind.String()
}

package engine

import "errors"

// ErrNotInPool is returned when draining an item the pool does not hold.
var ErrNotInPool = errors.New("item not in queue pool")

// Queue is a player's entrance/pool/exit pipeline for spent items.
// Pools compare as multisets; entrance and exit compare exactly.
type Queue struct {
	entrance *ArsenalItem
	pool     []ArsenalItem
	exit     *ArsenalItem
}

// NewQueue returns a queue whose pool holds a single Mirror.
func NewQueue() Queue {
	return Queue{pool: []ArsenalItem{MirrorItem()}}
}

// Enqueue folds the current entrance into the pool and makes item the new
// entrance. A nil item leaves the entrance empty.
func (q *Queue) Enqueue(item *ArsenalItem) {
	if q.entrance != nil {
		q.pool = append(q.pool, *q.entrance)
	}
	q.entrance = copyItem(item)
}

// Dequeue applies choice and returns the item leaving the exit slot, if any.
func (q *Queue) Dequeue(choice DequeueChoice) (*ArsenalItem, error) {
	switch choice.Kind {
	case DequeueDecline:
		return nil, nil
	case DequeueJustExit:
		out := q.exit
		q.exit = nil
		return out, nil
	case DequeueDrainAndExit:
		return q.drain(choice.Item)
	default:
		return nil, ErrIllegalChoice
	}
}

func (q *Queue) drain(item ArsenalItem) (*ArsenalItem, error) {
	for i, p := range q.pool {
		if p != item {
			continue
		}
		q.pool = append(q.pool[:i], q.pool[i+1:]...)
		out := q.exit
		q.exit = &item
		return out, nil
	}
	return nil, ErrNotInPool
}

// Pool returns a copy of the pool contents.
func (q Queue) Pool() []ArsenalItem {
	out := make([]ArsenalItem, len(q.pool))
	copy(out, q.pool)
	return out
}

// Entrance returns the entrance item, if any.
func (q Queue) Entrance() (ArsenalItem, bool) { return deref(q.entrance) }

// Exit returns the exit item, if any.
func (q Queue) Exit() (ArsenalItem, bool) { return deref(q.exit) }

// ExitVacant reports whether nothing is staged in the exit slot.
func (q Queue) ExitVacant() bool { return q.exit == nil }

// Equal compares entrance and exit exactly and pools as multisets.
func (q Queue) Equal(other Queue) bool {
	if !sameSlot(q.entrance, other.entrance) || !sameSlot(q.exit, other.exit) {
		return false
	}
	if len(q.pool) != len(other.pool) {
		return false
	}
	counts := make(map[ArsenalItem]int, len(q.pool))
	for _, item := range q.pool {
		counts[item]++
	}
	for _, item := range other.pool {
		counts[item]--
		if counts[item] < 0 {
			return false
		}
	}
	return true
}

// clone returns a deep copy.
func (q Queue) clone() Queue {
	return Queue{
		entrance: copyItem(q.entrance),
		pool:     q.Pool(),
		exit:     copyItem(q.exit),
	}
}

func copyItem(item *ArsenalItem) *ArsenalItem {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}

func deref(item *ArsenalItem) (ArsenalItem, bool) {
	if item == nil {
		return ArsenalItem{}, false
	}
	return *item, true
}

func sameSlot(a, b *ArsenalItem) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

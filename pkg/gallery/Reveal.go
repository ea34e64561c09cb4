package gallery

import "github.com/qmacanada/website/pkg/models"

type RevealState int

const (
	RevealPending RevealState = iota
	RevealRevealed
)

func (s RevealState) String() string {
	if s == RevealRevealed {
		return "revealed"
	}

	return "pending"
}

/*
RevealPolicy decides what an item's reveal state does once the item leaves
the visible set.
*/
type RevealPolicy int

const (
	// RevealPerMount forgets the state, so re-entering items replay the effect.
	RevealPerMount RevealPolicy = iota
	// RevealPerIdentity keeps the state for the life of the view model.
	RevealPerIdentity
)

func (p RevealPolicy) String() string {
	if p == RevealPerIdentity {
		return "identity"
	}

	return "mount"
}

func ParseRevealPolicy(value string) RevealPolicy {
	if value == "identity" {
		return RevealPerIdentity
	}

	return RevealPerMount
}

/*
RevealTracker holds the one-shot reveal state of each item. An item that
stays in the visible set never goes from revealed back to pending.
*/
type RevealTracker struct {
	policy   RevealPolicy
	present  map[models.MediaID]struct{}
	revealed map[models.MediaID]struct{}
}

func NewRevealTracker(policy RevealPolicy) *RevealTracker {
	return &RevealTracker{
		policy:   policy,
		present:  map[models.MediaID]struct{}{},
		revealed: map[models.MediaID]struct{}{},
	}
}

/*
Sync records the current visible set. Items that left it lose their reveal
state under RevealPerMount.
*/
func (t *RevealTracker) Sync(visible []models.MediaItem) {
	present := make(map[models.MediaID]struct{}, len(visible))

	for _, item := range visible {
		present[item.ID] = struct{}{}
	}

	if t.policy == RevealPerMount {
		for id := range t.revealed {
			if _, ok := present[id]; !ok {
				delete(t.revealed, id)
			}
		}
	}

	t.present = present
}

/*
MarkRevealed moves a visible item from pending to revealed. It returns true
only when the transition happened.
*/
func (t *RevealTracker) MarkRevealed(id models.MediaID) bool {
	if _, ok := t.present[id]; !ok {
		return false
	}

	if _, ok := t.revealed[id]; ok {
		return false
	}

	t.revealed[id] = struct{}{}
	return true
}

func (t *RevealTracker) State(id models.MediaID) RevealState {
	if _, ok := t.revealed[id]; ok {
		return RevealRevealed
	}

	return RevealPending
}

func (t *RevealTracker) Policy() RevealPolicy {
	return t.policy
}

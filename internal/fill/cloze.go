package fill

import (
	"fmt"
	"strings"

	"github.com/formlab/formbuilder-service/internal/models"
)

// ClozeBoard binds a fixed pool of option tokens to the ordered blank slots of
// one cloze sentence. Each option occupies at most one slot at a time; placing
// an already-used option moves it.
//
// The pool's cardinality is independent of the blank count. Surplus options
// simply stay available; with too few options some slots stay empty.
type ClozeBoard struct {
	sentence string
	options  []string
	slots    []string
}

// NewClozeBoard opens a board over a cloze question's content. Slot count
// follows the sentence's blanks, all initially empty.
func NewClozeBoard(content models.ClozeContent) *ClozeBoard {
	options := make([]string, len(content.Options))
	copy(options, content.Options)

	return &ClozeBoard{
		sentence: content.Sentence,
		options:  options,
		slots:    make([]string, models.CountBlanks(content.Sentence)),
	}
}

// Sentence returns the raw delimiter-marked sentence.
func (b *ClozeBoard) Sentence() string { return b.sentence }

// Options returns the full option pool, used or not.
func (b *ClozeBoard) Options() []string {
	out := make([]string, len(b.options))
	copy(out, b.options)
	return out
}

// Slots returns the current slot contents, "" for an empty slot.
func (b *ClozeBoard) Slots() []string {
	out := make([]string, len(b.slots))
	copy(out, b.slots)
	return out
}

// PlaceOption puts an option into the slot at index. If the option currently
// occupies another slot, that slot is cleared first; whatever the target slot
// held returns to the pool.
func (b *ClozeBoard) PlaceOption(index int, option string) error {
	if index < 0 || index >= len(b.slots) {
		return fmt.Errorf("slot index %d out of range for %d blanks", index, len(b.slots))
	}
	if !b.inPool(option) {
		return fmt.Errorf("option %q is not part of this question", option)
	}

	for i, slot := range b.slots {
		if slot == option && i != index {
			b.slots[i] = ""
		}
	}
	b.slots[index] = option
	return nil
}

// ClearSlot empties the slot at index, returning its option to the pool.
func (b *ClozeBoard) ClearSlot(index int) error {
	if index < 0 || index >= len(b.slots) {
		return fmt.Errorf("slot index %d out of range for %d blanks", index, len(b.slots))
	}
	b.slots[index] = ""
	return nil
}

// ReturnOption removes the option from whichever slot holds it. Clearing an
// option that is not placed is a no-op.
func (b *ClozeBoard) ReturnOption(option string) {
	for i, slot := range b.slots {
		if slot == option {
			b.slots[i] = ""
		}
	}
}

// UsedOptions returns the options currently occupying a slot, in slot order.
func (b *ClozeBoard) UsedOptions() []string {
	used := make([]string, 0, len(b.slots))
	for _, slot := range b.slots {
		if slot != "" {
			used = append(used, slot)
		}
	}
	return used
}

// Available reports whether the option is in the pool and not placed.
func (b *ClozeBoard) Available(option string) bool {
	if !b.inPool(option) {
		return false
	}
	for _, slot := range b.slots {
		if slot == option {
			return false
		}
	}
	return true
}

// Segments splits the sentence into the n+1 literal fragments around its n
// blanks. Fragment i is rendered immediately before slot i; the final fragment
// has no trailing slot.
func (b *ClozeBoard) Segments() []string {
	return strings.Split(b.sentence, models.BlankDelimiter)
}

// Filled reports whether every slot holds an option.
func (b *ClozeBoard) Filled() bool {
	for _, slot := range b.slots {
		if slot == "" {
			return false
		}
	}
	return true
}

// Answer snapshots the board as a cloze answer payload.
func (b *ClozeBoard) Answer() models.ClozeAnswer {
	answer := make(models.ClozeAnswer, len(b.slots))
	copy(answer, b.slots)
	return answer
}

func (b *ClozeBoard) inPool(option string) bool {
	for _, candidate := range b.options {
		if candidate == option {
			return true
		}
	}
	return false
}

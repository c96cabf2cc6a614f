// Package mask assigns logical buttons to bits of a shared chord word.
package mask

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/vivechord/model"
)

var (
	ErrUnknownButton = errors.New("unknown button")
	ErrDuplicate     = errors.New("button allocated twice")
	ErrOverflow      = errors.New("allocation exceeds chord word")
)

// An Allocator gives each id one bit, in list order, starting at offset.
// It never changes after New.
type Allocator[ID comparable] struct {
	offset uint
	ids    []ID
	masks  map[ID]model.Word
	all    model.Word
}

func New[ID comparable](offset uint, ids ...ID) (*Allocator[ID], error) {
	if offset+uint(len(ids)) > model.WordBits {
		return nil, fmt.Errorf("%w: %d bits from offset %d", ErrOverflow, len(ids), offset)
	}

	a := &Allocator[ID]{
		offset: offset,
		ids:    make([]ID, 0, len(ids)),
		masks:  make(map[ID]model.Word, len(ids)),
	}
	for _, id := range ids {
		if _, ok := a.masks[id]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, id)
		}
		m := model.Word(1) << (offset + uint(len(a.ids)))
		a.masks[id] = m
		a.ids = append(a.ids, id)
		a.all |= m
	}
	return a, nil
}

func (a *Allocator[ID]) For(id ID) (model.Word, error) {
	m, ok := a.masks[id]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownButton, id)
	}
	return m, nil
}

// MustFor is For for ids known at compile time.
func (a *Allocator[ID]) MustFor(id ID) model.Word {
	m, err := a.For(id)
	if err != nil {
		panic(err)
	}
	return m
}

func (a *Allocator[ID]) All() model.Word { return a.all }

func (a *Allocator[ID]) Offset() uint { return a.offset }

func (a *Allocator[ID]) Len() int { return len(a.ids) }

func (a *Allocator[ID]) IDs() []ID {
	ids := make([]ID, len(a.ids))
	copy(ids, a.ids)
	return ids
}

// DescribeMask lists the ids whose bits are set in w, e.g. "[Left,Right]".
// Bits owned by other allocators are ignored.
func (a *Allocator[ID]) DescribeMask(w model.Word) string {
	if w&a.all == 0 {
		return "[]"
	}

	var pressed []string
	for _, id := range a.ids {
		if w&a.masks[id] == 0 {
			continue
		}
		pressed = append(pressed, fmt.Sprint(id))
	}
	return "[" + strings.Join(pressed, ",") + "]"
}

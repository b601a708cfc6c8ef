package tetris

import (
	"fmt"
	"math/rand"
)

// Source is the random number source a Randomizer draws from.
// *rand.Rand satisfies it; tests can supply a scripted source.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded math/rand source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Randomizer picks piece types for the supply queue.
type Randomizer interface {
	Next() PieceType
}

// Randomizer names accepted by NewRandomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewRandomizer builds the randomizer registered under name.
func NewRandomizer(name string, src Source) (Randomizer, error) {
	switch name {
	case "", RandomizerUniform:
		return &Uniform{src: src}, nil
	case RandomizerBag:
		return &Bag{src: src}, nil
	}
	return nil, fmt.Errorf("tetris: unknown randomizer %q", name)
}

// Uniform draws every type with equal probability and no memory,
// so long runs of the same piece are possible.
type Uniform struct {
	src Source
}

// NewUniform returns a uniform randomizer over src.
func NewUniform(src Source) *Uniform {
	return &Uniform{src: src}
}

// Next returns a uniformly random piece type.
func (u *Uniform) Next() PieceType {
	return AllTypes[u.src.Intn(PieceTypeCount)]
}

// Bag deals all seven types in shuffled order before reshuffling.
type Bag struct {
	src Source
	bag []PieceType
}

// Next returns the next type from the current bag, refilling it when empty.
func (b *Bag) Next() PieceType {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], AllTypes[:]...)
		for i := len(b.bag) - 1; i > 0; i-- {
			j := b.src.Intn(i + 1)
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		}
	}
	t := b.bag[0]
	b.bag = b.bag[1:]
	return t
}

// Supply is the queue of upcoming piece types. It is filled at construction
// and refilled by one draw every time a type is taken, so it never runs dry.
type Supply struct {
	rnd   Randomizer
	queue []PieceType
}

// NewSupply creates a queue holding size upcoming types (at least one).
func NewSupply(rnd Randomizer, size int) *Supply {
	if size < 1 {
		size = 1
	}
	s := &Supply{rnd: rnd, queue: make([]PieceType, 0, size)}
	for range size {
		s.queue = append(s.queue, rnd.Next())
	}
	return s
}

// Next removes and returns the head of the queue, appending a fresh draw.
func (s *Supply) Next() PieceType {
	t := s.queue[0]
	s.queue = append(s.queue[1:], s.rnd.Next())
	return t
}

// Peek returns the head of the queue without consuming it.
func (s *Supply) Peek() PieceType {
	return s.queue[0]
}

// Len returns the number of queued types.
func (s *Supply) Len() int {
	return len(s.queue)
}

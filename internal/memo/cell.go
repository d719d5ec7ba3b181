// Package memo provides a two-state container for deferred, at-most-once
// conversion.
//
// A Cell starts out holding a source value of type T. The first (and
// only) toggle consumes the source value and replaces it with the
// converted value of type U; from then on the cell only hands out the
// converted value. A pattern scan can return many quads of which the
// caller inspects one or two fields, so deferring conversion avoids
// allocating for fields never read, while caching avoids reconverting
// fields read repeatedly.
//
// Cells are confined to a single goroutine. There is no internal
// synchronization; sharing a cell across goroutines requires an
// external lock.
package memo

// State reports which value a Cell currently holds.
type State int

const (
	// Unconverted: the cell still holds the source value.
	Unconverted State = iota
	// Converted: the cell holds the converted value.
	Converted
)

// Cell holds either an unconverted source value or the converted
// result. The transition is one-way and happens at most once.
type Cell[T, U any] struct {
	src       T
	converted U
	state     State
	poisoned  bool
}

// NewCell creates a cell holding src, in state Unconverted.
func NewCell[T, U any](src T) Cell[T, U] {
	return Cell[T, U]{src: src}
}

// State returns the cell's current state.
func (c *Cell[T, U]) State() State {
	c.checkUsable()
	return c.state
}

// Toggle converts the source value with f. The cell must be in state
// Unconverted; calling Toggle twice is a caller bug and panics.
func (c *Cell[T, U]) Toggle(f func(T) U) {
	c.checkUsable()
	if c.state == Converted {
		panic("memo: cell already converted")
	}
	c.converted = f(c.take())
	c.state = Converted
}

// TryToggle converts the source value with f, which may fail. The cell
// must be in state Unconverted. If f fails the source value has already
// been consumed: the cell is left unusable and any further call panics.
func (c *Cell[T, U]) TryToggle(f func(T) (U, error)) error {
	c.checkUsable()
	if c.state == Converted {
		panic("memo: cell already converted")
	}
	converted, err := f(c.take())
	if err != nil {
		c.poisoned = true
		return err
	}
	c.converted = converted
	c.state = Converted
	return nil
}

// Get returns a pointer to the converted value. The cell must be in
// state Converted.
func (c *Cell[T, U]) Get() *U {
	c.checkUsable()
	if c.state != Converted {
		panic("memo: cell not converted")
	}
	return &c.converted
}

// GetOrToggle returns the converted value, converting the source with
// f first if the cell is still Unconverted. Idempotent: f runs at most
// once over the cell's lifetime.
func (c *Cell[T, U]) GetOrToggle(f func(T) U) *U {
	c.checkUsable()
	if c.state != Converted {
		c.converted = f(c.take())
		c.state = Converted
	}
	return &c.converted
}

// GetOrTryToggle is GetOrToggle for fallible conversions. On failure
// the cell is left unusable, like TryToggle.
func (c *Cell[T, U]) GetOrTryToggle(f func(T) (U, error)) (*U, error) {
	c.checkUsable()
	if c.state != Converted {
		if err := c.TryToggle(f); err != nil {
			return nil, err
		}
	}
	return &c.converted, nil
}

// take consumes the source value so it is not retained after the
// transition.
func (c *Cell[T, U]) take() T {
	src := c.src
	var zero T
	c.src = zero
	return src
}

func (c *Cell[T, U]) checkUsable() {
	if c.poisoned {
		panic("memo: cell unusable after failed conversion")
	}
}

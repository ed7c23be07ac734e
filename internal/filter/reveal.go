package filter

// PageStep is how many more items each "show more" reveals.
const PageStep = 16

// Reveal is the prefix window of a listing. It grows by Step and resets
// whenever the upstream query key changes.
type Reveal struct {
	Step    int
	Visible int
	key     string
}

func NewReveal(step int) *Reveal {
	if step <= 0 {
		step = PageStep
	}
	return &Reveal{Step: step, Visible: step}
}

// Reset re-seeds the window when key differs from the last query key.
func (r *Reveal) Reset(key string) {
	if key == r.key {
		return
	}
	r.key = key
	r.Visible = r.Step
}

func (r *Reveal) More() {
	r.Visible += r.Step
}

// Window returns the visible prefix of items and whether more remain.
func Window[T any](items []T, visible int) ([]T, bool) {
	if visible < 0 {
		visible = 0
	}
	if visible >= len(items) {
		return items, false
	}
	return items[:visible], true
}

package core

import "sync"

// claims hands out exclusive ownership of workspace paths. A set of paths is acquired
// all at once, so two operations never hold overlapping sets and never deadlock on
// acquisition order.
type claims struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[string]bool
}

func newClaims() *claims {
	c := &claims{held: make(map[string]bool)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// acquire blocks until none of paths is held, marks them held and returns the release func.
// Duplicate paths are allowed.
func (c *claims) acquire(paths ...string) func() {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}

	c.mu.Lock()
	for c.anyHeld(set) {
		c.cond.Wait()
	}
	for p := range set {
		c.held[p] = true
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			for p := range set {
				delete(c.held, p)
			}
			c.mu.Unlock()
			c.cond.Broadcast()
		})
	}
}

func (c *claims) anyHeld(set map[string]bool) bool {
	for p := range set {
		if c.held[p] {
			return true
		}
	}
	return false
}

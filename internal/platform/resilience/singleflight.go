package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into one
// execution; every waiting caller receives that execution's result. The
// cache store uses it to stop a cold key from stampeding the database.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightCall
}

type flightCall struct {
	done sync.WaitGroup
	val  any
	err  error
}

// Do runs fn once per key among concurrent callers. The third return
// value reports whether the result was shared from another caller's run.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightCall)
	}

	if c, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		c.done.Wait()
		return c.val, c.err, true
	}

	c := &flightCall{}
	c.done.Add(1)
	g.inflight[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.done.Done()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return c.val, c.err, false
}

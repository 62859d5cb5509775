package service

import (
	"sync"
	"time"
)

type sessionLock struct {
	sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session id and forgets it once nobody holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.Lock()
	return func() {
		sl.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// dashboardRuntime holds the goroutine-bound resources of a mounted dashboard.
type dashboardRuntime struct {
	done     chan struct{}
	wfhTimer *time.Timer
	wfhSeq   uint64
}

// runtimeRegistry owns dashboard runtimes per session. Runtimes are local to this process.
// WFH sequence numbers come from one registry-wide counter so a timer armed for an earlier
// mount never matches an approval armed after a remount.
type runtimeRegistry struct {
	mu   sync.Mutex
	byID map[string]*dashboardRuntime
	seq  uint64
}

func newRuntimeRegistry() *runtimeRegistry {
	return &runtimeRegistry{byID: make(map[string]*dashboardRuntime)}
}

func (r *runtimeRegistry) acquireLocked(id string) *dashboardRuntime {
	rt, ok := r.byID[id]
	if !ok {
		rt = &dashboardRuntime{done: make(chan struct{})}
		r.byID[id] = rt
	}
	return rt
}

// done returns a channel closed when the session's dashboard is unmounted.
func (r *runtimeRegistry) done(id string) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquireLocked(id).done
}

// scheduleWFH arms the approval timer, replacing any pending one. fire receives the
// sequence number it was armed with.
func (r *runtimeRegistry) scheduleWFH(id string, delay time.Duration, fire func(seq uint64)) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt := r.acquireLocked(id)
	if rt.wfhTimer != nil {
		replaced = rt.wfhTimer.Stop()
	}
	r.seq++
	seq := r.seq
	rt.wfhSeq = seq
	rt.wfhTimer = time.AfterFunc(delay, func() { fire(seq) })
	return replaced
}

// cancelWFH stops a pending approval. It reports whether one was pending.
func (r *runtimeRegistry) cancelWFH(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.byID[id]
	if !ok || rt.wfhTimer == nil {
		return false
	}
	stopped := rt.wfhTimer.Stop()
	rt.wfhTimer = nil
	rt.wfhSeq = 0
	return stopped
}

// claimWFH reports whether seq is still the armed approval and disarms it.
func (r *runtimeRegistry) claimWFH(id string, seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.byID[id]
	if !ok || rt.wfhSeq != seq || rt.wfhTimer == nil {
		return false
	}
	rt.wfhTimer = nil
	return true
}

// release tears the runtime down: the pending approval is cancelled and streams are told to stop.
func (r *runtimeRegistry) release(id string) (cancelled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.byID[id]
	if !ok {
		return false
	}
	if rt.wfhTimer != nil {
		cancelled = rt.wfhTimer.Stop()
		rt.wfhTimer = nil
	}
	rt.wfhSeq = 0
	close(rt.done)
	delete(r.byID, id)
	return cancelled
}

// ids lists the sessions that currently hold a runtime.
func (r *runtimeRegistry) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	return out
}

func (r *runtimeRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"maps"
	"slices"
	"sync"
)

// Listeners is a set of subscribers for engine implementations.
type Listeners struct {
	mtx    sync.RWMutex
	nextID int
	subs   map[int]Listener
}

func (ls *Listeners) Add(l Listener) func() {
	ls.mtx.Lock()
	defer ls.mtx.Unlock()

	if ls.subs == nil {
		ls.subs = make(map[int]Listener)
	}
	id := ls.nextID
	ls.nextID++
	ls.subs[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			ls.mtx.Lock()
			defer ls.mtx.Unlock()
			delete(ls.subs, id)
		})
	}
}

// Emit delivers e to every listener in subscription order. The set is
// copied first so a listener may unsubscribe from inside HandleEvent.
func (ls *Listeners) Emit(e Event) {
	ls.mtx.RLock()
	ids := slices.Sorted(maps.Keys(ls.subs))
	subs := maps.Clone(ls.subs)
	ls.mtx.RUnlock()

	for _, id := range ids {
		subs[id].HandleEvent(e)
	}
}

package knntab

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/mlnotes/knn"
	"github.com/viant/mlnotes/store"
)

// ErrUnknownSet is returned when a table names a set that was never published.
var ErrUnknownSet = errors.New("knntab: training set not published")

var (
	catalogMu sync.RWMutex
	catalog   = make(map[string]*knn.NeighborSet)
)

// Publish makes a copy of set available to knn tables under name.
func Publish(name string, set *knn.NeighborSet) error {
	if name == "" {
		return fmt.Errorf("knntab: empty set name")
	}
	if set == nil || set.Len() == 0 {
		return fmt.Errorf("knntab: %s: %w", name, knn.ErrEmptyNeighborSet)
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalog[name] = set.Clone()
	return nil
}

// Withdraw removes name from the catalog. Tables already created keep their
// classifier.
func Withdraw(name string) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	delete(catalog, name)
}

// Published lists the catalog in name order.
func Published() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (*knn.NeighborSet, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	set, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSet, name)
	}
	return set, nil
}

// PublishStore loads the named sets (every stored set when none are given)
// and publishes them. It returns the published names.
func PublishStore(ctx context.Context, st *store.SQLiteStore, names ...string) ([]string, error) {
	if len(names) == 0 {
		var err error
		if names, err = st.Sets(ctx); err != nil {
			return nil, err
		}
	}
	var published []string
	for _, name := range names {
		set, err := st.Load(ctx, name)
		if err != nil {
			return published, err
		}
		if set.Len() == 0 {
			continue
		}
		if err := Publish(name, set); err != nil {
			return published, err
		}
		published = append(published, name)
	}
	return published, nil
}

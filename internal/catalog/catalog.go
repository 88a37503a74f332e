package catalog

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Integration describes one scripting integration offered to the user:
// a stable id, display text, and an example snippet.
type Integration struct {
	ID          string
	Title       string
	Description string
	Example     string
}

// Catalog is an ordered, immutable collection of integrations.
type Catalog struct {
	items []Integration
	byID  map[string]int
}

// New builds a catalog in the given order. Ids must be non-empty and unique.
func New(items ...Integration) (*Catalog, error) {
	c := &Catalog{
		items: append([]Integration(nil), items...),
		byID:  make(map[string]int, len(items)),
	}
	for i, it := range c.items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog: integration %d has empty id", i)
		}
		if _, ok := c.byID[id]; ok {
			return nil, fmt.Errorf("catalog: duplicate id %q", id)
		}
		c.byID[id] = i
	}
	return c, nil
}

// Integrations returns the entries in insertion order. The returned slice is
// a copy; callers cannot mutate the catalog through it.
func (c *Catalog) Integrations() []Integration {
	if c == nil {
		return nil
	}
	return append([]Integration(nil), c.items...)
}

// Len returns the number of integrations.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// ByID looks up an integration by id.
func (c *Catalog) ByID(id string) (Integration, bool) {
	if c == nil {
		return Integration{}, false
	}
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Integration{}, false
	}
	return c.items[i], true
}

// Nearest returns the known id closest to the query by edit distance, for
// "did you mean" suggestions, along with that distance. Returns false on an
// empty catalog or query.
func (c *Catalog) Nearest(query string) (string, int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if c == nil || query == "" || len(c.items) == 0 {
		return "", 0, false
	}
	best, bestDist := "", -1
	for _, it := range c.items {
		d := levenshtein.ComputeDistance(query, strings.ToLower(it.ID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = it.ID, d
		}
	}
	return best, bestDist, true
}

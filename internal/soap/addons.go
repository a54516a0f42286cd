package soap

import "github.com/alexanderramin/soapnote/internal/domain"

// Selection is the set of active addon ids. Iteration order of a Selection
// never influences composed output.
type Selection map[string]bool

// NewSelection builds a Selection from ids.
func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	return s[id]
}

// AddonCatalog is an addon lookup that remembers declaration order.
type AddonCatalog struct {
	order []string
	byID  map[string]domain.Addon
}

// NewAddonCatalog indexes addons by id. The first definition of a repeated
// id wins.
func NewAddonCatalog(addons []domain.Addon) *AddonCatalog {
	c := &AddonCatalog{byID: make(map[string]domain.Addon, len(addons))}
	for _, a := range addons {
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		c.byID[a.ID] = a
		c.order = append(c.order, a.ID)
	}
	return c
}

// Lookup returns the addon with the given id.
func (c *AddonCatalog) Lookup(id string) (domain.Addon, bool) {
	if c == nil {
		return domain.Addon{}, false
	}
	a, ok := c.byID[id]
	return a, ok
}

// IDs returns addon ids in declaration order.
func (c *AddonCatalog) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// DeclaredOrder returns the addon order that applies to sc: its own
// declared list, or the catalog order when it declares none.
func (c *AddonCatalog) DeclaredOrder(sc domain.Scenario) []string {
	if len(sc.AddonIDs) > 0 {
		return sc.AddonIDs
	}
	return c.IDs()
}

// ForScenario resolves the addons offered for sc in declared order.
// Ids missing from the catalog are skipped.
func (c *AddonCatalog) ForScenario(sc domain.Scenario) []domain.Addon {
	var out []domain.Addon
	seen := make(map[string]bool)
	for _, id := range c.DeclaredOrder(sc) {
		if seen[id] {
			continue
		}
		seen[id] = true
		if a, ok := c.Lookup(id); ok {
			out = append(out, a)
		}
	}
	return out
}

package panel

import (
	"sort"
	"strings"

	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/store"
)

// LabelView is one render-ready panel entry.
type LabelView struct {
	catalog.Label
	DisplayName string
	Selected    bool
}

// GroupView is one emitted panel section. Groups with zero visible labels
// are never emitted, header included.
type GroupView struct {
	ID     string
	Name   string
	Labels []LabelView
}

// Built-in group display names.
const (
	systemGroupName    = "System"
	ungroupedGroupName = "Ungrouped"
)

// BuildView merges the scraped/fetched catalog with stored overrides into
// the ordered, grouped, filtered view model. selected holds real label
// names. Macro-order is: custom groups in definition order, then System,
// then Ungrouped always last.
func BuildView(cat []catalog.Label, o *store.Overrides, filterText string, selected map[string]bool) []GroupView {
	if o == nil {
		o = store.NewOverrides()
	}
	filter := strings.ToLower(strings.TrimSpace(filterText))

	buckets := make(map[string][]LabelView)
	for _, label := range cat {
		if o.Hidden[label.Name] {
			continue
		}
		display := o.DisplayNameFor(label.Name)
		if filter != "" {
			// Users search by either name after a rename, so both match
			if !strings.Contains(strings.ToLower(display), filter) &&
				!strings.Contains(strings.ToLower(label.Name), filter) {
				continue
			}
		}
		groupID := effectiveGroup(label, o)
		buckets[groupID] = append(buckets[groupID], LabelView{
			Label:       label,
			DisplayName: display,
			Selected:    selected[label.Name],
		})
	}

	for groupID, labels := range buckets {
		sortGroup(labels, o.Order[groupID])
	}

	var out []GroupView
	emit := func(id, name string) {
		if labels := buckets[id]; len(labels) > 0 {
			out = append(out, GroupView{ID: id, Name: name, Labels: labels})
		}
	}
	for _, g := range o.Groups {
		emit(g.ID, g.Name)
	}
	emit(store.GroupSystem, systemGroupName)
	emit(store.GroupUngrouped, ungroupedGroupName)
	return out
}

// effectiveGroup resolves a label's group: explicit assignment, else the
// system pseudo-group for system labels, else ungrouped.
func effectiveGroup(label catalog.Label, o *store.Overrides) string {
	if groupID, ok := o.LabelGroups[label.ID]; ok {
		return groupID
	}
	if label.Type == catalog.TypeSystem {
		return store.GroupSystem
	}
	return store.GroupUngrouped
}

// sortGroup orders labels by their position in the group's order sequence;
// labels without a position sort after ordered ones, alphabetically by
// display name (which is also the tiebreak throughout).
func sortGroup(labels []LabelView, order []string) {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	rank := func(lv LabelView) int {
		if p, ok := pos[lv.ID]; ok {
			return p
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		ri, rj := rank(labels[i]), rank(labels[j])
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(labels[i].DisplayName) < strings.ToLower(labels[j].DisplayName)
	})
}

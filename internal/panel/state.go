package panel

import (
	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/store"
)

// State is the in-memory panel state: the current catalog, the loaded
// overrides, and the ephemeral UI fields (selection, filter, mode, collapsed
// group toggles) that reset on page load. It is owned by the UI layer on the
// main event loop; all changes go through the setters, each of which
// triggers a re-reconciliation callback.
type State struct {
	cat       []catalog.Label
	overrides *store.Overrides

	filterText string
	mode       Mode
	selected   []string // insertion order, drives query term order
	selectedBy map[string]bool
	collapsed  map[string]bool

	onChange func([]GroupView)
}

// NewState creates panel state. onChange may be nil; it receives the fresh
// view model after every mutation.
func NewState(overrides *store.Overrides, onChange func([]GroupView)) *State {
	if overrides == nil {
		overrides = store.NewOverrides()
	}
	return &State{
		overrides:  overrides,
		mode:       ModeAnd,
		selectedBy: make(map[string]bool),
		collapsed:  make(map[string]bool),
		onChange:   onChange,
	}
}

// View builds the current view model.
func (s *State) View() []GroupView {
	return BuildView(s.cat, s.overrides, s.filterText, s.selectedBy)
}

// Query builds the search query for the current selection and mode.
func (s *State) Query() string {
	return BuildQuery(s.selected, s.mode)
}

// SetCatalog replaces the catalog (after a re-scan or fetch) and drops
// selections that no longer resolve to a known label.
func (s *State) SetCatalog(cat []catalog.Label) {
	s.cat = cat
	known := make(map[string]bool, len(cat))
	for _, l := range cat {
		known[l.Name] = true
	}
	kept := s.selected[:0]
	for _, name := range s.selected {
		if known[name] {
			kept = append(kept, name)
		} else {
			delete(s.selectedBy, name)
		}
	}
	s.selected = kept
	s.reconcile()
}

// Overrides exposes the override set for mutation; call Reconcile after
// editing it directly.
func (s *State) Overrides() *store.Overrides {
	return s.overrides
}

// Reconcile re-runs the view build and notifies the change callback.
func (s *State) Reconcile() { s.reconcile() }

// SetFilter updates the filter text.
func (s *State) SetFilter(text string) {
	s.filterText = text
	s.reconcile()
}

// Mode returns the current combine mode.
func (s *State) Mode() Mode { return s.mode }

// ToggleMode flips between AND and OR.
func (s *State) ToggleMode() {
	if s.mode == ModeAnd {
		s.mode = ModeOr
	} else {
		s.mode = ModeAnd
	}
	s.reconcile()
}

// ToggleSelect flips a label's membership in the selection set (by real
// name).
func (s *State) ToggleSelect(name string) {
	if s.selectedBy[name] {
		delete(s.selectedBy, name)
		s.selected = removeName(s.selected, name)
	} else {
		s.selectedBy[name] = true
		s.selected = append(s.selected, name)
	}
	s.reconcile()
}

// Selected returns the selected label names in selection order.
func (s *State) Selected() []string {
	return append([]string(nil), s.selected...)
}

// ClearSelection empties the selection set.
func (s *State) ClearSelection() {
	s.selected = nil
	s.selectedBy = make(map[string]bool)
	s.reconcile()
}

// ToggleGroupCollapsed flips a group's transient collapsed toggle. Collapsed
// groups still emit; collapsing is a visual fold, unlike the hidden set
// which removes labels from the view entirely.
func (s *State) ToggleGroupCollapsed(groupID string) {
	s.collapsed[groupID] = !s.collapsed[groupID]
	s.reconcile()
}

// GroupCollapsed reports a group's transient collapsed toggle.
func (s *State) GroupCollapsed(groupID string) bool {
	return s.collapsed[groupID]
}

func (s *State) reconcile() {
	if s.onChange != nil {
		s.onChange(s.View())
	}
}

func removeName(seq []string, name string) []string {
	out := seq[:0]
	for _, v := range seq {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

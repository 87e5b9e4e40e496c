package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/ajramos/labelpanel/internal/catalog"
)

// Storage keys for the override namespace.
const (
	KeyDisplayNames   = "displayNameMap"
	KeyHidden         = "hidden"
	KeyGroups         = "groups"
	KeyLabelGroups    = "labelGroups"
	KeyOrder          = "order"
	KeyColors         = "labelColors"
	KeyPanelCollapsed = "panelCollapsed"
	KeyPanelPosition  = "panelPosition"
)

// Built-in pseudo-groups. They always exist, are never persisted as group
// entries, and cannot be deleted or renamed.
const (
	GroupSystem    = "system"
	GroupUngrouped = "ungrouped"
)

// Group is a user-defined bucket for organizing labels in the panel.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Position is the panel's left/bottom offset in pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Overrides is the full set of user-authored customizations, merged over the
// scraped catalog at render time. Display names and the hidden set are keyed
// by real label name (the reconciliation key); groups and order are keyed by
// label ID.
type Overrides struct {
	DisplayNames   map[string]string          `json:"displayNameMap"`
	Hidden         map[string]bool            `json:"hidden"`
	Groups         []Group                    `json:"groups"`
	LabelGroups    map[string]string          `json:"labelGroups"`
	Order          map[string][]string        `json:"order"`
	Colors         map[string]catalog.Color   `json:"labelColors"`
	PanelCollapsed bool                       `json:"panelCollapsed"`
	PanelPosition  *Position                  `json:"panelPosition"`
}

// NewOverrides returns an empty override set with all maps allocated.
func NewOverrides() *Overrides {
	return &Overrides{
		DisplayNames: make(map[string]string),
		Hidden:       make(map[string]bool),
		LabelGroups:  make(map[string]string),
		Order:        make(map[string][]string),
		Colors:       make(map[string]catalog.Color),
	}
}

// Load reads the override set from the store. Reads across keys are a
// best-effort snapshot, not a transaction; a key that fails to decode falls
// back to its default rather than failing the load.
func Load(ctx context.Context, s *Store, logger *log.Logger) (*Overrides, error) {
	raw, err := s.Get(ctx,
		KeyDisplayNames, KeyHidden, KeyGroups, KeyLabelGroups,
		KeyOrder, KeyColors, KeyPanelCollapsed, KeyPanelPosition)
	if err != nil {
		return nil, err
	}

	o := NewOverrides()
	decode(raw[KeyDisplayNames], &o.DisplayNames, logger)

	// hidden is persisted as a list of names
	var hidden []string
	decode(raw[KeyHidden], &hidden, logger)
	for _, name := range hidden {
		o.Hidden[name] = true
	}

	decode(raw[KeyGroups], &o.Groups, logger)
	decode(raw[KeyLabelGroups], &o.LabelGroups, logger)
	o.Order = decodeOrder(raw[KeyOrder], logger)
	decode(raw[KeyColors], &o.Colors, logger)
	decode(raw[KeyPanelCollapsed], &o.PanelCollapsed, logger)
	decode(raw[KeyPanelPosition], &o.PanelPosition, logger)

	o.normalize()
	return o, nil
}

// Save writes the full override set back to the store.
func (o *Overrides) Save(ctx context.Context, s *Store) error {
	hidden := make([]string, 0, len(o.Hidden))
	for name, on := range o.Hidden {
		if on {
			hidden = append(hidden, name)
		}
	}
	return s.Set(ctx, map[string]any{
		KeyDisplayNames:   o.DisplayNames,
		KeyHidden:         hidden,
		KeyGroups:         o.Groups,
		KeyLabelGroups:    o.LabelGroups,
		KeyOrder:          o.Order,
		KeyColors:         o.Colors,
		KeyPanelCollapsed: o.PanelCollapsed,
		KeyPanelPosition:  o.PanelPosition,
	})
}

// decode unmarshals into dst, logging and keeping the default on failure.
func decode(raw json.RawMessage, dst any, logger *log.Logger) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil && logger != nil {
		logger.Printf("store: discarding corrupt value: %v", err)
	}
}

// decodeOrder handles the one schema migration this store carries: the order
// index used to be a flat label-ID array. A flat list cannot be attributed
// to groups, so any non-object value is discarded and the index restarts
// empty.
func decodeOrder(raw json.RawMessage, logger *log.Logger) map[string][]string {
	out := make(map[string][]string)
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		if logger != nil {
			logger.Printf("store: legacy or corrupt order index discarded: %v", err)
		}
		return make(map[string][]string)
	}
	return out
}

// normalize drops assignments that reference deleted or unknown groups;
// those labels revert to ungrouped. Defensive validation for imported or
// hand-edited data.
func (o *Overrides) normalize() {
	known := make(map[string]struct{}, len(o.Groups))
	for _, g := range o.Groups {
		known[g.ID] = struct{}{}
	}
	for labelID, groupID := range o.LabelGroups {
		if _, ok := known[groupID]; !ok {
			delete(o.LabelGroups, labelID)
		}
	}
	for groupID := range o.Order {
		if _, ok := known[groupID]; !ok && groupID != GroupSystem && groupID != GroupUngrouped {
			delete(o.Order, groupID)
		}
	}
}

// AddGroup creates a new group with a generated ID and returns it.
func (o *Overrides) AddGroup(name string) Group {
	g := Group{ID: uuid.NewString(), Name: name}
	o.Groups = append(o.Groups, g)
	return g
}

// DeleteGroup removes a group and cascades: member labels revert to
// ungrouped and the group's order sequence is dropped. Built-in
// pseudo-groups are not deletable.
func (o *Overrides) DeleteGroup(groupID string) bool {
	if groupID == GroupSystem || groupID == GroupUngrouped {
		return false
	}
	found := false
	kept := o.Groups[:0]
	for _, g := range o.Groups {
		if g.ID == groupID {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return false
	}
	o.Groups = kept
	for labelID, gid := range o.LabelGroups {
		if gid == groupID {
			delete(o.LabelGroups, labelID)
		}
	}
	delete(o.Order, groupID)
	return true
}

// RenameGroup renames a user group in place.
func (o *Overrides) RenameGroup(groupID, name string) bool {
	if groupID == GroupSystem || groupID == GroupUngrouped {
		return false
	}
	for i := range o.Groups {
		if o.Groups[i].ID == groupID {
			o.Groups[i].Name = name
			return true
		}
	}
	return false
}

// AssignToGroup moves a label into a group, updating the assignment map and
// the destination group's order sequence together so a cross-group drag
// never leaves the two out of sync. position < 0 appends. Assigning to a
// built-in pseudo-group clears the explicit assignment (membership of the
// built-ins is derived, never stored).
func (o *Overrides) AssignToGroup(labelID, groupID string, position int) {
	// Remove from every order sequence first
	for gid, seq := range o.Order {
		o.Order[gid] = removeString(seq, labelID)
	}
	if groupID == "" || groupID == GroupSystem || groupID == GroupUngrouped {
		delete(o.LabelGroups, labelID)
		if groupID != "" {
			o.Order[groupID] = insertString(o.Order[groupID], labelID, position)
		}
		return
	}
	o.LabelGroups[labelID] = groupID
	o.Order[groupID] = insertString(o.Order[groupID], labelID, position)
}

// HasGroup reports whether groupID names a built-in pseudo-group or an
// existing user group.
func (o *Overrides) HasGroup(groupID string) bool {
	if groupID == GroupSystem || groupID == GroupUngrouped {
		return true
	}
	for _, g := range o.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// MergeColors folds API-reported label colors into the override set, keyed
// by label ID. Existing entries for refetched labels are replaced; colors of
// labels absent from this fetch are kept.
func (o *Overrides) MergeColors(colors map[string]catalog.Color) {
	for id, c := range colors {
		o.Colors[id] = c
	}
}

// SetOrder replaces one group's order sequence.
func (o *Overrides) SetOrder(groupID string, labelIDs []string) {
	o.Order[groupID] = append([]string(nil), labelIDs...)
}

// SetDisplayName records a rename, keyed by real name. An empty custom name
// clears the override.
func (o *Overrides) SetDisplayName(realName, custom string) {
	if custom == "" {
		delete(o.DisplayNames, realName)
		return
	}
	o.DisplayNames[realName] = custom
}

// DisplayNameFor returns the effective display name for a real label name.
func (o *Overrides) DisplayNameFor(realName string) string {
	if custom, ok := o.DisplayNames[realName]; ok && custom != "" {
		return custom
	}
	return realName
}

// SetHidden adds or removes a label (by real name) from the hidden set.
func (o *Overrides) SetHidden(realName string, hidden bool) {
	if hidden {
		o.Hidden[realName] = true
		return
	}
	delete(o.Hidden, realName)
}

func removeString(seq []string, s string) []string {
	out := seq[:0]
	for _, v := range seq {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func insertString(seq []string, s string, pos int) []string {
	if pos < 0 || pos >= len(seq) {
		return append(seq, s)
	}
	seq = append(seq, "")
	copy(seq[pos+1:], seq[pos:])
	seq[pos] = s
	return seq
}

package observer

import (
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ajramos/labelpanel/internal/catalog"
	"github.com/ajramos/labelpanel/internal/store"
)

// MutationKind mirrors the mutation-record types the host page reports.
type MutationKind string

const (
	MutationChildList  MutationKind = "childList"
	MutationAttributes MutationKind = "attributes"
	MutationCharData   MutationKind = "characterData"
)

// Mutation is one observed change record on the sidebar subtree.
type Mutation struct {
	Kind MutationKind
}

// SidebarObserver keeps the live sidebar tree consistent with user
// overrides (renames and per-group ordering) while Gmail re-renders it
// out-of-band. Mutations are debounced; each settled burst triggers one
// re-scan plus a re-application pass over the tree.
type SidebarObserver struct {
	scanner   *catalog.Scanner
	overrides func() *store.Overrides
	logger    *log.Logger
	deb       *Debouncer

	root     *goquery.Selection
	onChange func([]catalog.Label)
}

// New creates a sidebar observer. overrides supplies the current override
// snapshot on each sync; onChange (may be nil) receives the fresh catalog
// after every sync; logger may be nil.
func New(scanner *catalog.Scanner, overrides func() *store.Overrides, onChange func([]catalog.Label), interval time.Duration, logger *log.Logger) *SidebarObserver {
	o := &SidebarObserver{
		scanner:   scanner,
		overrides: overrides,
		onChange:  onChange,
		logger:    logger,
	}
	o.deb = NewDebouncer(interval, o.sync)
	return o
}

// Attach points the observer at the sidebar root and performs an initial
// sync so overrides apply without waiting for the first mutation.
func (o *SidebarObserver) Attach(root *goquery.Selection) {
	o.root = root
	o.sync()
}

// Observe feeds one mutation record. Only childList mutations schedule a
// sync; attribute and text churn inside rows is noise here.
func (o *SidebarObserver) Observe(m Mutation) {
	if m.Kind != MutationChildList {
		return
	}
	o.deb.Trigger()
}

// Close cancels any pending sync.
func (o *SidebarObserver) Close() {
	o.deb.Stop()
}

// sync is the debounced callback: re-scan the sidebar, re-apply custom
// names and ordering, then notify. Any single label's failure is logged and
// skipped; one detached node must not abort the rest of the batch.
func (o *SidebarObserver) sync() {
	if o.root == nil {
		return
	}
	ov := o.overrides()
	if ov == nil {
		ov = store.NewOverrides()
	}

	nodes := o.scanner.ScanNodes(o.root)
	for _, ln := range nodes {
		o.applyName(ln, ov)
	}
	o.applyOrder(nodes, ov)

	if o.onChange != nil {
		labels := make([]catalog.Label, len(nodes))
		for i, ln := range nodes {
			labels[i] = ln.Label
		}
		o.onChange(labels)
	}
}

// applyName rewrites a node's visible text to the configured custom name,
// stamping the original-name marker so the next scan still attributes the
// node to the real label. Nodes whose override was cleared get their
// original text restored and the marker removed.
func (o *SidebarObserver) applyName(ln catalog.LabelNode, ov *store.Overrides) {
	defer func() {
		if p := recover(); p != nil {
			o.logf("observer: rename of %q failed: %v", ln.Name, p)
		}
	}()

	custom, hasOverride := ov.DisplayNames[ln.Name]
	_, hasMarker := ln.Node.Attr(catalog.OriginalNameAttr)

	switch {
	case hasOverride && custom != "":
		rewriteText(ln.Node, custom)
		ln.Node.SetAttr(catalog.OriginalNameAttr, ln.Name)
	case hasMarker:
		rewriteText(ln.Node, ln.Name)
		ln.Node.RemoveAttr(catalog.OriginalNameAttr)
	}
}

// applyOrder reorders sidebar nodes to match each group's stored sequence.
// Only nodes already sharing a parent are moved; cross-container moves would
// require knowing Gmail's container semantics, which are not stable.
func (o *SidebarObserver) applyOrder(nodes []catalog.LabelNode, ov *store.Overrides) {
	byID := make(map[string]*goquery.Selection, len(nodes))
	for _, ln := range nodes {
		byID[ln.ID] = ln.Node
		byID[ln.Name] = ln.Node
	}

	for groupID, seq := range ov.Order {
		o.reorderSequence(groupID, seq, byID)
	}
}

func (o *SidebarObserver) reorderSequence(groupID string, seq []string, byID map[string]*goquery.Selection) {
	defer func() {
		if p := recover(); p != nil {
			o.logf("observer: reorder of group %q failed: %v", groupID, p)
		}
	}()

	var prev *goquery.Selection
	for _, labelID := range seq {
		node, ok := byID[labelID]
		if !ok || node.Length() == 0 {
			continue
		}
		if prev != nil && sameParent(prev, node) {
			// Moves node directly after prev among its siblings, so a full
			// pass leaves the sequence contiguous in stored order
			prev.AfterSelection(node)
		}
		prev = node
	}
}

func sameParent(a, b *goquery.Selection) bool {
	pa, pb := a.Parent(), b.Parent()
	if len(pa.Nodes) == 0 || len(pb.Nodes) == 0 {
		return false
	}
	return pa.Nodes[0] == pb.Nodes[0]
}

// rewriteText replaces the first text node under the selection, or appends
// one when the node has no text child. Keeps Gmail's child elements (unread
// counters, icons) intact instead of clobbering the subtree.
func rewriteText(sel *goquery.Selection, text string) {
	for _, n := range sel.Nodes {
		if tn := firstTextNode(n); tn != nil {
			tn.Data = text
			continue
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// firstTextNode prefers a direct text child over descendant text so the
// label's own text wins over nested badges like the unread counter. A blank
// direct child (inter-element whitespace) only wins when nothing better
// exists.
func firstTextNode(n *html.Node) *html.Node {
	var blank *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if strings.TrimSpace(c.Data) != "" {
			return c
		}
		if blank == nil {
			blank = c
		}
	}
	if blank != nil {
		return blank
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstTextNode(c); found != nil {
			return found
		}
	}
	return nil
}

func (o *SidebarObserver) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}

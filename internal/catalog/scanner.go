package catalog

import (
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

//go:embed selectors.yml
var defaultSelectorsYAML []byte

// ScannerConfig is the data-driven description of how to locate labels in
// the sidebar DOM. Kept as data so new Gmail DOM variants are additions to
// selectors.yml rather than new control flow.
type ScannerConfig struct {
	LabelSelectors      []string `yaml:"label_selectors"`
	AltNameAttrs        []string `yaml:"alt_name_attrs"`
	HiddenScanSelectors []string `yaml:"hidden_scan_selectors"`
	HiddenClasses       []string `yaml:"hidden_classes"`
	UnreadOnlyClasses   []string `yaml:"unread_only_classes"`
	SystemLabels        []string `yaml:"system_labels"`
}

// DefaultScannerConfig parses the embedded selector data.
func DefaultScannerConfig() (*ScannerConfig, error) {
	var cfg ScannerConfig
	if err := yaml.Unmarshal(defaultSelectorsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse selector config: %w", err)
	}
	return &cfg, nil
}

// Scanner extracts a normalized label catalog from a scraped sidebar tree.
// Scanning never fails: a partial or empty result is valid output (the
// sidebar may simply not be loaded yet).
type Scanner struct {
	cfg    *ScannerConfig
	logger *log.Logger

	systemSet map[string]struct{}
}

// NewScanner creates a scanner; cfg may be nil to use the embedded defaults.
// The logger may be nil.
func NewScanner(cfg *ScannerConfig, logger *log.Logger) (*Scanner, error) {
	if cfg == nil {
		var err error
		cfg, err = DefaultScannerConfig()
		if err != nil {
			return nil, err
		}
	}
	set := make(map[string]struct{}, len(cfg.SystemLabels))
	for _, name := range cfg.SystemLabels {
		set[strings.ToLower(name)] = struct{}{}
	}
	return &Scanner{cfg: cfg, logger: logger, systemSet: set}, nil
}

// LabelNode pairs a catalog entry with the sidebar node it was scraped
// from, for callers that rewrite or reorder the live tree.
type LabelNode struct {
	Label
	Node *goquery.Selection
}

// ScanSidebar collects labels under root. Overlapping selectors are expected;
// duplicates merge by name with the first match winning. A second pass
// detects labels Gmail renders hidden or unread-only and merges their state
// in (again by name, never duplicating an entry).
func (s *Scanner) ScanSidebar(root *goquery.Selection) []Label {
	nodes := s.ScanNodes(root)
	out := make([]Label, len(nodes))
	for i, ln := range nodes {
		out[i] = ln.Label
	}
	return out
}

// ScanNodes is ScanSidebar keeping the backing DOM nodes.
func (s *Scanner) ScanNodes(root *goquery.Selection) []LabelNode {
	if root == nil {
		return nil
	}

	var out []LabelNode
	index := make(map[string]int)

	for _, selector := range s.cfg.LabelSelectors {
		root.Find(selector).Each(func(_ int, node *goquery.Selection) {
			name := s.NameOf(node)
			if name == "" {
				return
			}
			if _, seen := index[name]; seen {
				return
			}
			index[name] = len(out)
			out = append(out, LabelNode{
				Label: Label{
					ID:    FallbackID(name),
					Name:  name,
					Type:  s.classify(name),
					State: StateShow,
				},
				Node: node,
			})
		})
	}

	// Hidden/unread-only pass. Labels found here that the primary pass
	// already produced only get their state updated.
	for _, selector := range s.cfg.HiddenScanSelectors {
		root.Find(selector).Each(func(_ int, node *goquery.Selection) {
			state := s.detectState(node)
			if state == StateShow {
				return
			}
			name := s.NameOf(node)
			if name == "" {
				return
			}
			if i, seen := index[name]; seen {
				out[i].State = state
				return
			}
			index[name] = len(out)
			out = append(out, LabelNode{
				Label: Label{
					ID:    FallbackID(name),
					Name:  name,
					Type:  s.classify(name),
					State: state,
				},
				Node: node,
			})
		})
	}

	return out
}

// NameOf resolves the real name of a scraped node. A node that was
// rewritten with a custom display name carries the original in a marker
// attribute; that always wins so renames stay attributed to the real label.
func (s *Scanner) NameOf(node *goquery.Selection) string {
	if original, ok := node.Attr(OriginalNameAttr); ok && strings.TrimSpace(original) != "" {
		return strings.TrimSpace(original)
	}
	// An ancestor tooltip/aria-label holds the untruncated canonical name
	for _, attr := range s.cfg.AltNameAttrs {
		if v, ok := node.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if ancestor := node.Closest("[data-tooltip], [aria-label]"); ancestor.Length() > 0 {
		for _, attr := range s.cfg.AltNameAttrs {
			if v, ok := ancestor.Attr(attr); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return strings.TrimSpace(node.Text())
}

func (s *Scanner) classify(name string) LabelType {
	if _, ok := s.systemSet[strings.ToLower(name)]; ok {
		return TypeSystem
	}
	return TypeUser
}

// detectState inspects the node and its ancestors for hiding heuristics:
// inline styles, aria-hidden, and known class names, plus the
// show-only-when-unread variants.
func (s *Scanner) detectState(node *goquery.Selection) Visibility {
	chain := node.AddSelection(node.Parents())
	state := StateShow
	chain.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		style := strings.ToLower(el.AttrOr("style", ""))
		style = strings.ReplaceAll(style, " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			state = StateHide
			return false
		}
		if el.AttrOr("aria-hidden", "") == "true" {
			state = StateHide
			return false
		}
		for _, class := range s.cfg.HiddenClasses {
			if el.HasClass(class) {
				state = StateHide
				return false
			}
		}
		for _, class := range s.cfg.UnreadOnlyClasses {
			if el.HasClass(class) {
				state = StateShowIfUnread
				return false
			}
		}
		return true
	})
	return state
}

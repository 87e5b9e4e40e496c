package catalog

import (
	"context"
	"fmt"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// LabelLister is the slice of the Gmail client the API source needs.
type LabelLister interface {
	ListLabels(accountKey string) ([]*gmailapi.Label, error)
}

// APISource produces the catalog from the label-list API instead of a DOM
// scan. Unlike scanning, fetching is fallible: auth and network failures are
// returned (pre-classified by the client) so callers can render an
// authorization-required state instead of crashing the panel.
type APISource struct {
	lister LabelLister
}

// NewAPISource creates an API-backed catalog source.
func NewAPISource(lister LabelLister) *APISource {
	return &APISource{lister: lister}
}

// FetchLabels returns the normalized catalog plus the label color map, which
// the caller persists as a side channel (colors are only available here,
// never from the scraped sidebar).
func (s *APISource) FetchLabels(ctx context.Context, accountKey string) ([]Label, map[string]Color, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	raw, err := s.lister.ListLabels(accountKey)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch labels: %w", err)
	}

	labels := make([]Label, 0, len(raw))
	colors := make(map[string]Color)
	seen := make(map[string]struct{}, len(raw))
	for _, l := range raw {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		// Same reconciliation key as the scanner: name, first match wins
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		entry := Label{
			ID:    l.Id,
			Name:  name,
			Type:  apiType(l.Type),
			State: apiVisibility(l.LabelListVisibility),
		}
		if l.Color != nil {
			c := Color{BackgroundColor: l.Color.BackgroundColor, TextColor: l.Color.TextColor}
			entry.Color = &c
			colors[l.Id] = c
		}
		labels = append(labels, entry)
	}
	return labels, colors, nil
}

func apiType(t string) LabelType {
	if t == "system" {
		return TypeSystem
	}
	return TypeUser
}

func apiVisibility(v string) Visibility {
	switch v {
	case "labelHide":
		return StateHide
	case "labelShowIfUnread":
		return StateShowIfUnread
	default:
		return StateShow
	}
}

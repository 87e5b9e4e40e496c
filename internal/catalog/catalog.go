package catalog

// LabelType distinguishes Gmail's built-in labels from user-created ones.
// System labels are immutable: never renamable and never groupable.
type LabelType string

const (
	TypeSystem LabelType = "system"
	TypeUser   LabelType = "user"
)

// Visibility is the sidebar visibility state Gmail itself applies to a
// label. It is independent of the user's own hidden-set override.
type Visibility string

const (
	StateShow         Visibility = "show"
	StateHide         Visibility = "hide"
	StateShowIfUnread Visibility = "show_if_unread"
)

// Color holds the label colors reported by the label API, keyed by label ID.
type Color struct {
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

// Label is one entry of the normalized catalog. Labels are re-derived on
// every scan or fetch and never persisted; the persisted objects are the
// user overrides, keyed by Name (IDs differ between scrape and API sources).
type Label struct {
	ID    string
	Name  string
	Type  LabelType
	State Visibility
	Color *Color
}

// OriginalNameAttr marks a sidebar node whose visible text has been
// rewritten to a custom display name. The attribute carries the real label
// name so a later scan attributes the node back to the original label
// instead of treating the custom text as a new one.
const OriginalNameAttr = "data-lp-original-name"

// FallbackID derives a stable identifier for scraped-only labels, which
// carry no API ID.
func FallbackID(name string) string {
	return "Label_" + name
}

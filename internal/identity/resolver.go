package identity

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"math/big"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ajramos/labelpanel/internal/dom"
)

// Resolver recovers the canonical message ID for the email a user is
// interacting with. Gmail exposes the ID in several mutually inconsistent
// encodings depending on view mode and build, so resolution is an ordered
// list of independent strategies; the first hit wins and every parse failure
// degrades to the next strategy instead of surfacing.
type Resolver struct {
	logger     *log.Logger
	strategies []strategy
}

type strategy struct {
	name    string
	extract func(row *goquery.Selection, snap *dom.Snapshot) string
}

// NewResolver creates a resolver with the default strategy order. The logger
// may be nil.
func NewResolver(logger *log.Logger) *Resolver {
	r := &Resolver{logger: logger}
	r.strategies = []strategy{
		{"jslog", r.fromJslog},
		{"checkbox", fromCheckbox},
		{"data-attr", fromDataAttrs},
		{"row-id", fromRowID},
		{"href", fromHref},
		{"url-hash", fromURLHash},
	}
	return r
}

var (
	jslogFieldRe   = regexp.MustCompile(`1:([^;"]+)`)
	base64JunkRe   = regexp.MustCompile(`[^A-Za-z0-9+/=]`)
	messageTokenRe = regexp.MustCompile(`(?:msg|thread)-f:(\d+)`)
	decimalRe      = regexp.MustCompile(`^\d+$`)
	mailHrefRe     = regexp.MustCompile(`/mail/.*#.*/([a-f0-9]+)`)
	hashHexRe      = regexp.MustCompile(`(?i)/([0-9a-f]{16,})$`)
)

// Resolve returns the message ID for the given row (which may be nil) in the
// hex format the Gmail API expects, or "" when no strategy succeeds.
func (r *Resolver) Resolve(row *goquery.Selection, snap *dom.Snapshot) string {
	for _, s := range r.strategies {
		id := r.try(s, row, snap)
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		return NormalizeID(id)
	}
	return ""
}

// try runs one strategy, containing any panic so a malformed input can never
// take down the remaining strategies.
func (r *Resolver) try(s strategy, row *goquery.Selection, snap *dom.Snapshot) (id string) {
	defer func() {
		if p := recover(); p != nil {
			r.logf("identity: strategy %s panicked: %v", s.name, p)
			id = ""
		}
	}()
	return s.extract(row, snap)
}

// NormalizeID re-encodes purely decimal IDs (legacy DOM attributes, jslog
// payloads) as lowercase hex; the apply-label API only accepts hex. Anything
// else is passed through unchanged.
func NormalizeID(id string) string {
	if id == "" || !decimalRe.MatchString(id) {
		return id
	}
	n, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return id
	}
	return n.Text(16)
}

// fromJslog decodes the base64/JSON payload Gmail embeds in the jslog
// attribute. Format: `18406; u014N:xr6bB; 1:BASE64; 4:W10.` where the first
// element of the decoded JSON array carries "#thread-f:...|msg-f:...".
func (r *Resolver) fromJslog(row *goquery.Selection, _ *dom.Snapshot) string {
	if row == nil {
		return ""
	}
	jslog, ok := row.Attr("jslog")
	if !ok || jslog == "" {
		return ""
	}
	m := jslogFieldRe.FindStringSubmatch(jslog)
	if m == nil {
		return ""
	}
	decoded, err := decodeLooseBase64(base64JunkRe.ReplaceAllString(m[1], ""))
	if err != nil {
		r.logf("identity: jslog base64 decode failed: %v", err)
		return ""
	}
	var payload []any
	if err := json.Unmarshal(decoded, &payload); err != nil {
		r.logf("identity: jslog JSON parse failed: %v", err)
		return ""
	}
	if len(payload) == 0 {
		return ""
	}
	first, ok := payload[0].(string)
	if !ok {
		return ""
	}
	if m := messageTokenRe.FindStringSubmatch(first); m != nil {
		return m[1]
	}
	return ""
}

// decodeLooseBase64 tolerates missing padding and the URL-safe alphabet;
// Gmail sometimes appends trailing periods that break strict decoding.
func decodeLooseBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}
	return base64.StdEncoding.DecodeString(s)
}

func fromCheckbox(row *goquery.Selection, _ *dom.Snapshot) string {
	if row == nil {
		return ""
	}
	box := row.Find(`input[name="t"]`).First()
	if box.Length() == 0 {
		return ""
	}
	if id, ok := box.Attr("data-message-id"); ok && id != "" {
		return id
	}
	if id, ok := box.Attr("data-legacy-message-id"); ok && id != "" {
		return id
	}
	return box.AttrOr("value", "")
}

func fromDataAttrs(row *goquery.Selection, _ *dom.Snapshot) string {
	if row == nil {
		return ""
	}
	if id, ok := row.Attr("data-message-id"); ok && id != "" {
		return id
	}
	return row.AttrOr("data-legacy-message-id", "")
}

func fromRowID(row *goquery.Selection, _ *dom.Snapshot) string {
	if row == nil {
		return ""
	}
	id := row.AttrOr("id", "")
	if strings.HasPrefix(id, "msg-") {
		return strings.TrimPrefix(id, "msg-")
	}
	return ""
}

func fromHref(row *goquery.Selection, _ *dom.Snapshot) string {
	if row == nil {
		return ""
	}
	link := row.Find(`a[href*="/mail/"]`).First()
	if link.Length() == 0 {
		return ""
	}
	if m := mailHrefRe.FindStringSubmatch(link.AttrOr("href", "")); m != nil {
		return m[1]
	}
	return ""
}

// fromURLHash is the last resort: in thread view the trailing hash segment
// is the open conversation. Risky under multi-select, acceptable for a
// single drag-and-drop action.
func fromURLHash(_ *goquery.Selection, snap *dom.Snapshot) string {
	if snap == nil {
		return ""
	}
	if m := hashHexRe.FindStringSubmatch(snap.Hash()); m != nil {
		return m[1]
	}
	return ""
}

func (r *Resolver) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

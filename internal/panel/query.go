package panel

import (
	"regexp"
	"strings"
)

// Mode selects how multiple label terms combine in the search query.
type Mode string

const (
	ModeAnd Mode = "AND"
	ModeOr  Mode = "OR"
)

var termJunkRe = regexp.MustCompile(`[\s/&]+`)

// EncodeTerm converts a real label name into Gmail's search-operand form:
// lowercase, runs of whitespace, slashes and ampersands collapsed to a
// single hyphen, leading/trailing hyphens trimmed.
func EncodeTerm(name string) string {
	term := strings.ToLower(strings.TrimSpace(name))
	term = termJunkRe.ReplaceAllString(term, "-")
	return strings.Trim(term, "-")
}

// ExactTerm is the verbatim-name encoding: quoted when the name contains
// characters the hyphenated form would fold away.
func ExactTerm(name string) string {
	if strings.ContainsAny(name, " \t\"'/") {
		return `label:"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
	}
	return "label:" + name
}

// BuildQuery joins the selected label names into a Gmail search query.
// AND mode space-joins the terms; OR mode wraps them in braces (Gmail's
// any-of group). An empty selection yields an empty query, which callers
// must treat as "do not navigate".
func BuildQuery(selected []string, mode Mode) string {
	terms := make([]string, 0, len(selected))
	for _, name := range selected {
		if term := EncodeTerm(name); term != "" {
			terms = append(terms, "label:"+term)
		}
	}
	if len(terms) == 0 {
		return ""
	}
	if mode == ModeOr {
		return "{" + strings.Join(terms, " ") + "}"
	}
	return strings.Join(terms, " ")
}

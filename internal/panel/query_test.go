package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Work", "work"},
		{"spaces_to_hyphen", "Beta Label", "beta-label"},
		{"slash_to_hyphen", "Work/Projects", "work-projects"},
		{"ampersand_to_hyphen", "R&D", "r-d"},
		{"run_collapses", "A  / &B", "a-b"},
		{"trim_edges", " /Work/ ", "work"},
		{"empty", "", ""},
		{"only_junk", " / & ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeTerm(tt.input))
		})
	}
}

func TestExactTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Work", "label:Work"},
		{"with_space", "Beta Label", `label:"Beta Label"`},
		{"with_slash", "Work/Projects", `label:"Work/Projects"`},
		{"with_quote", `Say "Hi"`, `label:"Say \"Hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExactTerm(tt.input))
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		mode     Mode
		expected string
	}{
		{"single", []string{"Alpha"}, ModeAnd, "label:alpha"},
		{"and_pair", []string{"Alpha", "Beta Label"}, ModeAnd, "label:alpha label:beta-label"},
		{"or_pair", []string{"Alpha", "Beta Label"}, ModeOr, "{label:alpha label:beta-label}"},
		{"or_single", []string{"Alpha"}, ModeOr, "{label:alpha}"},
		{"empty_selection", nil, ModeAnd, ""},
		{"only_unencodable", []string{" / "}, ModeAnd, ""},
		{"preserves_selection_order", []string{"Zed", "Alpha"}, ModeAnd, "label:zed label:alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildQuery(tt.selected, tt.mode))
		})
	}
}

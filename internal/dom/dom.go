package dom

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot pairs a parsed Gmail document with the page URL it was captured
// from. All scraping components operate on snapshots so they can be exercised
// against synthetic fixtures as well as live captures.
type Snapshot struct {
	doc     *goquery.Document
	pageURL string
}

// Parse builds a snapshot from an HTML stream.
func Parse(r io.Reader, pageURL string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Snapshot{doc: doc, pageURL: pageURL}, nil
}

// ParseString builds a snapshot from an HTML string.
func ParseString(html, pageURL string) (*Snapshot, error) {
	return Parse(strings.NewReader(html), pageURL)
}

// Root returns the document root selection.
func (s *Snapshot) Root() *goquery.Selection {
	return s.doc.Selection
}

// Find runs a CSS selector against the whole document.
func (s *Snapshot) Find(selector string) *goquery.Selection {
	return s.doc.Find(selector)
}

// HTML serializes the document, reflecting any mutations applied after
// parsing.
func (s *Snapshot) HTML() (string, error) {
	return s.doc.Html()
}

// URL returns the page URL the snapshot was captured from.
func (s *Snapshot) URL() string {
	return s.pageURL
}

// Hash returns the URL fragment (with leading '#' stripped), or "".
func (s *Snapshot) Hash() string {
	u, err := url.Parse(s.pageURL)
	if err != nil {
		// Fall back to a manual split; Gmail hashes contain '/' which is fine
		if i := strings.IndexByte(s.pageURL, '#'); i >= 0 {
			return s.pageURL[i+1:]
		}
		return ""
	}
	return u.Fragment
}

var accountIndexRe = regexp.MustCompile(`/u/(\d+)/`)

// AccountIndex extracts the multi-login account index from a Gmail URL
// (the "0" in /mail/u/0/). Defaults to "0" when absent.
func AccountIndex(pageURL string) string {
	if m := accountIndexRe.FindStringSubmatch(pageURL); m != nil {
		return m[1]
	}
	return "0"
}

// SearchURL builds the Gmail search navigation URL for a query on the
// account the page URL belongs to.
func SearchURL(pageURL, query string) string {
	return fmt.Sprintf("https://mail.google.com/mail/u/%s/#search/%s",
		AccountIndex(pageURL), url.QueryEscape(query))
}

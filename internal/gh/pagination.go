package gh

import (
	"net/url"
	"regexp"
	"strconv"
)

// PageRange describes the remaining pages of a paginated listing, derived
// from a response's Link header. Next is the first unfetched page, Last the
// final one; both are inclusive.
type PageRange struct {
	Next int
	Last int
}

// linkSegmentPattern matches one `<URL>; rel="RELATION"` segment of a Link
// header. Segments are comma-separated; the pattern is applied to the whole
// header so separators need not be parsed explicitly.
var linkSegmentPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseLinkHeader parses a GitHub Link pagination header into a PageRange.
//
// It returns nil, never an error, whenever the header does not describe a
// usable multi-page range: empty header, missing next or last relation, or a
// page query parameter that is absent or non-numeric on either URL. A nil
// result means "stop paginating", which covers both the single-page case and
// malformed headers without aborting the surrounding fetch.
//
// Relations may repeat; the last occurrence wins.
func ParseLinkHeader(header string) *PageRange {
	if header == "" {
		return nil
	}

	rels := make(map[string]string)
	for _, match := range linkSegmentPattern.FindAllStringSubmatch(header, -1) {
		rels[match[2]] = match[1]
	}

	nextURL, hasNext := rels["next"]
	lastURL, hasLast := rels["last"]
	if !hasNext || !hasLast {
		return nil
	}

	next, ok := pageNumber(nextURL)
	if !ok {
		return nil
	}
	last, ok := pageNumber(lastURL)
	if !ok {
		return nil
	}

	return &PageRange{Next: next, Last: last}
}

// pageNumber extracts the integer page query parameter from a URL.
func pageNumber(rawURL string) (int, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	value := parsed.Query().Get("page")
	if value == "" {
		return 0, false
	}
	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return page, true
}

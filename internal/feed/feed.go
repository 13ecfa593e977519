// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed parses arXiv Atom responses into Paper records in a single
// pass over the XML token stream. Context flags scoped to the current entry
// route character data into the right field, which disambiguates elements
// like id, title, and name that occur at several nesting depths.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/arxiv-query/pkg/types"
)

// arxivNS is the namespace of the arXiv-specific entry elements
// (comment, journal_ref, primary_category).
const arxivNS = "http://arxiv.org/schemas/atom"

// scanState tracks which field-bearing element the scan is currently
// inside. One state value is local to each Parse call, so parses are
// independent and safe to run concurrently.
type scanState struct {
	inEntry      bool
	inID         bool
	inTitle      bool
	inAuthor     bool
	inName       bool
	inSummary    bool
	inPublished  bool
	inUpdated    bool
	inComment    bool
	inJournalRef bool
}

// textActive reports whether character data currently has a destination.
func (s *scanState) textActive() bool {
	return s.inID || s.inTitle || (s.inAuthor && s.inName) ||
		s.inSummary || s.inPublished || s.inUpdated ||
		s.inComment || s.inJournalRef
}

// reset clears every flag, including inEntry.
func (s *scanState) reset() {
	*s = scanState{}
}

// Parse reads one complete feed document and returns the Paper records in
// document order. Malformed XML fails the whole parse; no partial record
// list is returned.
func Parse(r io.Reader) ([]types.Paper, error) {
	dec := xml.NewDecoder(r)

	var (
		st     scanState
		cur    types.Paper
		papers []types.Paper
		buf    strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed feed: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			openElem(&st, t, &cur, &buf)
		case xml.EndElement:
			papers = closeElem(&st, t, &cur, papers, &buf)
		case xml.CharData:
			// The decoder can split text around entity references, so
			// character data accumulates until the element closes.
			if st.inEntry && st.textActive() {
				buf.Write(t)
			}
		}
	}

	return papers, nil
}

// openElem routes a start element. Go's decoder presents self-closing elements
// as a start immediately followed by an end, so attribute-only elements
// (link, category, primary_category) are handled here for both forms.
func openElem(st *scanState, e xml.StartElement, cur *types.Paper, buf *strings.Builder) {
	name := e.Name.Local

	if name == "entry" {
		// A nested entry open discards any unsealed accumulator.
		st.reset()
		st.inEntry = true
		*cur = types.Paper{}
		buf.Reset()
		return
	}
	if !st.inEntry {
		return
	}

	switch name {
	case "id":
		st.inID = true
		buf.Reset()
	case "title":
		st.inTitle = true
		buf.Reset()
	case "author":
		st.inAuthor = true
	case "name":
		// Author names are the only name element carrying a value; the
		// author scope prevents false matches elsewhere.
		if st.inAuthor {
			st.inName = true
			buf.Reset()
		}
	case "summary":
		st.inSummary = true
		buf.Reset()
	case "published":
		st.inPublished = true
		buf.Reset()
	case "updated":
		st.inUpdated = true
		buf.Reset()
	case "comment":
		if e.Name.Space == arxivNS {
			st.inComment = true
			buf.Reset()
		}
	case "journal_ref":
		if e.Name.Space == arxivNS {
			st.inJournalRef = true
			buf.Reset()
		}
	case "link":
		applyLink(e.Attr, cur)
	case "primary_category":
		if e.Name.Space == arxivNS {
			if term, ok := attrValue(e.Attr, "term"); ok {
				cur.PrimaryCategory = term
			}
		}
	case "category":
		if term, ok := attrValue(e.Attr, "term"); ok {
			cur.Categories = append(cur.Categories, term)
		}
	}
}

// closeElem routes an end element, committing buffered text into the
// accumulator and sealing the record at entry close.
func closeElem(st *scanState, e xml.EndElement, cur *types.Paper, papers []types.Paper, buf *strings.Builder) []types.Paper {
	if !st.inEntry {
		return papers
	}

	switch e.Name.Local {
	case "entry":
		st.reset()
		papers = append(papers, *cur)
		*cur = types.Paper{}
	case "id":
		if st.inID {
			cur.ID = buf.String()
			st.inID = false
		}
	case "title":
		if st.inTitle {
			cur.Title = buf.String()
			st.inTitle = false
		}
	case "name":
		if st.inAuthor && st.inName {
			if s := buf.String(); s != "" {
				cur.Authors = append(cur.Authors, s)
			}
			st.inName = false
		}
	case "author":
		st.inAuthor = false
	case "summary":
		if st.inSummary {
			cur.Abstract = normalizeAbstract(buf.String())
			st.inSummary = false
		}
	case "published":
		if st.inPublished {
			cur.Published = buf.String()
			st.inPublished = false
		}
	case "updated":
		if st.inUpdated {
			cur.Updated = buf.String()
			st.inUpdated = false
		}
	case "comment":
		if st.inComment {
			if s := buf.String(); s != "" {
				cur.Comments = append(cur.Comments, s)
			}
			st.inComment = false
		}
	case "journal_ref":
		if st.inJournalRef {
			cur.JournalRef = buf.String()
			st.inJournalRef = false
		}
	}

	buf.Reset()
	return papers
}

// applyLink inspects a link element's attributes and records the pdf or
// doi href. Links matching neither title are ignored; a later match
// overwrites an earlier one.
func applyLink(attrs []xml.Attr, cur *types.Paper) {
	var href, title string
	for _, a := range attrs {
		switch a.Name.Local {
		case "href":
			href = a.Value
		case "title":
			title = a.Value
		}
	}
	switch title {
	case "pdf":
		cur.PDFURL = href
	case "doi":
		cur.DOI = href
	}
}

// attrValue returns the named attribute, reporting absence rather than
// treating it as an error.
func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// normalizeAbstract trims surrounding whitespace and strips embedded
// newlines; the feed hard-wraps summaries.
func normalizeAbstract(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "")
}

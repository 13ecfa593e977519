// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// Paper holds the metadata reconstructed from one feed entry.
type Paper struct {
	// ID is the entry identifier URL (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author names in feed order. Duplicates are kept.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the entry summary, trimmed and with newlines removed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the submission timestamp as returned by the feed (RFC 3339).
	Published string `json:"published" yaml:"published"`

	// Updated is the last-revision timestamp as returned by the feed (RFC 3339).
	Updated string `json:"updated" yaml:"updated"`

	// DOI is the resolver URL from the entry's doi link, or empty.
	DOI string `json:"doi" yaml:"doi"`

	// Comments lists the free-text comment values in feed order.
	Comments []string `json:"comments" yaml:"comments"`

	// JournalRef is the journal reference, or empty for preprints.
	JournalRef string `json:"journal_ref" yaml:"journal_ref"`

	// PDFURL is the href of the entry's pdf link, or empty.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// PrimaryCategory is the primary subject classification code.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Categories lists all subject codes in feed order, duplicates kept.
	Categories []string `json:"categories" yaml:"categories"`
}

// PublishedTime parses the published timestamp. The zero time is returned
// when the feed supplied none.
func (p Paper) PublishedTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.Published)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UpdatedTime parses the updated timestamp. The zero time is returned
// when the feed supplied none.
func (p Paper) UpdatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.Updated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Slug derives a filesystem-safe identifier from the entry ID URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" becomes "2301.07041v1").
func (p Paper) Slug() string {
	const prefix = "/abs/"
	id := p.ID
	if idx := strings.LastIndex(id, prefix); idx >= 0 {
		id = id[idx+len(prefix):]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, id)
}

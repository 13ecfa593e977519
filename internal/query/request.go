// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultBaseURL is the arXiv search endpoint.
const DefaultBaseURL = "http://export.arxiv.org/api/query"

// SortBy selects the result ordering key.
type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
	SortBySubmittedDate   SortBy = "submittedDate"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

var (
	// ErrEmptyQuery is returned when a request carries neither an
	// expression nor a date range.
	ErrEmptyQuery = errors.New("query expression is empty")

	// ErrInvalidTimestamp is returned for submitted-date bounds not in
	// YYYYMMDDHHMM form.
	ErrInvalidTimestamp = errors.New("invalid submittedDate timestamp")

	// ErrNegativeValue is returned for a negative start offset or
	// max-results cap.
	ErrNegativeValue = errors.New("value must be non-negative")
)

// Request pairs a search expression with the auxiliary parameters of one
// query: submitted-date range, pagination, and sort. Parameters left unset
// are omitted from the rendered URL so the remote defaults apply.
//
// The setters return the receiver for chaining. Invalid values are kept
// and reported by Encode, so a chain stays fluent and still fails before
// any network call.
type Request struct {
	expr               Expr
	dateFrom, dateTo   string
	hasDates           bool
	start, maxResults  int
	hasStart, hasMax   bool
	sortBy             SortBy
	sortOrder          SortOrder
}

// NewRequest builds a request for the given expression.
func NewRequest(expr Expr) *Request {
	return &Request{expr: expr}
}

// SubmittedBetween restricts results to papers submitted in the inclusive
// range [from, to]. Both bounds use YYYYMMDDHHMM form. The range is always
// conjunctive: it is appended to the expression with an implicit AND and
// never participates in grouping.
func (r *Request) SubmittedBetween(from, to string) *Request {
	r.dateFrom, r.dateTo = from, to
	r.hasDates = true
	return r
}

// Start sets the zero-based result offset.
func (r *Request) Start(n int) *Request {
	r.start = n
	r.hasStart = true
	return r
}

// MaxResults caps the number of returned entries.
func (r *Request) MaxResults(n int) *Request {
	r.maxResults = n
	r.hasMax = true
	return r
}

// SortBy sets the result ordering key.
func (r *Request) SortBy(by SortBy) *Request {
	r.sortBy = by
	return r
}

// SortOrder sets the result ordering direction.
func (r *Request) SortOrder(order SortOrder) *Request {
	r.sortOrder = order
	return r
}

// Encode renders the query portion of the request URL, beginning with
// search_query=. Components appear in fixed order: expression, date-range
// clause, start, max_results, sortBy, sortOrder. A final pass replaces any
// %20 artifact with +, since the encoding primitive alone does not
// guarantee the + form on every path.
func (r *Request) Encode() (string, error) {
	expr := r.expr.String()

	if r.hasDates {
		for _, ts := range []string{r.dateFrom, r.dateTo} {
			if !validTimestamp(ts) {
				return "", fmt.Errorf("%w: %q (want YYYYMMDDHHMM)", ErrInvalidTimestamp, ts)
			}
		}
		clause := fmt.Sprintf("submittedDate:[%s+TO+%s]", r.dateFrom, r.dateTo)
		if expr == "" {
			expr = clause
		} else {
			expr += tokenAnd + clause
		}
	}

	if expr == "" {
		return "", ErrEmptyQuery
	}
	expr = strings.ReplaceAll(expr, "%20", "+")

	var b strings.Builder
	b.WriteString("search_query=")
	b.WriteString(expr)

	if r.hasStart {
		if r.start < 0 {
			return "", fmt.Errorf("start %d: %w", r.start, ErrNegativeValue)
		}
		b.WriteString("&start=")
		b.WriteString(strconv.Itoa(r.start))
	}
	if r.hasMax {
		if r.maxResults < 0 {
			return "", fmt.Errorf("max_results %d: %w", r.maxResults, ErrNegativeValue)
		}
		b.WriteString("&max_results=")
		b.WriteString(strconv.Itoa(r.maxResults))
	}
	if r.sortBy != "" {
		b.WriteString("&sortBy=")
		b.WriteString(string(r.sortBy))
	}
	if r.sortOrder != "" {
		b.WriteString("&sortOrder=")
		b.WriteString(string(r.sortOrder))
	}

	return b.String(), nil
}

// URL renders the full request URL against the default endpoint.
func (r *Request) URL() (string, error) {
	enc, err := r.Encode()
	if err != nil {
		return "", err
	}
	return DefaultBaseURL + "?" + enc, nil
}

// validTimestamp reports whether ts is exactly twelve digits.
func validTimestamp(ts string) bool {
	if len(ts) != 12 {
		return false
	}
	for i := 0; i < len(ts); i++ {
		if ts[i] < '0' || ts[i] > '9' {
			return false
		}
	}
	return true
}

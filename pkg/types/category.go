// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is an arXiv subject classification code. The constants cover the
// computer science archive; any valid code string works as a query payload.
type Category string

const (
	CategoryCsAI Category = "cs.AI"
	CategoryCsCL Category = "cs.CL"
	CategoryCsLG Category = "cs.LG"
	CategoryCsGT Category = "cs.GT"
	CategoryCsCV Category = "cs.CV"
	CategoryCsCR Category = "cs.CR"
	CategoryCsCC Category = "cs.CC"
	CategoryCsCE Category = "cs.CE"
	CategoryCsCY Category = "cs.CY"
	CategoryCsDS Category = "cs.DS"
	CategoryCsDM Category = "cs.DM"
	CategoryCsDC Category = "cs.DC"
	CategoryCsET Category = "cs.ET"
	CategoryCsFL Category = "cs.FL"
	CategoryCsGL Category = "cs.GL"
	CategoryCsGR Category = "cs.GR"
	CategoryCsAR Category = "cs.AR"
	CategoryCsHC Category = "cs.HC"
	CategoryCsIR Category = "cs.IR"
)

// String returns the code as sent to the API.
func (c Category) String() string { return string(c) }

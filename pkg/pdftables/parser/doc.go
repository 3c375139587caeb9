// Package parser reads PDF pages and detects the tables on them.
//
// PDF decoding, text extraction and graphics extraction are done by
// github.com/tsawler/tabula. Tables are located by one of three strategies:
// ruled tables are cut along their drawn rulings, unruled tables are split
// into columns by the left edges of their text, and tabula's geometric
// detector is the fallback for everything else. Results are returned as
// models.RawTable values.
package parser

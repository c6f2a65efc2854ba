package dataset

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// India bounding box. Rows outside it are bad geocodes or out-of-country
// records and are dropped unconditionally.
const (
	MinLatitude  = 6.0
	MaxLatitude  = 37.0
	MinLongitude = 68.0
	MaxLongitude = 97.0
)

// columnRenames converges heterogeneous source schemas onto the canonical
// schema after columns have been standardized.
var columnRenames = map[string]string{
	"Bank Name":     ColBank,
	"Branch Name":   ColBranch,
	"Location Type": ColType,
}

// pincodeRe matches a standalone 6-digit sequence, word-boundary delimited.
var pincodeRe = regexp.MustCompile(`\b\d{6}\b`)

// Normalize cleans a raw table into the canonical schema. It standardizes
// column names, coerces and geofences coordinates, derives the Pincode
// column from Address when absent, and normalizes State and City text.
// The input table is not mutated; Normalize is idempotent.
func Normalize(t *Table) *Table {
	clean := standardizeColumns(t)
	clean = geofence(clean)
	derivePincode(clean)
	normalizeText(clean)
	return clean
}

// standardizeColumns trims, replaces underscores with spaces, and
// title-cases every column name, then applies the fixed rename table.
// Rows are copied so later steps can mutate cells freely.
func standardizeColumns(t *Table) *Table {
	columns := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		name := titleCase(strings.ReplaceAll(strings.TrimSpace(col), "_", " "))
		if renamed, ok := columnRenames[name]; ok {
			name = renamed
		}
		columns[i] = name
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}

	return &Table{Columns: columns, Rows: rows}
}

// geofence drops every row whose latitude or longitude is missing,
// non-numeric, or outside the bounding box. Kept coordinates are rewritten
// in canonical numeric form so that a second pass parses identically.
func geofence(t *Table) *Table {
	latIdx := t.ColumnIndex(ColLatitude)
	lngIdx := t.ColumnIndex(ColLongitude)
	if latIdx < 0 || lngIdx < 0 {
		return t
	}

	kept := t.Rows[:0]
	for _, row := range t.Rows {
		lat, latOK := parseCoordinate(t.Cell(row, latIdx))
		lng, lngOK := parseCoordinate(t.Cell(row, lngIdx))
		if !latOK || !lngOK {
			continue
		}
		if lat < MinLatitude || lat > MaxLatitude || lng < MinLongitude || lng > MaxLongitude {
			continue
		}
		row[latIdx] = strconv.FormatFloat(lat, 'f', -1, 64)
		row[lngIdx] = strconv.FormatFloat(lng, 'f', -1, 64)
		kept = append(kept, row)
	}
	t.Rows = kept
	return t
}

// parseCoordinate parses a cell as a float; failures mean null, not error.
func parseCoordinate(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// derivePincode appends a Pincode column extracted from Address when the
// source has no Pincode column of its own. Absence of a match yields an
// empty cell, never an error.
func derivePincode(t *Table) {
	if t.HasColumn(ColPincode) || !t.HasColumn(ColAddress) {
		return
	}

	addressIdx := t.ColumnIndex(ColAddress)
	t.Columns = append(t.Columns, ColPincode)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, pincodeRe.FindString(t.Cell(row, addressIdx)))
	}
}

// normalizeText trims and title-cases State and City. The literal string
// "Nan" is an artifact of stringified missing values upstream and is
// coerced back to a true null; no other null-like token is touched.
func normalizeText(t *Table) {
	for _, name := range []string{ColState, ColCity} {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for _, row := range t.Rows {
			if idx >= len(row) {
				continue
			}
			v := titleCase(strings.TrimSpace(row[idx]))
			if v == "Nan" {
				v = ""
			}
			row[idx] = v
		}
	}
}

// titleCase capitalizes the first letter of every letter run and lowers the
// rest, matching the upstream cleaning convention ("NEW DELHI" -> "New
// Delhi", "nan" -> "Nan").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

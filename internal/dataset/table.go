package dataset

import "strconv"

// Canonical column names after normalization.
const (
	ColBank      = "Bank"
	ColBranch    = "Branch"
	ColType      = "Type"
	ColAddress   = "Address"
	ColCity      = "City"
	ColState     = "State"
	ColPincode   = "Pincode"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
)

// Table is a simple in-memory tabular dataset: a header plus string cells.
// It is the raw form produced by the loader and consumed by Normalize.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row and column index. Rows shorter
// than the header read as empty cells.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Record is one row of the clean table. Every record that survives
// normalization carries in-range numeric coordinates.
type Record struct {
	Bank      string  `json:"bank"`
	Branch    string  `json:"branch,omitempty"`
	Type      string  `json:"type,omitempty"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Pincode   string  `json:"pincode,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Records converts a normalized table into typed records. Coordinates are
// parsed as floats; Normalize guarantees they parse for every row.
func Records(t *Table) []Record {
	var (
		bankIdx    = t.ColumnIndex(ColBank)
		branchIdx  = t.ColumnIndex(ColBranch)
		typeIdx    = t.ColumnIndex(ColType)
		addressIdx = t.ColumnIndex(ColAddress)
		cityIdx    = t.ColumnIndex(ColCity)
		stateIdx   = t.ColumnIndex(ColState)
		pincodeIdx = t.ColumnIndex(ColPincode)
		latIdx     = t.ColumnIndex(ColLatitude)
		lngIdx     = t.ColumnIndex(ColLongitude)
	)

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		lat, _ := strconv.ParseFloat(t.Cell(row, latIdx), 64)
		lng, _ := strconv.ParseFloat(t.Cell(row, lngIdx), 64)

		records = append(records, Record{
			Bank:      t.Cell(row, bankIdx),
			Branch:    t.Cell(row, branchIdx),
			Type:      t.Cell(row, typeIdx),
			Address:   t.Cell(row, addressIdx),
			City:      t.Cell(row, cityIdx),
			State:     t.Cell(row, stateIdx),
			Pincode:   t.Cell(row, pincodeIdx),
			Latitude:  lat,
			Longitude: lng,
		})
	}

	return records
}

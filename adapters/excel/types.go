package excel

// RawRowData represents a row of raw table data as header -> cell pairs
type RawRowData map[string]string

// ExcelData represents the complete table as read from disk
type ExcelData struct {
	Headers []string     // Column headers, trimmed
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether a header is present
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

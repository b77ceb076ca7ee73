package sheet

import "strings"

// ParseCSV splits comma-separated text into rows of fields.
//
// Quoted fields may contain commas and newlines; a doubled quote inside a
// quoted field is one literal quote. Unquoted fields run to the next comma,
// newline or end of input. Carriage returns are dropped everywhere.
func ParseCSV(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
		pending  bool // row has content not yet flushed
	)
	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
		pending = false
	}

	// 区切り文字はすべて ASCII なのでバイト単位で走査する（不正な UTF-8 もそのまま通す）
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			continue
		}
		if inQuotes {
			switch {
			case c == '"' && i+1 < len(text) && text[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				field.WriteByte(c)
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = true
			pending = true
		case ',':
			endField()
			pending = true
		case '\n':
			endRow()
		default:
			field.WriteByte(c)
			pending = true
		}
	}
	if pending || field.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

// blankRow reports whether every field of row is empty after trimming.
func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

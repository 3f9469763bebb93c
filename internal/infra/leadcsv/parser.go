// Package leadcsv reads lead spreadsheets and writes the email export.
package leadcsv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a parsed CSV document. Row 0 is the header.
type Table [][]string

// ErrUnterminatedQuote is wrapped by the ParseError for a quote that is never closed.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// ParseError reports malformed quoting. Line is where the offending quote opens.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid CSV on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse tokenizes comma separated text with double-quote escaping.
//
// A '"' opens or closes a quoted section wherever it appears in a cell, and
// "" inside a quoted section is one literal quote. So `Jane "JJ" Doe` reads
// as "Jane JJ Doe" instead of failing. Quoted sections keep commas and line
// breaks verbatim, \r\n included. Outside quotes rows end at \n or \r\n.
// Blank lines are skipped. A quote still open at the end of input fails the
// whole parse.
func Parse(data []byte) (Table, error) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	var (
		table     Table
		row       []string
		cell      strings.Builder
		inQuotes  bool
		line      = 1
		quoteLine int
	)

	endRow := func() {
		row = append(row, cell.String())
		cell.Reset()
		if !isBlank(row) {
			table = append(table, row)
		}
		row = nil
	}

	for i := 0; i < len(decoded); i++ {
		c := decoded[i]

		if inQuotes {
			switch {
			case c == '"' && i+1 < len(decoded) && decoded[i+1] == '"':
				cell.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				if c == '\n' {
					line++
				}
				cell.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '"':
			inQuotes = true
			quoteLine = line
		case c == ',':
			row = append(row, cell.String())
			cell.Reset()
		case c == '\r' && i+1 < len(decoded) && decoded[i+1] == '\n':
			i++
			line++
			endRow()
		case c == '\n':
			line++
			endRow()
		default:
			cell.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, &ParseError{Line: quoteLine, Err: ErrUnterminatedQuote}
	}
	if row != nil || cell.Len() > 0 {
		endRow()
	}
	return table, nil
}

// ParseString is Parse for text already in memory.
func ParseString(s string) (Table, error) {
	return Parse([]byte(s))
}

func isBlank(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

// Header returns row 0, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Rows returns every row after the header.
func (t Table) Rows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Preview returns the header followed by at most maxRows data rows.
func (t Table) Preview(maxRows int) Table {
	if len(t) == 0 {
		return Table{}
	}
	end := 1 + maxRows
	if end > len(t) {
		end = len(t)
	}
	out := make(Table, end)
	copy(out, t[:end])
	return out
}

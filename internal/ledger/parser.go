package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
)

// delimiter for tabular uploads. Quoting and escaping are intentionally
// unsupported; the format is plain comma-split lines.
const delimiter = ","

// parsePayload turns raw upload bytes into a structured payload. Files
// ending in .json decode as a single JSON value; everything else is
// treated as delimited text with a header row.
func parsePayload(filename string, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{File: filename, Err: errors.New("empty content")}
	}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return parseJSON(filename, raw)
	}
	return parseDelimited(filename, raw)
}

func parseJSON(filename string, raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{File: filename, Err: errors.New("trailing data after JSON value")}
	}
	return payload, nil
}

// parseDelimited zips each non-empty line against the header row. Short
// rows fill the missing fields as empty strings rather than being
// rejected.
func parseDelimited(filename string, raw []byte) (any, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	var headers []string
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, delimiter)
		if headers == nil {
			headers = cols
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cols) {
				row[h] = cols[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if headers == nil {
		return nil, &ParseError{File: filename, Err: errors.New("missing header row")}
	}
	return rows, nil
}

package parser

import (
	"errors"
	"io"
)

// Parse scans and parses source text. Scan and syntax errors are merged
// into a single ErrorList ordered by position; when it is non-nil the
// returned Program is partial.
func Parse(src string) (*Program, error) {
	tokens, scanErr := Scan(src)
	prog, parseErr := ParseTokens(tokens)

	var errs ErrorList
	for _, err := range []error{scanErr, parseErr} {
		var list ErrorList
		if errors.As(err, &list) {
			errs = append(errs, list...)
		}
	}
	errs.Sort()
	return prog, errs.Err()
}

// ParseReader consumes source from an io.Reader and parses it.
func ParseReader(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

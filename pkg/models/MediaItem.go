package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

var (
	ErrDataFetch = fmt.Errorf("gallery data fetch failed")
)

/*
MediaItem is one gallery photograph. ID and Year arrive from feeds as either
JSON numbers or JSON strings, so both decode into string-backed types.
*/
type MediaItem struct {
	ID        MediaID `json:"id"`
	Src       string  `json:"src"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Year      Year    `json:"year"`
	Event     string  `json:"event"`
}

// MediaID is an opaque identifier, stable across fetches.
type MediaID string

func (id *MediaID) UnmarshalJSON(b []byte) error {
	value, err := scalarString(b)

	if err != nil {
		return fmt.Errorf("invalid media id %s: %w", string(b), err)
	}

	*id = MediaID(value)
	return nil
}

// Year is a year facet value. Comparisons are stringwise.
type Year string

func (y *Year) UnmarshalJSON(b []byte) error {
	value, err := scalarString(b)

	if err != nil {
		return fmt.Errorf("invalid year %s: %w", string(b), err)
	}

	*y = Year(value)
	return nil
}

func (y Year) String() string {
	return string(y)
}

/*
scalarString returns the textual form of a JSON string or number. null
becomes the empty string. Numbers are written in plain decimal form, so
2023, 2023.0 and 2.023e3 all come back as "2023".
*/
func scalarString(b []byte) (string, error) {
	var (
		err error
		s   string
	)

	b = bytes.TrimSpace(b)

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}

	if b[0] == '"' {
		if err = json.Unmarshal(b, &s); err != nil {
			return "", err
		}

		return s, nil
	}

	f, err := strconv.ParseFloat(string(b), 64)

	if err != nil {
		return "", fmt.Errorf("expected a string or number")
	}

	// Plain integers keep every digit, even past float64 precision.
	if !bytes.ContainsAny(b, ".eE") {
		return string(b), nil
	}

	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

package gallery

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/qmacanada/website/pkg/models"
)

type feedEnvelope struct {
	Results []models.MediaItem `json:"results"`
}

/*
ParseFeed decodes a gallery feed body. The feed is either a bare JSON array
of items or an object whose "results" field holds the array.
*/
func ParseFeed(body []byte) ([]models.MediaItem, error) {
	var (
		err      error
		items    []models.MediaItem
		envelope feedEnvelope
	)

	body = bytes.TrimSpace(body)

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response body", models.ErrDataFetch)
	}

	switch body[0] {
	case '[':
		if err = json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("%w: error decoding item array: %s", models.ErrDataFetch, err.Error())
		}

	case '{':
		if err = json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: error decoding results object: %s", models.ErrDataFetch, err.Error())
		}

		items = envelope.Results

	default:
		return nil, fmt.Errorf("%w: response is neither an array nor an object", models.ErrDataFetch)
	}

	if items == nil {
		items = []models.MediaItem{}
	}

	return items, nil
}

/*
Filter returns the items that pass filter, keeping their input order.
*/
func Filter(items []models.MediaItem, filter models.FilterState) []models.MediaItem {
	result := make([]models.MediaItem, 0, len(items))

	for _, item := range items {
		if filter.Matches(item) {
			result = append(result, item)
		}
	}

	return result
}

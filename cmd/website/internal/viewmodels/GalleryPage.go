package viewmodels

import (
	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
)

type GalleryPage struct {
	BaseViewModel
	YearChips    []FilterChip
	EventChips   []FilterChip
	Filter       models.FilterState
	Cards        []GalleryCard
	Lightbox     *GalleryCard
	RevealPolicy string
}

type FilterChip struct {
	Label    string
	Value    string
	IsActive bool
}

type GalleryCard struct {
	ID        string
	Src       string
	Thumbnail string
	Event     string
	Year      string
	Reveal    string
}

func NewFilterChips(values []string, active string) []FilterChip {
	result := make([]FilterChip, 0, len(values))

	for _, value := range values {
		result = append(result, FilterChip{
			Label:    value,
			Value:    value,
			IsActive: value == active,
		})
	}

	return result
}

func NewGalleryCard(item models.MediaItem, reveal gallery.RevealState) GalleryCard {
	thumbnail := item.Thumbnail

	if thumbnail == "" {
		thumbnail = item.Src
	}

	return GalleryCard{
		ID:        string(item.ID),
		Src:       item.Src,
		Thumbnail: thumbnail,
		Event:     item.Event,
		Year:      item.Year.String(),
		Reveal:    reveal.String(),
	}
}

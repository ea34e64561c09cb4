package gallerypage

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	items []models.MediaItem
	err   error
}

func (s fakeSource) Fetch(ctx context.Context) ([]models.MediaItem, error) {
	return s.items, s.err
}

func newController(source gallery.Source, policy gallery.RevealPolicy) GalleryPageController {
	return NewGalleryPageController(GalleryPageControllerConfig{
		RevealPolicy: policy,
		Source:       source,
	})
}

func feed() []models.MediaItem {
	return []models.MediaItem{
		{ID: "1", Src: "/1.jpg", Year: "2023", Event: "Festival"},
		{ID: "2", Src: "/2.jpg", Thumbnail: "/2-small.jpg", Year: "2022", Event: "Community"},
		{ID: "3", Src: "/3.jpg", Year: "2023", Event: "Tradition"},
	}
}

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []models.MediaID{"1", "2"}, ParseIDList(" 1, ,2,"))
	assert.Empty(t, ParseIDList(""))
}

func TestParseGalleryQueryNormalizesUnknownFacets(t *testing.T) {
	r := httptest.NewRequest("GET", "/gallery?year=1999&event=Festival&photo=2&revealed=1,3", nil)

	got := ParseGalleryQuery(r)

	assert.Equal(t, models.FilterState{Year: "All", Event: "Festival"}, got.Filter)
	assert.Equal(t, models.MediaID("2"), got.PhotoID)
	assert.Equal(t, []models.MediaID{"1", "3"}, got.Revealed)
}

func TestBuildGalleryPageFiltersAndMarksActiveChips(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerMount)

	got, err := c.BuildGalleryPage(context.Background(), GalleryQuery{
		Filter: models.FilterState{Year: "2023", Event: "All"},
	})

	require.NoError(t, err)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "1", got.Cards[0].ID)
	assert.Equal(t, "3", got.Cards[1].ID)
	assert.Equal(t, "pending", got.Cards[0].Reveal)
	assert.Equal(t, "/1.jpg", got.Cards[0].Thumbnail)
	assert.Nil(t, got.Lightbox)
	assert.False(t, got.IsWarning)

	active := []string{}

	for _, chip := range got.YearChips {
		if chip.IsActive {
			active = append(active, chip.Value)
		}
	}

	assert.Equal(t, []string{"2023"}, active)
	assert.Len(t, got.EventChips, len(models.EventFacets))
	assert.True(t, got.EventChips[0].IsActive)
}

func TestBuildGalleryPageKeepsRevealedCardsThatStayVisible(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerMount)

	got, err := c.BuildGalleryPage(context.Background(), GalleryQuery{
		Filter:   models.FilterState{Year: "2023", Event: "All"},
		Revealed: []models.MediaID{"1", "2"},
	})

	require.NoError(t, err)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "revealed", got.Cards[0].Reveal)
	assert.Equal(t, "pending", got.Cards[1].Reveal)
}

func TestBuildGalleryPageOpensLightbox(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerMount)

	got, err := c.BuildGalleryPage(context.Background(), GalleryQuery{
		Filter:  models.DefaultFilterState(),
		PhotoID: "2",
	})

	require.NoError(t, err)
	require.NotNil(t, got.Lightbox)
	assert.Equal(t, "/2.jpg", got.Lightbox.Src)
	assert.Equal(t, "/2-small.jpg", got.Lightbox.Thumbnail)

	got, err = c.BuildGalleryPage(context.Background(), GalleryQuery{
		Filter:  models.DefaultFilterState(),
		PhotoID: "404",
	})

	require.NoError(t, err)
	assert.Nil(t, got.Lightbox)
}

func TestBuildGalleryPageSurvivesFeedFailure(t *testing.T) {
	c := newController(fakeSource{err: fmt.Errorf("%w: dial tcp", models.ErrDataFetch)}, gallery.RevealPerMount)

	got, err := c.BuildGalleryPage(context.Background(), GalleryQuery{Filter: models.DefaultFilterState()})

	require.NoError(t, err)
	assert.True(t, got.IsWarning)
	assert.NotEmpty(t, got.Message)
	assert.Empty(t, got.Cards)
	assert.Len(t, got.YearChips, len(models.YearFacets))
}

func TestBuildGalleryPageReportsCancelledRequests(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerMount)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.BuildGalleryPage(ctx, GalleryQuery{Filter: models.DefaultFilterState()})

	assert.ErrorIs(t, err, gallery.ErrDiscarded)
}

func TestViewDataForGridRequestIsPartialAndKeepsRevealedCards(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerMount)
	r := httptest.NewRequest("GET", "/gallery/grid?year=2023&event=All&revealed=3,2&photo=1", nil)
	r.Header.Set("HX-Request", "true")

	got, err := c.ViewDataForRequest(r, true)

	require.NoError(t, err)
	assert.True(t, got.IsHtmx)
	assert.Equal(t, "mount", got.RevealPolicy)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "1", got.Cards[0].ID)
	assert.Equal(t, "pending", got.Cards[0].Reveal)
	assert.Equal(t, "3", got.Cards[1].ID)
	assert.Equal(t, "revealed", got.Cards[1].Reveal)
	require.NotNil(t, got.Lightbox)
	assert.Equal(t, "1", got.Lightbox.ID)
}

func TestViewDataForGridRequestKeepsWarningOnFeedFailure(t *testing.T) {
	c := newController(fakeSource{err: fmt.Errorf("%w: timeout", models.ErrDataFetch)}, gallery.RevealPerMount)
	r := httptest.NewRequest("GET", "/gallery/grid?year=2022", nil)

	got, err := c.ViewDataForRequest(r, true)

	require.NoError(t, err)
	assert.True(t, got.IsHtmx)
	assert.True(t, got.IsWarning)
	assert.NotEmpty(t, got.Message)
	assert.Empty(t, got.Cards)
}

func TestViewDataForFullPageRequest(t *testing.T) {
	c := newController(fakeSource{items: feed()}, gallery.RevealPerIdentity)
	r := httptest.NewRequest("GET", "/gallery", nil)

	got, err := c.ViewDataForRequest(r, false)

	require.NoError(t, err)
	assert.False(t, got.IsHtmx)
	assert.Equal(t, "identity", got.RevealPolicy)
	assert.Len(t, got.Cards, 3)
}

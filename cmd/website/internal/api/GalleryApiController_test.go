package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGalleryService struct {
	items []models.MediaItem
	err   error
}

func (s fakeGalleryService) GetMediaItems() ([]models.MediaItem, error) {
	return s.items, s.err
}

func TestListMediaReturnsResultsEnvelope(t *testing.T) {
	items := []models.MediaItem{
		{ID: "a", Src: "/a.jpg", Year: "2023", Event: "Festival"},
		{ID: "b", Src: "/b.jpg", Year: "2022", Event: "Community"},
	}

	c := NewGalleryApiController(GalleryApiControllerConfig{GalleryService: fakeGalleryService{items: items}})

	w := httptest.NewRecorder()
	c.ListMedia(w, httptest.NewRequest(http.MethodGet, "/api/gallery/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	got, err := gallery.ParseFeed(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, items, got)

	response := MediaListResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
}

func TestListMediaFiltersByQuery(t *testing.T) {
	items := []models.MediaItem{
		{ID: "a", Year: "2023", Event: "Festival"},
		{ID: "b", Year: "2022", Event: "Community"},
	}

	c := NewGalleryApiController(GalleryApiControllerConfig{GalleryService: fakeGalleryService{items: items}})

	w := httptest.NewRecorder()
	c.ListMedia(w, httptest.NewRequest(http.MethodGet, "/api/gallery/?year=2022", nil))

	got, err := gallery.ParseFeed(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.MediaID("b"), got[0].ID)
}

func TestListMediaReportsServiceErrors(t *testing.T) {
	c := NewGalleryApiController(GalleryApiControllerConfig{GalleryService: fakeGalleryService{err: fmt.Errorf("bucket gone")}})

	w := httptest.NewRecorder()
	c.ListMedia(w, httptest.NewRequest(http.MethodGet, "/api/gallery/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "gallery is unavailable")
}

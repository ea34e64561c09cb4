package api

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/goccy/go-json"
	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
	"github.com/qmacanada/website/pkg/services"
)

type GalleryApiHandlers interface {
	ListMedia(w http.ResponseWriter, r *http.Request)
}

type GalleryApiControllerConfig struct {
	GalleryService services.GalleryServicer
}

type GalleryApiController struct {
	galleryService services.GalleryServicer
}

func NewGalleryApiController(config GalleryApiControllerConfig) GalleryApiController {
	return GalleryApiController{
		galleryService: config.GalleryService,
	}
}

type MediaListResponse struct {
	Count   int                `json:"count"`
	Results []models.MediaItem `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

/*
GET /api/gallery/

Optional query: year, event.
*/
func (c GalleryApiController) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := c.galleryService.GetMediaItems()

	if err != nil {
		slog.Error("error getting gallery media items", "error", err)
		writeJson(w, http.StatusInternalServerError, ErrorResponse{Error: "gallery is unavailable"})
		return
	}

	filter := models.FilterState{
		Year:  models.ParseYearFacet(httphelpers.GetFromRequest[string](r, "year")),
		Event: models.ParseEventFacet(httphelpers.GetFromRequest[string](r, "event")),
	}

	results := gallery.Filter(items, filter)

	writeJson(w, http.StatusOK, MediaListResponse{
		Count:   len(results),
		Results: results,
	})
}

func writeJson(w http.ResponseWriter, status int, value any) {
	b, err := json.Marshal(value)

	if err != nil {
		slog.Error("error encoding JSON response", "error", err)
		httphelpers.TextInternalServerError(w, "error encoding response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

package gallerypage

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/qmacanada/website/cmd/website/internal/viewmodels"
	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
)

type GalleryPageHandlers interface {
	GalleryGrid(w http.ResponseWriter, r *http.Request)
	GalleryPage(w http.ResponseWriter, r *http.Request)
}

type GalleryPageControllerConfig struct {
	Renderer     rendering.TemplateRenderer
	RevealPolicy gallery.RevealPolicy
	Source       gallery.Source
}

type GalleryPageController struct {
	renderer     rendering.TemplateRenderer
	revealPolicy gallery.RevealPolicy
	source       gallery.Source
}

func NewGalleryPageController(config GalleryPageControllerConfig) GalleryPageController {
	return GalleryPageController{
		renderer:     config.Renderer,
		revealPolicy: config.RevealPolicy,
		source:       config.Source,
	}
}

/*
GalleryQuery is what a gallery request asks for. Revealed lists the photos
the browser has already played the reveal effect for.
*/
type GalleryQuery struct {
	Filter   models.FilterState
	PhotoID  models.MediaID
	Revealed []models.MediaID
}

func ParseGalleryQuery(r *http.Request) GalleryQuery {
	return GalleryQuery{
		Filter: models.FilterState{
			Year:  models.ParseYearFacet(httphelpers.GetFromRequest[string](r, "year")),
			Event: models.ParseEventFacet(httphelpers.GetFromRequest[string](r, "event")),
		},
		PhotoID:  models.MediaID(strings.TrimSpace(httphelpers.GetFromRequest[string](r, "photo"))),
		Revealed: ParseIDList(httphelpers.GetFromRequest[string](r, "revealed")),
	}
}

func ParseIDList(value string) []models.MediaID {
	result := []models.MediaID{}

	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, models.MediaID(part))
		}
	}

	return result
}

/*
GET /gallery

Query: year, event, photo (selected photo id), revealed (comma separated ids).
htmx requests get the partial.
*/
func (c GalleryPageController) GalleryPage(w http.ResponseWriter, r *http.Request) {
	viewData, err := c.ViewDataForRequest(r, httphelpers.IsHtmx(r))

	if errors.Is(err, gallery.ErrDiscarded) {
		slog.Debug("gallery request ended before the feed arrived", "path", r.URL.Path)
		return
	}

	c.renderer.Render("pages/gallery", viewData, w)
}

/*
GET /gallery/grid

Same query as GalleryPage. Always renders the partial that chip, card and
lightbox swaps replace #gallery with.
*/
func (c GalleryPageController) GalleryGrid(w http.ResponseWriter, r *http.Request) {
	viewData, err := c.ViewDataForRequest(r, true)

	if errors.Is(err, gallery.ErrDiscarded) {
		slog.Debug("gallery grid request ended before the feed arrived", "path", r.URL.Path)
		return
	}

	c.renderer.Render("pages/gallery", viewData, w)
}

/*
ViewDataForRequest builds the gallery view data for r. partial drops the
surrounding layout.
*/
func (c GalleryPageController) ViewDataForRequest(r *http.Request, partial bool) (viewmodels.GalleryPage, error) {
	viewData, err := c.BuildGalleryPage(r.Context(), ParseGalleryQuery(r))
	viewData.IsHtmx = partial
	return viewData, err
}

/*
BuildGalleryPage loads the feed into a fresh view model, applies the query
and flattens the result for the template. A failed feed still produces a
page, with no cards and a warning message.
*/
func (c GalleryPageController) BuildGalleryPage(ctx context.Context, query GalleryQuery) (viewmodels.GalleryPage, error) {
	vm := gallery.NewViewModel(gallery.ViewModelConfig{
		RevealPolicy: c.revealPolicy,
	})

	defer vm.Close()

	viewData := viewmodels.GalleryPage{
		BaseViewModel: viewmodels.BaseViewModel{
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/gallery.js"},
			},
		},
		Filter:       query.Filter,
		Cards:        []viewmodels.GalleryCard{},
		RevealPolicy: c.revealPolicy.String(),
	}

	err := vm.Load(ctx, c.source)

	if errors.Is(err, gallery.ErrDiscarded) {
		return viewData, err
	}

	if err != nil {
		viewData.IsWarning = true
		viewData.Message = "Our gallery is taking a break. Please check back soon."
	}

	vm.SetFilter(query.Filter)

	for _, id := range query.Revealed {
		vm.MarkRevealed(id)
	}

	for _, entry := range vm.VisibleEntries() {
		viewData.Cards = append(viewData.Cards, viewmodels.NewGalleryCard(entry.Item, entry.Reveal))
	}

	if query.PhotoID != "" && vm.SelectByID(query.PhotoID) {
		selected, _ := vm.Selected()
		card := viewmodels.NewGalleryCard(selected, vm.RevealState(selected.ID))
		viewData.Lightbox = &card
	}

	viewData.YearChips = viewmodels.NewFilterChips(models.YearFacets, query.Filter.Year)
	viewData.EventChips = viewmodels.NewFilterChips(models.EventFacets, query.Filter.Event)

	return viewData, nil
}

package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qmacanada/website/pkg/models"
)

var (
	ErrDiscarded = fmt.Errorf("gallery load result discarded")
)

// Source supplies the gallery collection. Fetch is a single read-only call.
type Source interface {
	Fetch(ctx context.Context) ([]models.MediaItem, error)
}

type ViewModelConfig struct {
	RevealPolicy RevealPolicy
	Logger       *slog.Logger
}

// Entry is a visible item together with its reveal state.
type Entry struct {
	Item   models.MediaItem
	Reveal RevealState
}

/*
ViewModel holds the gallery collection, the selected facets, the lightbox
selection and the reveal state of each visible item. A ViewModel has a
single owner and is not safe for concurrent use.
*/
type ViewModel struct {
	items    []models.MediaItem
	filter   models.FilterState
	selected *models.MediaItem
	reveal   *RevealTracker
	logger   *slog.Logger
	closed   bool
}

func NewViewModel(config ViewModelConfig) *ViewModel {
	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return &ViewModel{
		items:  []models.MediaItem{},
		filter: models.DefaultFilterState(),
		reveal: NewRevealTracker(config.RevealPolicy),
		logger: logger.With("component", "gallery"),
	}
}

/*
Load fetches the collection from source and replaces the current items. A
failed fetch is logged and leaves the items untouched; the returned error
wraps models.ErrDataFetch so callers can show an empty state. A result that
arrives after Close or after ctx is done is dropped.
*/
func (vm *ViewModel) Load(ctx context.Context, source Source) error {
	var (
		err   error
		items []models.MediaItem
	)

	items, err = source.Fetch(ctx)

	if vm.closed || ctx.Err() != nil {
		vm.logger.Debug("discarding gallery load result", "closed", vm.closed, "ctxError", ctx.Err())
		return ErrDiscarded
	}

	if err != nil {
		if !errors.Is(err, models.ErrDataFetch) {
			err = fmt.Errorf("%w: %s", models.ErrDataFetch, err.Error())
		}

		vm.logger.Error("failed to fetch gallery images", "error", err)
		return err
	}

	if items == nil {
		items = []models.MediaItem{}
	}

	vm.items = items
	vm.refreshSelection()
	vm.reveal.Sync(vm.VisibleItems())

	vm.logger.Debug("gallery loaded", "numItems", len(items))
	return nil
}

// Close marks the view model as torn down. Later loads are discarded.
func (vm *ViewModel) Close() {
	vm.closed = true
}

func (vm *ViewModel) Items() []models.MediaItem {
	result := make([]models.MediaItem, len(vm.items))
	copy(result, vm.items)
	return result
}

func (vm *ViewModel) Filter() models.FilterState {
	return vm.filter
}

/*
SetYearFilter replaces the year facet. value must be one of
models.YearFacets.
*/
func (vm *ViewModel) SetYearFilter(value string) {
	vm.filter.Year = value
	vm.reveal.Sync(vm.VisibleItems())
}

/*
SetEventFilter replaces the event facet. value must be one of
models.EventFacets.
*/
func (vm *ViewModel) SetEventFilter(value string) {
	vm.filter.Event = value
	vm.reveal.Sync(vm.VisibleItems())
}

func (vm *ViewModel) SetFilter(filter models.FilterState) {
	vm.filter = filter
	vm.reveal.Sync(vm.VisibleItems())
}

// VisibleItems returns the items matching the current filter in input order.
func (vm *ViewModel) VisibleItems() []models.MediaItem {
	return Filter(vm.items, vm.filter)
}

func (vm *ViewModel) VisibleEntries() []Entry {
	visible := vm.VisibleItems()
	result := make([]Entry, 0, len(visible))

	for _, item := range visible {
		result = append(result, Entry{
			Item:   item,
			Reveal: vm.reveal.State(item.ID),
		})
	}

	return result
}

// Select replaces the current selection with item.
func (vm *ViewModel) Select(item models.MediaItem) {
	vm.selected = &item
}

/*
SelectByID selects the item with the given id from the collection. It
returns false, leaving the selection unchanged, when no item has that id.
*/
func (vm *ViewModel) SelectByID(id models.MediaID) bool {
	for _, item := range vm.items {
		if item.ID == id {
			vm.Select(item)
			return true
		}
	}

	return false
}

func (vm *ViewModel) Deselect() {
	vm.selected = nil
}

// Selected returns the selected item, if any.
func (vm *ViewModel) Selected() (models.MediaItem, bool) {
	if vm.selected == nil {
		return models.MediaItem{}, false
	}

	return *vm.selected, true
}

/*
MarkRevealed records that the reveal effect for id has played. Only items
in the visible set can be revealed.
*/
func (vm *ViewModel) MarkRevealed(id models.MediaID) bool {
	return vm.reveal.MarkRevealed(id)
}

func (vm *ViewModel) RevealState(id models.MediaID) RevealState {
	return vm.reveal.State(id)
}

/*
refreshSelection keeps a selected item pointing at the newly loaded copy,
and drops the selection when the item is gone.
*/
func (vm *ViewModel) refreshSelection() {
	if vm.selected == nil {
		return
	}

	if !vm.SelectByID(vm.selected.ID) {
		vm.selected = nil
	}
}

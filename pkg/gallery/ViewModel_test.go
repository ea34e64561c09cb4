package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/qmacanada/website/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	items  []models.MediaItem
	err    error
	calls  int
	onCall func()
}

func (s *stubSource) Fetch(ctx context.Context) ([]models.MediaItem, error) {
	s.calls++

	if s.onCall != nil {
		s.onCall()
	}

	return s.items, s.err
}

func sampleItems() []models.MediaItem {
	return []models.MediaItem{
		{ID: "1", Src: "/1.jpg", Year: "2023", Event: "Festival"},
		{ID: "2", Src: "/2.jpg", Year: "2022", Event: "Community"},
		{ID: "3", Src: "/3.jpg", Year: "2023", Event: "Tradition"},
		{ID: "4", Src: "/4.jpg", Year: "2021", Event: "Festival"},
	}
}

func loadedViewModel(t *testing.T, policy RevealPolicy, items []models.MediaItem) *ViewModel {
	t.Helper()

	vm := NewViewModel(ViewModelConfig{RevealPolicy: policy})
	require.NoError(t, vm.Load(context.Background(), &stubSource{items: items}))
	return vm
}

func ids(items []models.MediaItem) []models.MediaID {
	result := []models.MediaID{}

	for _, item := range items {
		result = append(result, item.ID)
	}

	return result
}

func TestNewViewModelStartsEmpty(t *testing.T) {
	vm := NewViewModel(ViewModelConfig{})

	assert.Empty(t, vm.Items())
	assert.Empty(t, vm.VisibleItems())
	assert.Equal(t, models.FilterState{Year: "All", Event: "All"}, vm.Filter())

	_, ok := vm.Selected()
	assert.False(t, ok)
}

func TestVisibleItemsWithAllFiltersReturnsEverythingInOrder(t *testing.T) {
	items := sampleItems()
	vm := loadedViewModel(t, RevealPerMount, items)

	assert.Equal(t, items, vm.VisibleItems())
}

func TestVisibleItemsWithYearFilter(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())

	for _, year := range []string{"2023", "2022", "2021"} {
		vm.SetYearFilter(year)

		first := vm.VisibleItems()
		second := vm.VisibleItems()

		assert.Equal(t, first, second, "visible items should be stable for year %s", year)

		for _, item := range first {
			assert.Equal(t, year, item.Year.String())
		}
	}
}

func TestYearFilterScenario(t *testing.T) {
	items := []models.MediaItem{
		{ID: "1", Year: "2023", Event: "Festival"},
		{ID: "2", Year: "2022", Event: "Community"},
	}

	vm := loadedViewModel(t, RevealPerMount, items)

	vm.SetYearFilter("2023")
	assert.Equal(t, []models.MediaID{"1"}, ids(vm.VisibleItems()))

	vm.SetYearFilter("All")
	assert.Equal(t, []models.MediaID{"1", "2"}, ids(vm.VisibleItems()))
}

func TestEventFilterCombinesWithYear(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())

	vm.SetEventFilter("Festival")
	assert.Equal(t, []models.MediaID{"1", "4"}, ids(vm.VisibleItems()))

	vm.SetYearFilter("2021")
	assert.Equal(t, []models.MediaID{"4"}, ids(vm.VisibleItems()))

	vm.SetFilter(models.FilterState{Year: "2022", Event: "Festival"})
	assert.Empty(t, vm.VisibleItems())
}

func TestSelectAndDeselect(t *testing.T) {
	items := sampleItems()
	vm := loadedViewModel(t, RevealPerMount, items)

	vm.Select(items[0])
	selected, ok := vm.Selected()
	require.True(t, ok)
	assert.Equal(t, items[0], selected)

	vm.Select(items[1])
	selected, ok = vm.Selected()
	require.True(t, ok)
	assert.Equal(t, items[1], selected)

	vm.Deselect()
	_, ok = vm.Selected()
	assert.False(t, ok)
}

func TestSelectByID(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())

	assert.True(t, vm.SelectByID("3"))
	selected, _ := vm.Selected()
	assert.Equal(t, models.MediaID("3"), selected.ID)

	assert.False(t, vm.SelectByID("missing"))
	selected, _ = vm.Selected()
	assert.Equal(t, models.MediaID("3"), selected.ID)
}

func TestLoadReplacesItems(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())
	replacement := []models.MediaItem{{ID: "9", Year: "2021", Event: "Celebration"}}

	require.NoError(t, vm.Load(context.Background(), &stubSource{items: replacement}))
	assert.Equal(t, replacement, vm.Items())
}

func TestLoadFailureLeavesItemsEmpty(t *testing.T) {
	vm := NewViewModel(ViewModelConfig{})
	source := &stubSource{err: fmt.Errorf("connection refused")}

	err := vm.Load(context.Background(), source)

	assert.ErrorIs(t, err, models.ErrDataFetch)
	assert.Equal(t, 1, source.calls)
	assert.Empty(t, vm.Items())
	assert.Empty(t, vm.VisibleItems())
}

func TestLoadDiscardsResultAfterClose(t *testing.T) {
	vm := NewViewModel(ViewModelConfig{})
	source := &stubSource{items: sampleItems()}
	source.onCall = vm.Close

	err := vm.Load(context.Background(), source)

	assert.True(t, errors.Is(err, ErrDiscarded))
	assert.Empty(t, vm.Items())
}

func TestLoadDiscardsResultWhenContextIsDone(t *testing.T) {
	vm := NewViewModel(ViewModelConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	source := &stubSource{items: sampleItems(), onCall: cancel}

	err := vm.Load(ctx, source)

	assert.ErrorIs(t, err, ErrDiscarded)
	assert.Empty(t, vm.Items())
}

func TestLoadDropsSelectionThatNoLongerExists(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())
	require.True(t, vm.SelectByID("2"))

	require.NoError(t, vm.Load(context.Background(), &stubSource{items: sampleItems()[:1]}))

	_, ok := vm.Selected()
	assert.False(t, ok)
}

func TestRevealStaysRevealedWhileVisible(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())

	assert.Equal(t, RevealPending, vm.RevealState("1"))
	assert.True(t, vm.MarkRevealed("1"))
	assert.False(t, vm.MarkRevealed("1"))

	// 1 stays visible through both of these.
	vm.SetYearFilter("2023")
	assert.Equal(t, RevealRevealed, vm.RevealState("1"))

	vm.SetEventFilter("Festival")
	assert.Equal(t, RevealRevealed, vm.RevealState("1"))

	vm.SetFilter(models.DefaultFilterState())
	assert.Equal(t, RevealRevealed, vm.RevealState("1"))
}

func TestRevealPerMountReplaysAfterLeaving(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())
	require.True(t, vm.MarkRevealed("2"))

	vm.SetYearFilter("2023")
	assert.Equal(t, RevealPending, vm.RevealState("2"))
	assert.False(t, vm.MarkRevealed("2"), "hidden items cannot be revealed")

	vm.SetYearFilter("All")
	assert.Equal(t, RevealPending, vm.RevealState("2"))
	assert.True(t, vm.MarkRevealed("2"))
}

func TestRevealPerIdentityPersistsAcrossFilterChanges(t *testing.T) {
	vm := loadedViewModel(t, RevealPerIdentity, sampleItems())
	require.True(t, vm.MarkRevealed("2"))

	vm.SetYearFilter("2023")
	vm.SetYearFilter("All")

	assert.Equal(t, RevealRevealed, vm.RevealState("2"))
	assert.False(t, vm.MarkRevealed("2"))
}

func TestVisibleEntriesCarryRevealState(t *testing.T) {
	vm := loadedViewModel(t, RevealPerMount, sampleItems())
	vm.SetYearFilter("2023")
	vm.MarkRevealed("3")

	entries := vm.VisibleEntries()

	require.Len(t, entries, 2)
	assert.Equal(t, models.MediaID("1"), entries[0].Item.ID)
	assert.Equal(t, RevealPending, entries[0].Reveal)
	assert.Equal(t, models.MediaID("3"), entries[1].Item.ID)
	assert.Equal(t, RevealRevealed, entries[1].Reveal)
}

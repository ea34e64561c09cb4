package models

// FilterState holds the currently selected facet values.
type FilterState struct {
	Year  string
	Event string
}

func DefaultFilterState() FilterState {
	return FilterState{
		Year:  FacetAll,
		Event: FacetAll,
	}
}

// Matches reports whether item passes both facets.
func (f FilterState) Matches(item MediaItem) bool {
	return (f.Year == FacetAll || string(item.Year) == f.Year) &&
		(f.Event == FacetAll || item.Event == f.Event)
}

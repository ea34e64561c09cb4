package models

import "github.com/adampresley/adamgokit/slices"

// FacetAll matches every item for the facet it is selected on.
const FacetAll = "All"

var (
	YearFacets  = []string{FacetAll, "2023", "2022", "2021"}
	EventFacets = []string{FacetAll, "Festival", "Community", "Celebration", "Tradition"}
)

func IsYearFacet(value string) bool {
	return slices.IsInSlice(value, YearFacets)
}

func IsEventFacet(value string) bool {
	return slices.IsInSlice(value, EventFacets)
}

/*
ParseYearFacet returns value when it is one of the known year facets, and
FacetAll otherwise.
*/
func ParseYearFacet(value string) string {
	if IsYearFacet(value) {
		return value
	}

	return FacetAll
}

/*
ParseEventFacet returns value when it is one of the known event facets, and
FacetAll otherwise.
*/
func ParseEventFacet(value string) string {
	if IsEventFacet(value) {
		return value
	}

	return FacetAll
}

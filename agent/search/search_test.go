package search

import (
	"reflect"
	"testing"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
)

func testCatalog() []catalogx.Restaurant {
	return []catalogx.Restaurant{
		{ID: 1, Name: "Spice Garden", Cuisine: "South Indian", Location: "Indiranagar", Address: "12, Main, Indiranagar, Bengaluru", PriceRange: "₹1000-1500", Rating: 4.1, Seating: []string{"Indoor", "Garden"}},
		{ID: 2, Name: "Brigade Bistro", Cuisine: "Italian", Location: "Brigade Road", Address: "4, Cross, Brigade Road, Bengaluru", PriceRange: "₹2000-2500", Rating: 4.7, Seating: []string{"Rooftop", "Indoor"}},
		{ID: 3, Name: "Namma Kitchen", Cuisine: "South Indian", Location: "Jayanagar", Address: "9, Street, Jayanagar, Bengaluru", PriceRange: "₹500-1000", Rating: 3.9, Seating: []string{"Community tables"}},
		{ID: 4, Name: "Monsoon Masala", Cuisine: "North Indian", Location: "Koramangala", Address: "31, Avenue, Koramangala, Bengaluru", PriceRange: "₹1500-2000", Rating: 4.5, Seating: []string{"Outdoor", "Terrace"}},
		{ID: 5, Name: "Windmill Wok", Cuisine: "Chinese", Location: "Whitefield", Address: "77, Main, Whitefield, Bengaluru", PriceRange: "₹1000-1500", Rating: 4.3, Seating: []string{"Booth seating"}},
		{ID: 6, Name: "Mango Mantra", Cuisine: "Italian", Location: "HSR Layout", Address: "2, Cross, HSR Layout, Bengaluru", PriceRange: "₹3000-4000", Rating: 4.8, Seating: []string{"Window seating", "Bar seating"}},
		{ID: 7, Name: "Coffee Connect", Cuisine: "Continental", Location: "MG Road", Address: "15, Street, MG Road, Bengaluru", PriceRange: "₹500-1000", Rating: 3.6, Seating: []string{"Indoor"}},
	}
}

func ids(restaurants []catalogx.Restaurant) []int64 {
	out := make([]int64, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.ID)
	}
	return out
}

func TestFindEmptyQueryReturnsTopRated(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{}, testCatalog())

	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got))
	}
	want := []int64{6, 2, 4, 5, 1}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("unexpected ranking: got %v want %v", ids(got), want)
	}
}

func TestFindEmptyQuerySmallCatalog(t *testing.T) {
	t.Parallel()

	small := testCatalog()[:3]
	got := Find(contractx.SearchQuery{}, small)

	if len(got) != 3 {
		t.Fatalf("expected full small catalog, got %d results", len(got))
	}
}

func TestFindCuisineFilterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{Cuisine: "italian"}, testCatalog())

	if len(got) != 2 {
		t.Fatalf("expected 2 Italian restaurants, got %d", len(got))
	}
	for _, r := range got {
		if r.Cuisine != "Italian" {
			t.Fatalf("non-Italian restaurant in result: %s", r.Name)
		}
	}
}

func TestFindLocationMatchesAddressToo(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{Location: "whitefield"}, testCatalog())

	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("expected only Windmill Wok, got %v", ids(got))
	}
}

func TestFindConjunctiveFilters(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{Cuisine: "South Indian", PriceRange: "₹500"}, testCatalog())

	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected only Namma Kitchen, got %v", ids(got))
	}
}

func TestFindSeatingMatchesAnyTag(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{Seating: "rooftop"}, testCatalog())

	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only Brigade Bistro, got %v", ids(got))
	}
}

func TestFindZeroMatchesFallsBackToTopThree(t *testing.T) {
	t.Parallel()

	got := Find(contractx.SearchQuery{Cuisine: "Ethiopian"}, testCatalog())

	if len(got) != 3 {
		t.Fatalf("expected top-3 fallback, got %d results", len(got))
	}
	want := []int64{6, 2, 4}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("unexpected fallback set: got %v want %v", ids(got), want)
	}
}

func TestFindEmptyCatalogIsTheOnlyEmptyResult(t *testing.T) {
	t.Parallel()

	if got := Find(contractx.SearchQuery{Cuisine: "Italian"}, nil); len(got) != 0 {
		t.Fatalf("expected empty result for empty catalog, got %d", len(got))
	}
}

func TestFindIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Find(contractx.SearchQuery{}, testCatalog())
	for i := 0; i < 10; i++ {
		again := Find(contractx.SearchQuery{}, testCatalog())
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("ranking changed between runs: %v vs %v", ids(first), ids(again))
		}
	}
}

func TestFindDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	before := ids(catalog)
	Find(contractx.SearchQuery{}, catalog)
	if !reflect.DeepEqual(ids(catalog), before) {
		t.Fatalf("input catalog order changed: %v", ids(catalog))
	}
}

package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(listings []Listing) []int {
	out := make([]int, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	got := Apply(SampleListings, Query{Search: "LOGO"})
	if diff := cmp.Diff([]int{1}, ids(got)); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySearchCoversSellerCategoryDescription(t *testing.T) {
	cases := []struct {
		name   string
		search string
		want   []int
	}{
		{"seller", "webcraft", []int{2}},
		{"category", "writing", []int{4}},
		{"description", "keyword research", nil},
		{"description hit", "revisions", []int{1}},
		{"whitespace trimmed", "  logo  ", []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(SampleListings, Query{Search: tc.search}))
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyCategoryAllIsNoFilter(t *testing.T) {
	if got := Apply(SampleListings, Query{Category: CategoryAll}); len(got) != len(SampleListings) {
		t.Fatalf("want %d listings, got %d", len(SampleListings), len(got))
	}
	if got := Apply(SampleListings, Query{Category: "Development & IT"}); len(got) != 2 {
		t.Fatalf("want 2 dev listings, got %d", len(got))
	}
}

func TestApplySortOrders(t *testing.T) {
	cases := []struct {
		sort string
		want []int
	}{
		{SortRelevance, []int{1, 2, 3, 4, 5, 6}},
		{SortPriceLow, []int{4, 1, 5, 3, 2, 6}},
		{SortPriceHigh, []int{6, 2, 3, 5, 1, 4}},
		{SortRating, []int{2, 1, 6, 3, 4, 5}},
		{SortReviews, []int{5, 3, 1, 4, 2, 6}},
		{"bogus-key", []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.sort, func(t *testing.T) {
			got := ids(Apply(SampleListings, Query{Sort: tc.sort}))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplySortIsStable(t *testing.T) {
	// Listings 1 and 6 share rating 4.9; catalog order must hold for the tie.
	got := ids(Apply(SampleListings, Query{Sort: SortRating}))
	for i, id := range got {
		if id == 6 {
			for j := 0; j < i; j++ {
				if got[j] == 1 {
					return
				}
			}
			t.Fatalf("listing 1 should precede listing 6 in %v", got)
		}
	}
}

func TestApplyFiltersBeforeSorting(t *testing.T) {
	got := Apply(SampleListings, Query{Category: "Development & IT", Sort: SortPriceLow})
	if diff := cmp.Diff([]int{2, 6}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := make([]Listing, len(SampleListings))
	copy(in, SampleListings)

	Apply(in, Query{Sort: SortPriceHigh})

	if diff := cmp.Diff(SampleListings, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestApplyEmptyInputs(t *testing.T) {
	if got := Apply(nil, Query{Search: "logo"}); len(got) != 0 {
		t.Fatalf("want empty result from nil catalog, got %v", got)
	}
	if got := Apply(SampleListings, Query{Search: "no-such-service"}); len(got) != 0 {
		t.Fatalf("want empty result, got %v", ids(got))
	}
}

func TestCategories(t *testing.T) {
	got := Categories(SampleListings)
	want := []string{
		CategoryAll,
		"Design & Creative",
		"Development & IT",
		"Marketing & Sales",
		"Writing & Content",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

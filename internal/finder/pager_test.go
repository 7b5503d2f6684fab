package finder

import (
	"testing"

	"tamirciBul/internal/models"
)

func page(items []models.ServiceRecord, current, last int) models.ResultPage {
	return models.ResultPage{Items: items, CurrentPage: current, LastPage: last, PerPage: len(items), Total: last * len(items)}
}

func TestMergeAppendDedupes(t *testing.T) {
	existing := []models.ServiceRecord{{ID: "1"}, {ID: "2"}}
	incoming := page([]models.ServiceRecord{{ID: "2"}, {ID: "3"}}, 2, 2)

	got := Merge(existing, incoming, MergeAppend)
	if !sameIDs(got, "1", "2", "3") {
		t.Fatalf("append merge must dedupe by id, got %v", ids(got))
	}
}

func TestMergeAppendPreservesIncomingOrder(t *testing.T) {
	existing := []models.ServiceRecord{{ID: "a"}}
	incoming := page([]models.ServiceRecord{{ID: "c"}, {ID: "b"}}, 2, 3)

	got := Merge(existing, incoming, MergeAppend)
	if !sameIDs(got, "a", "c", "b") {
		t.Fatalf("new tail must keep server order, got %v", ids(got))
	}
}

func TestMergeReplaceDedupesWithinPage(t *testing.T) {
	existing := []models.ServiceRecord{{ID: "old"}}
	incoming := page([]models.ServiceRecord{{ID: "7"}, {ID: "7"}, {ID: "8"}}, 1, 1)

	got := Merge(existing, incoming, MergeReplace)
	if !sameIDs(got, "7", "8") {
		t.Fatalf("replace merge must drop existing and dedupe the page, got %v", ids(got))
	}
}

func TestMergeFirstSeenWins(t *testing.T) {
	existing := []models.ServiceRecord{{ID: "1", DisplayName: "original"}}
	incoming := page([]models.ServiceRecord{{ID: "1", DisplayName: "duplicate"}}, 2, 2)

	got := Merge(existing, incoming, MergeAppend)
	if len(got) != 1 || got[0].DisplayName != "original" {
		t.Fatalf("first occurrence must win, got %+v", got)
	}
}

func TestHasMore(t *testing.T) {
	if !page(nil, 1, 3).HasMore() {
		t.Fatalf("page 1 of 3 must have more")
	}
	if page(nil, 3, 3).HasMore() {
		t.Fatalf("last page must not have more")
	}
	if page(nil, 1, 1).HasMore() {
		t.Fatalf("single page must not have more")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{41, 20, 3},
		{10, 0, 0},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.perPage); got != c.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", c.total, c.perPage, got, c.want)
		}
	}
}

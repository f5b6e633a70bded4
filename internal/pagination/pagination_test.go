package pagination

import "testing"

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{13, 2},
		{20, 2},
		{21, 3},
		{100, 10},
	}

	for _, tc := range cases {
		if got := PageCount(tc.total); got != tc.want {
			t.Errorf("PageCount(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestPaginate_FirstAndLastPage(t *testing.T) {
	// 13 items at 10 per page: page 1 holds 10, page 2 holds 3.
	items := intRange(13)

	p1 := Paginate(items, 1)
	if len(p1.Items) != 10 {
		t.Errorf("page 1 size = %d, want 10", len(p1.Items))
	}
	if p1.PageCount != 2 {
		t.Errorf("page count = %d, want 2", p1.PageCount)
	}
	if !p1.HasNext() || p1.HasPrevious() {
		t.Errorf("page 1 navigation: HasNext=%v HasPrevious=%v", p1.HasNext(), p1.HasPrevious())
	}

	p2 := Paginate(items, 2)
	if len(p2.Items) != 3 {
		t.Errorf("page 2 size = %d, want 3", len(p2.Items))
	}
	if p2.Items[0] != 10 {
		t.Errorf("page 2 first item = %d, want 10", p2.Items[0])
	}
	if p2.HasNext() || !p2.HasPrevious() {
		t.Errorf("page 2 navigation: HasNext=%v HasPrevious=%v", p2.HasNext(), p2.HasPrevious())
	}
}

func TestPaginate_FullLastPage(t *testing.T) {
	p := Paginate(intRange(20), 2)
	if len(p.Items) != 10 {
		t.Errorf("last page size = %d, want a full 10", len(p.Items))
	}
}

func TestPaginate_ClampsBeyondLastPage(t *testing.T) {
	items := intRange(25) // 3 pages

	last := Paginate(items, 3)
	beyond := Paginate(items, 99)

	if beyond.Number != last.Number {
		t.Errorf("clamped page number = %d, want %d", beyond.Number, last.Number)
	}
	if len(beyond.Items) != len(last.Items) {
		t.Fatalf("clamped page size = %d, want %d", len(beyond.Items), len(last.Items))
	}
	for i := range last.Items {
		if beyond.Items[i] != last.Items[i] {
			t.Errorf("clamped page item %d = %d, want %d", i, beyond.Items[i], last.Items[i])
		}
	}
}

func TestPaginate_EmptyCollection(t *testing.T) {
	p := Paginate([]int{}, 5)
	if len(p.Items) != 0 {
		t.Errorf("empty collection page size = %d, want 0", len(p.Items))
	}
	if p.PageCount != 1 {
		t.Errorf("empty collection page count = %d, want 1", p.PageCount)
	}
	if p.Number != 1 {
		t.Errorf("empty collection page number = %d, want 1", p.Number)
	}
}

func TestPaginate_SubOnePageTreatedAsFirst(t *testing.T) {
	items := intRange(13)
	for _, page := range []int{0, -3} {
		p := Paginate(items, page)
		if p.Number != 1 || len(p.Items) != 10 {
			t.Errorf("Paginate(items, %d): number=%d size=%d, want first full page", page, p.Number, len(p.Items))
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"1", 1},
		{"7", 7},
	}

	for _, tc := range cases {
		if got := ParsePage(tc.raw); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

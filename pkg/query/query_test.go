package query

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dish struct {
	ID      int
	Name    string
	Active  bool
	Price   int
	Created time.Time
}

func dishSpec() Spec[dish] {
	return Spec[dish]{
		SearchFields: []func(dish) string{func(d dish) string { return d.Name }},
		Filters: map[string]FilterFunc[dish]{
			"status": Status(func(d dish) bool { return d.Active }),
			"from":   DateFrom(func(d dish) time.Time { return d.Created }),
			"to":     DateTo(func(d dish) time.Time { return d.Created }),
		},
		Sorters: map[string]func(a, b dish) int{
			"name":  ByFold(func(d dish) string { return d.Name }),
			"price": By(func(d dish) int { return d.Price }),
		},
	}
}

func dishes(n int) []dish {
	out := make([]dish, n)
	for i := range out {
		out[i] = dish{ID: i + 1, Name: fmt.Sprintf("Dish %02d", i+1), Active: i%2 == 0, Price: (i % 3) * 100}
	}
	return out
}

func TestPagination(t *testing.T) {
	items := dishes(25)

	page, err := Run(items, dishSpec(), Params{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 21, page.Items[0].ID)

	page, err = Run(items, dishSpec(), Params{Page: 99, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)

	page, err = Run(items, dishSpec(), Params{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 10)

	page, err = Run(items, dishSpec(), Params{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 25)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := []dish{{ID: 1, Name: "Margherita Pizza"}, {ID: 2, Name: "Caesar Salad"}}

	page, err := Run(items, dishSpec(), Params{Search: "pizza"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Margherita Pizza", page.Items[0].Name)

	page, err = Run(items, dishSpec(), Params{Search: "  "})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestSearchAnyField(t *testing.T) {
	spec := dishSpec()
	spec.SearchFields = append(spec.SearchFields, func(d dish) string { return fmt.Sprint(d.ID) })
	items := []dish{{ID: 7, Name: "Tea"}, {ID: 8, Name: "Coffee"}}

	page, err := Run(items, spec, Params{Search: "7"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tea", page.Items[0].Name)
}

func TestStatusFilter(t *testing.T) {
	items := dishes(6)

	page, err := Run(items, dishSpec(), Params{Filters: map[string]string{"status": "active"}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	page, err = Run(items, dishSpec(), Params{Filters: map[string]string{"status": "all"}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 6)

	_, err = Run(items, dishSpec(), Params{Filters: map[string]string{"status": "sometimes"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestUnknownFilterAndSort(t *testing.T) {
	_, err := Run(dishes(2), dishSpec(), Params{Filters: map[string]string{"colour": "red"}})
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = Run(dishes(2), dishSpec(), Params{Filters: map[string]string{"colour": ""}})
	assert.NoError(t, err)

	_, err = Run(dishes(2), dishSpec(), Params{SortKey: "weight"})
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestDateRangeIsInclusive(t *testing.T) {
	day := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, time.UTC) }
	items := []dish{
		{ID: 1, Created: day(13, 16, 10)},
		{ID: 2, Created: day(14, 18, 45)},
		{ID: 3, Created: day(15, 0, 0)},
		{ID: 4, Created: day(15, 23, 59)},
		{ID: 5, Created: day(16, 0, 0)},
	}

	page, err := Run(items, dishSpec(), Params{Filters: map[string]string{"from": "2024-01-14", "to": "2024-01-15"}})
	require.NoError(t, err)
	ids := make([]int, 0, len(page.Items))
	for _, d := range page.Items {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{2, 3, 4}, ids)

	_, err = Run(items, dishSpec(), Params{Filters: map[string]string{"to": "15/01/2024"}})
	assert.Error(t, err)
}

func TestSortIsStable(t *testing.T) {
	items := dishes(9)

	page, err := Run(items, dishSpec(), Params{SortKey: "price"})
	require.NoError(t, err)
	ids := make([]int, 0, len(page.Items))
	for _, d := range page.Items {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{1, 4, 7, 2, 5, 8, 3, 6, 9}, ids)

	page, err = Run(items, dishSpec(), Params{SortKey: "price", SortDir: Desc})
	require.NoError(t, err)
	ids = ids[:0]
	for _, d := range page.Items {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{3, 6, 9, 2, 5, 8, 1, 4, 7}, ids)
}

func TestRunDoesNotReorderInput(t *testing.T) {
	items := dishes(5)
	_, err := Run(items, dishSpec(), Params{SortKey: "name", SortDir: Desc})
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].ID)
}

func TestReconcile(t *testing.T) {
	prev := Params{Search: "a", Page: 4, PageSize: 10}

	assert.Equal(t, 4, Params{Search: "a", Page: 4, PageSize: 10}.Reconcile(prev).Page)
	assert.Equal(t, 1, Params{Search: "ab", Page: 4, PageSize: 10}.Reconcile(prev).Page)
	assert.Equal(t, 1, Params{Search: "a", Page: 4, Filters: map[string]string{"status": "active"}}.Reconcile(prev).Page)
	assert.Equal(t, 4, Params{Search: "a", Page: 4, Filters: map[string]string{"status": ""}}.Reconcile(prev).Page)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"Name", "Note"}, [][]string{{"Tea", `say "hi"`}, {"Coffee", ""}})
	require.NoError(t, err)

	assert.Equal(t, "\"Name\",\"Note\"\n\"Tea\",\"say \"\"hi\"\"\"\n\"Coffee\",\"\"\n", buf.String())
}

package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scriptdeck/internal/catalog"
)

func testCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	items := make([]catalog.Integration, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, catalog.Integration{
			ID:          fmt.Sprintf("it%d", i),
			Title:       fmt.Sprintf("Integration %d", i),
			Description: fmt.Sprintf("Does thing %d", i),
			Example:     fmt.Sprintf("it%d.call()", i),
		})
	}
	c, err := catalog.New(items...)
	require.NoError(t, err)
	return c
}

func TestDialogRendersAllRowsInOrder(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 5} {
		d := NewHelpDialog(testCatalog(t, n), HelpStyleFlat)
		view := d.View(80)
		prev := -1
		for i := 0; i < n; i++ {
			row := fmt.Sprintf("it%d — Integration %d", i, i)
			idx := strings.Index(view, row)
			require.GreaterOrEqual(t, idx, 0, "row %d missing for n=%d", i, n)
			require.Greater(t, idx, prev, "row %d out of order", i)
			require.Equal(t, idx, strings.LastIndex(view, row), "row %d duplicated", i)
			prev = idx
		}
		if n == 0 {
			require.Contains(t, view, "no integrations")
		}
	}
}

func TestFlatSelectionResolvesWithRowExample(t *testing.T) {
	t.Parallel()

	d := NewHelpDialog(testCatalog(t, 4), HelpStyleFlat)

	// move to row 2 and select
	for i := 0; i < 2; i++ {
		_, done := d.HandleKey("down")
		require.False(t, done)
	}
	outcome, done := d.HandleKey("enter")
	require.True(t, done)
	require.True(t, outcome.OK)
	require.Equal(t, "it2.call()", outcome.Example)
	require.True(t, d.Resolved())

	// resolves at most once
	outcome, done = d.HandleKey("enter")
	require.False(t, done)
	require.False(t, outcome.OK)
}

func TestDismissResolvesCancelled(t *testing.T) {
	t.Parallel()

	d := NewHelpDialog(testCatalog(t, 3), HelpStyleFlat)
	outcome, done := d.HandleKey("esc")
	require.True(t, done)
	require.False(t, outcome.OK)
	require.Empty(t, outcome.Example)

	// the selection path is closed after a cancel
	outcome, done = d.HandleKey("enter")
	require.False(t, done)
	require.False(t, outcome.OK)
}

func TestEmptyCatalogDialog(t *testing.T) {
	t.Parallel()

	d := NewHelpDialog(testCatalog(t, 0), HelpStyleFlat)
	_, done := d.HandleKey("enter")
	require.False(t, done)
	require.False(t, d.Resolved())

	outcome, done := d.HandleKey("esc")
	require.True(t, done)
	require.False(t, outcome.OK)
}

func TestExpandToggleIsIdempotentAndNeverCloses(t *testing.T) {
	t.Parallel()

	d := NewHelpDialog(testCatalog(t, 3), HelpStyleExpand)
	before := d.View(80)
	require.NotContains(t, before, "it0.call()")

	_, done := d.HandleKey("enter")
	require.False(t, done)
	require.False(t, d.Resolved())
	require.True(t, d.Expanded(0))
	expanded := d.View(80)
	require.Contains(t, expanded, "it0.call()")
	require.Contains(t, expanded, "example:")

	_, done = d.HandleKey("enter")
	require.False(t, done)
	require.False(t, d.Expanded(0))
	require.Equal(t, before, d.View(80))

	// expansion state is per row
	_, _ = d.HandleKey("down")
	_, _ = d.HandleKey("enter")
	require.True(t, d.Expanded(1))
	require.False(t, d.Expanded(0))

	// only dismiss closes, always as a cancel
	outcome, done := d.HandleKey("esc")
	require.True(t, done)
	require.False(t, outcome.OK)
}

func TestHTTPClientScenario(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Integration{
		ID:          "http",
		Title:       "HTTP Client",
		Description: "Make web requests",
		Example:     "http.get(url)",
	})
	require.NoError(t, err)

	d := NewHelpDialog(c, HelpStyleFlat)
	view := d.View(80)
	require.Contains(t, view, "http — HTTP Client")
	require.Contains(t, view, "Make web requests")

	outcome, done := d.HandleKey("enter")
	require.True(t, done)
	require.True(t, outcome.OK)
	require.Equal(t, "http.get(url)", outcome.Example)
}

func TestHelpStyleFromString(t *testing.T) {
	t.Parallel()

	require.Equal(t, HelpStyleExpand, HelpStyleFromString("expand"))
	require.Equal(t, HelpStyleExpand, HelpStyleFromString(" Expand "))
	require.Equal(t, HelpStyleFlat, HelpStyleFromString("flat"))
	require.Equal(t, HelpStyleFlat, HelpStyleFromString(""))
	require.Equal(t, HelpStyleFlat, HelpStyleFromString("nonsense"))
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyStateActionRowPresence(t *testing.T) {
	t.Parallel()

	without := EmptyState{
		Icon:     "⌁",
		Title:    "No scripts yet",
		Subtitle: "Create one to get started",
	}
	view := without.View(0, false)
	require.Contains(t, view, "No scripts yet")
	require.Contains(t, view, "Create one to get started")
	require.Contains(t, view, "·  ·  ·")
	require.False(t, without.HasAction())

	with := without
	with.Action = &Action{Label: "New script", Do: func() {}}
	require.True(t, with.HasAction())
	require.Contains(t, with.View(0, false), "New script")
	require.NotContains(t, view, "New script")
}

func TestEmptyStateActivateInvokesOncePerActivation(t *testing.T) {
	t.Parallel()

	calls := 0
	es := EmptyState{
		Title:  "No scripts yet",
		Action: &Action{Label: "New script", Do: func() { calls++ }},
	}

	require.True(t, es.Activate())
	require.Equal(t, 1, calls)
	require.True(t, es.Activate())
	require.Equal(t, 2, calls)
}

func TestEmptyStateActivateWithoutAction(t *testing.T) {
	t.Parallel()

	es := EmptyState{Title: "No scripts yet"}
	require.False(t, es.Activate())
}

func TestEmptyStateDeterministicRender(t *testing.T) {
	t.Parallel()

	es := EmptyState{Icon: "⌁", Title: "T", Subtitle: "S"}
	require.Equal(t, es.View(40, false), es.View(40, false))
}

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/aggregate"
	"github.com/lasersoldier/MuseMemo/application/navigation"
	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/infrastructure/persistence/memory"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	st := store.New(memory.New(), zap.NewNop())
	t.Cleanup(st.Close)
	return New(st)
}

func TestView_StartsAtModels(t *testing.T) {
	ws := newTestWorkspace(t)

	view := ws.View()
	assert.Equal(t, navigation.LevelModels, view.Level)
	assert.NotEmpty(t, view.Nodes, "starter favorites populate the model level")
	assert.Empty(t, view.Prompts)

	for _, n := range view.Nodes {
		assert.Equal(t, aggregate.KindModel, n.Kind)
	}
}

func TestSelect_DrillsThroughTheHierarchy(t *testing.T) {
	ws := newTestWorkspace(t)

	view := ws.Select("ChatGPT", aggregate.KindModel)
	assert.Equal(t, navigation.LevelCategories, view.Level)
	assert.Equal(t, "ChatGPT", view.SelectedModel)
	require.NotEmpty(t, view.Nodes)
	for _, n := range view.Nodes {
		assert.Equal(t, aggregate.KindCategory, n.Kind)
	}

	category := view.Nodes[0].ID
	view = ws.Select(category, aggregate.KindCategory)
	assert.Equal(t, navigation.LevelList, view.Level)
	assert.Equal(t, category, view.SelectedCategory)
	assert.Empty(t, view.Nodes)
	require.NotEmpty(t, view.Prompts)
	for _, p := range view.Prompts {
		assert.Equal(t, "ChatGPT", p.Model.String())
		assert.True(t, p.HasTag(category))
	}
}

func TestSelect_WrongKindIsANoOp(t *testing.T) {
	ws := newTestWorkspace(t)

	view := ws.Select("Code", aggregate.KindCategory)
	assert.Equal(t, navigation.LevelModels, view.Level)
}

func TestBack_ClimbsOneLevel(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Select("ChatGPT", aggregate.KindModel)
	ws.Select("Code", aggregate.KindCategory)

	view := ws.Back()
	assert.Equal(t, navigation.LevelCategories, view.Level)
	assert.Equal(t, "ChatGPT", view.SelectedModel)

	view = ws.Back()
	assert.Equal(t, navigation.LevelModels, view.Level)
	assert.Empty(t, view.SelectedModel)
}

func TestLayout_PositionsCurrentNodes(t *testing.T) {
	ws := newTestWorkspace(t)

	nodes := ws.Layout(800, 600)
	require.NotEmpty(t, nodes)
	assert.Len(t, nodes, len(ws.View().Nodes))

	for _, n := range nodes {
		assert.Greater(t, n.Radius, 0.0)
	}
}

func TestLayout_RebuildsOnViewChange(t *testing.T) {
	ws := newTestWorkspace(t)

	modelNodes := ws.Layout(800, 600)
	ws.Select("ChatGPT", aggregate.KindModel)
	categoryNodes := ws.Layout(800, 600)

	modelIDs := make(map[string]bool)
	for _, n := range modelNodes {
		modelIDs[n.ID] = true
	}
	for _, n := range categoryNodes {
		assert.False(t, modelIDs[n.ID], "layout follows the drill-down, not the stale node set")
	}
}

func TestLayout_KeepsEngineWhileViewIsStable(t *testing.T) {
	ws := newTestWorkspace(t)

	first := ws.Layout(800, 600)
	second := ws.Layout(800, 600)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].X, second[i].X, "settled layout is stable across calls")
		assert.Equal(t, first[i].Y, second[i].Y)
	}
}

func TestLayout_EmptyLevel(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Select("ChatGPT", aggregate.KindModel)
	ws.Select("Code", aggregate.KindCategory)

	// List level has no bubbles
	assert.Nil(t, ws.Layout(800, 600))
}

func TestDrag_Lifecycle(t *testing.T) {
	ws := newTestWorkspace(t)
	initial := ws.Layout(800, 600)
	require.NotEmpty(t, initial)
	id := initial[0].ID

	nodes := ws.DragStart(id)
	require.NotEmpty(t, nodes)

	nodes = ws.DragMove(id, 50, 50)
	var dragged bool
	for _, n := range nodes {
		if n.ID == id {
			dragged = true
			assert.True(t, n.Pinned)
			assert.Equal(t, 50.0, n.X)
			assert.Equal(t, 50.0, n.Y)
		}
	}
	require.True(t, dragged)

	nodes = ws.DragEnd(id)
	for _, n := range nodes {
		assert.False(t, n.Pinned)
	}
}

func TestDrag_WithoutLayoutIsANoOp(t *testing.T) {
	ws := newTestWorkspace(t)

	assert.Nil(t, ws.DragStart("ChatGPT"))
	assert.Nil(t, ws.DragMove("ChatGPT", 1, 1))
	assert.Nil(t, ws.DragEnd("ChatGPT"))
}

func TestRegistry(t *testing.T) {
	st := store.New(memory.New(), zap.NewNop())
	t.Cleanup(st.Close)

	reg := NewRegistry()
	a := reg.For("user-1", st)
	b := reg.For("user-1", st)
	assert.Same(t, a, b, "one workspace per user")

	reg.Drop("user-1")
	c := reg.For("user-1", st)
	assert.NotSame(t, a, c)
}

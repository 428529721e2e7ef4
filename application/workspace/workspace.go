// Package workspace binds a user's store, navigation cursor and bubble
// layout into one view: the drillable model → category → prompt-list
// hierarchy rendered as force-clustered bubbles.
package workspace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lasersoldier/MuseMemo/application/aggregate"
	"github.com/lasersoldier/MuseMemo/application/navigation"
	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/domain/layout"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

// View is the renderable state of the workspace at its current depth
type View struct {
	Level            navigation.Level       `json:"level"`
	SelectedModel    string                 `json:"selectedModel,omitempty"`
	SelectedCategory string                 `json:"selectedCategory,omitempty"`
	Nodes            []aggregate.BubbleNode `json:"nodes,omitempty"`
	Prompts          []*prompt.Prompt       `json:"prompts,omitempty"`
}

// Workspace is one user's navigation session over their saved prompts.
// The layout engine is rebuilt (the previous one discarded) whenever the
// node set or viewport changes, so only one simulation ever runs per
// view.
type Workspace struct {
	mu        sync.Mutex
	store     *store.Store
	nav       *navigation.Machine
	engine    *layout.Engine
	engineKey string
}

// New creates a workspace over a hydrated store
func New(st *store.Store) *Workspace {
	return &Workspace{
		store: st,
		nav:   navigation.New(),
	}
}

// View derives the current view from the live store collection
func (w *Workspace) View() View {
	return w.viewFor(w.nav.State())
}

// Select drills into a bubble node and returns the new view
func (w *Workspace) Select(id string, kind aggregate.NodeKind) View {
	state := w.nav.Select(aggregate.BubbleNode{ID: id, Kind: kind})
	return w.viewFor(state)
}

// Back climbs one navigation level and returns the new view
func (w *Workspace) Back() View {
	return w.viewFor(w.nav.Back())
}

func (w *Workspace) viewFor(state navigation.State) View {
	saved := w.store.SavedPrompts()
	view := View{
		Level:            state.Level,
		SelectedModel:    state.SelectedModel.String(),
		SelectedCategory: state.SelectedCategory,
	}
	switch state.Level {
	case navigation.LevelModels:
		view.Nodes = aggregate.ModelNodes(saved)
	case navigation.LevelCategories:
		view.Nodes = aggregate.CategoryNodes(saved, state.SelectedModel)
	case navigation.LevelList:
		view.Prompts = aggregate.FilteredPrompts(saved, state.SelectedModel, state.SelectedCategory)
	}
	return view
}

// maxSettleSteps bounds a one-shot layout; the cooling schedule reaches
// rest in about 300 ticks, the margin absorbs reheated simulations.
const maxSettleSteps = 600

// Layout positions the current level's bubbles inside the viewport.
// The underlying simulation persists between calls so drags stay
// meaningful, but is replaced whenever the nodes or viewport change.
func (w *Workspace) Layout(width, height float64) []layout.Node {
	view := w.View()
	if len(view.Nodes) == 0 {
		return nil
	}

	weighted := make([]layout.Weighted, len(view.Nodes))
	for i, n := range view.Nodes {
		weighted[i] = layout.Weighted{ID: n.ID, Value: n.Value}
	}
	key := layoutKey(view, width, height)

	w.mu.Lock()
	if w.engine == nil || w.engineKey != key {
		w.engine = layout.NewEngine(layout.DefaultConfig(width, height), weighted)
		w.engineKey = key
	}
	engine := w.engine
	w.mu.Unlock()

	return engine.Settle(maxSettleSteps)
}

// DragStart seizes a bubble for dragging
func (w *Workspace) DragStart(id string) []layout.Node {
	engine := w.currentEngine()
	if engine == nil {
		return nil
	}
	engine.Seize(id)
	return engine.Snapshot()
}

// DragMove moves a seized bubble and lets neighbors re-settle around it
func (w *Workspace) DragMove(id string, x, y float64) []layout.Node {
	engine := w.currentEngine()
	if engine == nil {
		return nil
	}
	engine.Drag(id, x, y)
	for i := 0; i < 3; i++ {
		engine.Step()
	}
	return engine.Snapshot()
}

// DragEnd releases a bubble back into the force system
func (w *Workspace) DragEnd(id string) []layout.Node {
	engine := w.currentEngine()
	if engine == nil {
		return nil
	}
	engine.Release(id)
	return engine.Snapshot()
}

func (w *Workspace) currentEngine() *layout.Engine {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine
}

func layoutKey(view View, width, height float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%s|%s|%.0fx%.0f", view.Level, view.SelectedModel, view.SelectedCategory, width, height)
	for _, n := range view.Nodes {
		fmt.Fprintf(&sb, "|%s=%.2f", n.ID, n.Value)
	}
	return sb.String()
}

// Registry hands out one workspace per user
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{workspaces: make(map[string]*Workspace)}
}

// For returns the user's workspace, creating it over st on first access
func (r *Registry) For(userID string, st *store.Store) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workspaces[userID]; ok {
		return w
	}
	w := New(st)
	r.workspaces[userID] = w
	return w
}

// Drop discards a user's workspace, for logout
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, userID)
}

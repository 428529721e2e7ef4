// Package navigation tracks the drill-down position in the bubble
// hierarchy: models at the top, tag categories beneath a model, and the
// filtered prompt list beneath a category.
package navigation

import (
	"sync"

	"github.com/lasersoldier/MuseMemo/application/aggregate"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

// Level is a drill-down depth
type Level string

const (
	LevelModels     Level = "models"
	LevelCategories Level = "categories"
	LevelList       Level = "list"
)

// State is the transient UI cursor. SelectedModel is set only at the
// categories and list levels; SelectedCategory only at the list level.
type State struct {
	Level            Level        `json:"level"`
	SelectedModel    prompt.Model `json:"selectedModel,omitempty"`
	SelectedCategory string       `json:"selectedCategory,omitempty"`
}

// Machine is the navigation state machine. The zero-value cursor sits at
// the models level with nothing selected.
type Machine struct {
	mu    sync.Mutex
	state State
}

// New returns a machine at the initial models level
func New() *Machine {
	return &Machine{state: State{Level: LevelModels}}
}

// State returns the current cursor
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Select drills into a bubble node. Clicks are only meaningful at the
// models and categories levels and only for the matching node kind;
// anything else leaves the cursor unchanged.
func (m *Machine) Select(node aggregate.BubbleNode) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.state.Level == LevelModels && node.Kind == aggregate.KindModel:
		m.state = State{
			Level:         LevelCategories,
			SelectedModel: prompt.Model(node.ID),
		}
	case m.state.Level == LevelCategories && node.Kind == aggregate.KindCategory:
		m.state = State{
			Level:            LevelList,
			SelectedModel:    m.state.SelectedModel,
			SelectedCategory: node.ID,
		}
	}
	return m.state
}

// Back climbs one level. Back-navigation is strictly one level at a
// time; at the models level it is a no-op.
func (m *Machine) Back() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.Level {
	case LevelList:
		m.state = State{
			Level:         LevelCategories,
			SelectedModel: m.state.SelectedModel,
		}
	case LevelCategories:
		m.state = State{Level: LevelModels}
	}
	return m.state
}

// Reset returns the cursor to the models level
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Level: LevelModels}
}

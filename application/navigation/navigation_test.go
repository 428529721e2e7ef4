package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lasersoldier/MuseMemo/application/aggregate"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

func modelNode(id string) aggregate.BubbleNode {
	return aggregate.BubbleNode{ID: id, Kind: aggregate.KindModel}
}

func categoryNode(id string) aggregate.BubbleNode {
	return aggregate.BubbleNode{ID: id, Kind: aggregate.KindCategory}
}

func TestMachine_DrillDown(t *testing.T) {
	m := New()
	assert.Equal(t, State{Level: LevelModels}, m.State())

	state := m.Select(modelNode("ChatGPT"))
	assert.Equal(t, LevelCategories, state.Level)
	assert.Equal(t, prompt.ModelChatGPT, state.SelectedModel)
	assert.Empty(t, state.SelectedCategory)

	state = m.Select(categoryNode("Code"))
	assert.Equal(t, LevelList, state.Level)
	assert.Equal(t, prompt.ModelChatGPT, state.SelectedModel)
	assert.Equal(t, "Code", state.SelectedCategory)
}

func TestMachine_IgnoresWrongKind(t *testing.T) {
	m := New()

	// Category click at the models level: no-op
	state := m.Select(categoryNode("Code"))
	assert.Equal(t, LevelModels, state.Level)

	m.Select(modelNode("Claude"))

	// Model click at the categories level: no-op
	state = m.Select(modelNode("Gemini"))
	assert.Equal(t, LevelCategories, state.Level)
	assert.Equal(t, prompt.ModelClaude, state.SelectedModel)
}

func TestMachine_IgnoresClicksAtListLevel(t *testing.T) {
	m := New()
	m.Select(modelNode("Claude"))
	m.Select(categoryNode("Writing"))

	state := m.Select(categoryNode("Professional"))
	assert.Equal(t, LevelList, state.Level)
	assert.Equal(t, "Writing", state.SelectedCategory)
}

func TestMachine_BackOneLevelAtATime(t *testing.T) {
	m := New()
	m.Select(modelNode("ChatGPT"))
	m.Select(categoryNode("Code"))

	state := m.Back()
	assert.Equal(t, LevelCategories, state.Level)
	assert.Equal(t, prompt.ModelChatGPT, state.SelectedModel, "model selection survives leaving the list")
	assert.Empty(t, state.SelectedCategory)

	state = m.Back()
	assert.Equal(t, LevelModels, state.Level)
	assert.Empty(t, state.SelectedModel)

	// Back at the top is a no-op
	state = m.Back()
	assert.Equal(t, LevelModels, state.Level)
}

func TestMachine_Reset(t *testing.T) {
	m := New()
	m.Select(modelNode("ChatGPT"))
	m.Select(categoryNode("Code"))

	m.Reset()
	assert.Equal(t, State{Level: LevelModels}, m.State())
}

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

func testPrompt(id string, model prompt.Model, usage int, tags ...string) *prompt.Prompt {
	return &prompt.Prompt{
		ID:         id,
		Title:      "Prompt " + id,
		Model:      model,
		Tags:       tags,
		UsageCount: usage,
	}
}

func TestModelNodes_SumsUsagePlusOne(t *testing.T) {
	prompts := []*prompt.Prompt{
		testPrompt("1", prompt.ModelChatGPT, 10, "Code"),
		testPrompt("2", prompt.ModelChatGPT, 0, "Code"),
		testPrompt("3", prompt.ModelClaude, 5, "Writing"),
	}

	nodes := ModelNodes(prompts)
	require.Len(t, nodes, 2)

	// Sorted by name: ChatGPT before Claude
	assert.Equal(t, "ChatGPT", nodes[0].ID)
	assert.Equal(t, 12.0, nodes[0].Value, "(10+1) + (0+1)")
	assert.Equal(t, KindModel, nodes[0].Kind)
	assert.Equal(t, "#3B82F6", nodes[0].Color)

	assert.Equal(t, "Claude", nodes[1].ID)
	assert.Equal(t, 6.0, nodes[1].Value)
	assert.Equal(t, "#F59E0B", nodes[1].Color)
}

func TestModelNodes_UnusedPromptsStayVisible(t *testing.T) {
	nodes := ModelNodes([]*prompt.Prompt{
		testPrompt("1", prompt.ModelGemini, 0, "Writing"),
	})

	require.Len(t, nodes, 1)
	assert.Equal(t, 1.0, nodes[0].Value, "zero usage still contributes the +1 floor")
}

func TestModelNodes_Empty(t *testing.T) {
	assert.Empty(t, ModelNodes(nil))
}

func TestCategoryNodes_TagsAreFacets(t *testing.T) {
	prompts := []*prompt.Prompt{
		// Two tags: full weight counted under both
		testPrompt("1", prompt.ModelChatGPT, 9, "Code", "React"),
		testPrompt("2", prompt.ModelChatGPT, 4, "Code"),
		// Different model, must not leak in
		testPrompt("3", prompt.ModelClaude, 100, "Code"),
	}

	nodes := CategoryNodes(prompts, prompt.ModelChatGPT)
	require.Len(t, nodes, 2)

	assert.Equal(t, "Code", nodes[0].ID)
	assert.Equal(t, 15.0, nodes[0].Value, "(9+1) + (4+1)")
	assert.Equal(t, KindCategory, nodes[0].Kind)
	assert.Equal(t, prompt.ModelChatGPT.Color(), nodes[0].Color, "categories inherit the model color")

	assert.Equal(t, "React", nodes[1].ID)
	assert.Equal(t, 10.0, nodes[1].Value, "full weight, not split across tags")
}

func TestCategoryNodes_NoSelection(t *testing.T) {
	prompts := []*prompt.Prompt{testPrompt("1", prompt.ModelChatGPT, 1, "Code")}
	assert.Nil(t, CategoryNodes(prompts, ""))
}

func TestFilteredPrompts(t *testing.T) {
	match := testPrompt("1", prompt.ModelChatGPT, 0, "Code", "React")
	prompts := []*prompt.Prompt{
		match,
		testPrompt("2", prompt.ModelChatGPT, 0, "Writing"),
		testPrompt("3", prompt.ModelClaude, 0, "Code"),
	}

	t.Run("model and tag must both match", func(t *testing.T) {
		got := FilteredPrompts(prompts, prompt.ModelChatGPT, "Code")
		require.Len(t, got, 1)
		assert.Equal(t, match, got[0])
	})

	t.Run("no category selected", func(t *testing.T) {
		assert.Nil(t, FilteredPrompts(prompts, prompt.ModelChatGPT, ""))
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, FilteredPrompts(prompts, prompt.ModelGemini, "Code"))
	})
}

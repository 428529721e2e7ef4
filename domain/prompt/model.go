package prompt

// Model identifies the AI system a prompt targets
type Model string

const (
	ModelChatGPT    Model = "ChatGPT"
	ModelMidjourney Model = "Midjourney"
	ModelGemini     Model = "Gemini"
	ModelClaude     Model = "Claude"
)

// Models lists every supported model
func Models() []Model {
	return []Model{ModelChatGPT, ModelMidjourney, ModelGemini, ModelClaude}
}

// Valid reports whether m is a known model
func (m Model) Valid() bool {
	switch m {
	case ModelChatGPT, ModelMidjourney, ModelGemini, ModelClaude:
		return true
	}
	return false
}

// String returns the model name
func (m Model) String() string {
	return string(m)
}

const defaultColor = "#64748B"

// Color returns the hex color associated with the model's bubbles
func (m Model) Color() string {
	switch m {
	case ModelChatGPT:
		return "#3B82F6"
	case ModelMidjourney:
		return "#10B981"
	case ModelGemini:
		return "#8B5CF6"
	case ModelClaude:
		return "#F59E0B"
	default:
		return defaultColor
	}
}

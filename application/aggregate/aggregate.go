// Package aggregate derives visualization-ready groupings from a prompt
// collection. All functions are pure: no side effects, no stored state.
package aggregate

import (
	"sort"

	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

// NodeKind distinguishes the two bubble hierarchy levels
type NodeKind string

const (
	KindModel    NodeKind = "model"
	KindCategory NodeKind = "category"
)

// BubbleNode is a derived, ephemeral view entity; it is never persisted
type BubbleNode struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Value float64  `json:"value"`
	Kind  NodeKind `json:"type"`
	Color string   `json:"color"`
}

// ModelNodes groups prompts by target model. Each node's value is the
// sum of (usageCount + 1) over the model's prompts; the +1 floor keeps
// every populated model visible regardless of usage history. Output is
// sorted by name for stable rendering.
func ModelNodes(prompts []*prompt.Prompt) []BubbleNode {
	counts := make(map[prompt.Model]float64)
	for _, p := range prompts {
		counts[p.Model] += float64(p.UsageCount) + 1
	}

	nodes := make([]BubbleNode, 0, len(counts))
	for model, value := range counts {
		nodes = append(nodes, BubbleNode{
			ID:    model.String(),
			Name:  model.String(),
			Value: value,
			Kind:  KindModel,
			Color: model.Color(),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes
}

// CategoryNodes groups the selected model's prompts by tag. A prompt
// with N tags contributes its (usageCount + 1) weight to all N totals:
// tags are independent facets, not partitions. Returns nil when no model
// is selected.
func CategoryNodes(prompts []*prompt.Prompt, selected prompt.Model) []BubbleNode {
	if selected == "" {
		return nil
	}

	counts := make(map[string]float64)
	for _, p := range prompts {
		if p.Model != selected {
			continue
		}
		for _, tag := range p.Tags {
			counts[tag] += float64(p.UsageCount) + 1
		}
	}

	nodes := make([]BubbleNode, 0, len(counts))
	for tag, value := range counts {
		nodes = append(nodes, BubbleNode{
			ID:    tag,
			Name:  tag,
			Value: value,
			Kind:  KindCategory,
			Color: selected.Color(),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes
}

// FilteredPrompts returns the prompts matching both the selected model
// and the selected category tag. An unset category yields no results so
// an incomplete navigation state never leaks the whole collection.
func FilteredPrompts(prompts []*prompt.Prompt, selected prompt.Model, category string) []*prompt.Prompt {
	if category == "" {
		return nil
	}
	var out []*prompt.Prompt
	for _, p := range prompts {
		if p.Model == selected && p.HasTag(category) {
			out = append(out, p)
		}
	}
	return out
}

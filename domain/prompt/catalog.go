package prompt

import "time"

// StarterCatalog returns the built-in system prompts that seed every
// workspace. Callers receive fresh copies and may mutate them freely.
func StarterCatalog() []*Prompt {
	now := time.Now().UTC()
	catalog := []*Prompt{
		{
			ID:             "1",
			ShortCode:      "MJ-0042",
			Title:          "Minimalist Logo Design",
			Content:        `Create a minimalist vector logo for a coffee shop named "Zen Brew". Use negative space, monochrome palette, and geometric shapes.`,
			Model:          ModelMidjourney,
			Tags:           []string{"Creative", "Design"},
			UsageCount:     45,
			IsFavorite:     true,
			Author:         AuthorSystem,
			Description:    "Generates clean, vector-style logos.",
			SampleResponse: "Generated a minimalist logo featuring a coffee cup silhouette with a zen circle negative space design, using a monochrome black and white palette with clean geometric lines.",
		},
		{
			ID:             "2",
			ShortCode:      "GPT-8812",
			Title:          "React Component Generator",
			Content:        "Write a React functional component using TypeScript and Tailwind CSS for a [Component Name]. Ensure accessibility compliance.",
			Model:          ModelChatGPT,
			Tags:           []string{"Code", "React"},
			UsageCount:     120,
			IsFavorite:     true,
			Author:         AuthorSystem,
			Description:    "Standard boilerplate for UI components.",
			SampleResponse: "Produced a typed Button component with primary and secondary variants, Tailwind styling, and an aria-label on the interactive element.",
		},
		{
			ID:             "3",
			ShortCode:      "GEM-0103",
			Title:          "Blog Post Outline",
			Content:        "Generate a comprehensive outline for a blog post about [Topic]. Include H2/H3 headers and key talking points for each section.",
			Model:          ModelGemini,
			Tags:           []string{"Writing", "Content"},
			UsageCount:     30,
			IsFavorite:     false,
			Author:         AuthorSystem,
			Description:    "Structured outlines for SEO articles.",
			SampleResponse: "Outlined a seven-section post covering niche selection, platform choice, setup, design, content strategy, promotion, and a closing call to action.",
		},
		{
			ID:             "4",
			ShortCode:      "CLA-0078",
			Title:          "Email Response Generator",
			Content:        "Write a professional email response to [Recipient] regarding [Topic]. Keep it concise and polite, addressing all key points mentioned in their message.",
			Model:          ModelClaude,
			Tags:           []string{"Writing", "Professional"},
			UsageCount:     89,
			IsFavorite:     true,
			Author:         AuthorSystem,
			Description:    "Professional email templates for various scenarios.",
			SampleResponse: "Drafted a courteous reply that acknowledges the sender, answers each raised point in a numbered list, and offers further help before signing off.",
		},
		{
			ID:             "5",
			ShortCode:      "MJ-0123",
			Title:          "Product Photography Prompt",
			Content:        "Create a product photography scene for [Product] with [Style] lighting and [Background]. Focus on highlighting the product features with professional composition.",
			Model:          ModelMidjourney,
			Tags:           []string{"Creative", "Photography"},
			UsageCount:     56,
			IsFavorite:     false,
			Author:         AuthorSystem,
			Description:    "Product photography concepts for e-commerce.",
			SampleResponse: "Composed a luxury watch scene with soft studio lighting over dark marble, shallow depth of field on the dial, and subtle reflections emphasizing premium materials.",
		},
		{
			ID:             "6",
			ShortCode:      "GPT-9945",
			Title:          "SQL Query Generator",
			Content:        "Write a SQL query to [Action] from [Table] where [Conditions]. Include appropriate joins, filters, and ordering.",
			Model:          ModelChatGPT,
			Tags:           []string{"Code", "Database"},
			UsageCount:     156,
			IsFavorite:     true,
			Author:         AuthorSystem,
			Description:    "Generate efficient SQL queries for various databases.",
			SampleResponse: "SELECT customers with orders in the last 30 days, joining orders and order items, grouped per customer and ordered by total spend descending.",
		},
	}

	for _, p := range catalog {
		p.CreatedAt = now
		p.LastUsed = now
	}
	return catalog
}

package content

import "academy/internal/entity"

// Built-in content served when the CMS is not configured or not reachable.

var fallbackCourses = []entity.Course{
	{
		ID:          "1",
		Slug:        "logistics-supply-chain",
		Title:       "Logistics & Supply Chain",
		Category:    "Management",
		Duration:    "6 Months",
		Description: "Master global trade, inventory systems, and shipping documentation.",
		Modules:     []string{"Supply Chain Strategy", "Warehouse Ops", "Inventory Mgmt"},
		Highlights:  []string{"100% Placement", "Industrial Visits"},
		Tools:       []string{"SAP", "Excel"},
	},
	{
		ID:          "2",
		Slug:        "accounting-taxation",
		Title:       "Accounting & Taxation",
		Category:    "Finance",
		Duration:    "6 Months",
		Description: "From Tally Prime to Gulf VAT, become a complete finance professional.",
		Modules:     []string{"Manual Accounting", "Tally Prime", "GST Filing"},
		Highlights:  []string{"Placement Guarantee", "Uniforms"},
		Tools:       []string{"Tally", "SAP B1"},
	},
}

var fallbackPosts = []entity.BlogPost{
	{
		ID:       "1",
		Slug:     "future-global-logistics-2025",
		Title:    "The Future of Global Logistics: 2025 Trends",
		Excerpt:  "From AI-driven supply chains to sustainable shipping, discover what the future holds.",
		Date:     "Oct 24, 2024",
		Category: "Industry Insights",
		CoverImage: entity.Image{
			URL:    "https://images.unsplash.com/photo-1586528116311-ad8dd3c8310d?w=800",
			Title:  "Logistics",
			Width:  800,
			Height: 600,
		},
	},
}

var fallbackFAQs = []entity.FAQ{
	{ID: "1", Order: 1, Question: "Sample Question?", Answer: "Sample Answer."},
}

var fallbackSEO = entity.SEORecord{
	InternalName: "default",
	Title:        "Elevate U Academy",
	Description:  "Master Logistics and Supply Chain Management.",
	Keywords:     []string{},
}

func limitSlice[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

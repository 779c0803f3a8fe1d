package core

// DefaultCategories returns the built-in category set a fresh install starts
// with. The slice is freshly allocated on every call so callers may mutate it.
func DefaultCategories() []CategoryItem {
	return []CategoryItem{
		{ID: "Housing", Label: "Housing", Color: "#3b82f6", Polarity: Expense},
		{ID: "Food", Label: "Food", Color: "#ef4444", Polarity: Expense},
		{ID: "Transport", Label: "Transport", Color: "#f59e0b", Polarity: Expense},
		{ID: "Entertainment", Label: "Entertainment", Color: "#8b5cf6", Polarity: Expense},
		{ID: "Healthcare", Label: "Healthcare", Color: "#ec4899", Polarity: Expense},
		{ID: "Utilities", Label: "Utilities", Color: "#10b981", Polarity: Expense},
		{ID: "Shopping", Label: "Shopping", Color: "#6366f1", Polarity: Expense},
		{ID: "Savings", Label: "Savings", Color: "#06b6d4", Polarity: Expense},
		{ID: "Debt", Label: "Debt", Color: "#64748b", Polarity: Expense},
		{ID: "Income", Label: "Income", Color: "#22c55e", Polarity: Income},
		{ID: "Investment", Label: "Investment", Color: "#0ea5e9", Polarity: Income},
		{ID: "Other_Income", Label: "Other Income", Color: "#10b981", Polarity: Income},
		{ID: "Other", Label: "Other", Color: "#94a3b8", Polarity: Expense},
	}
}

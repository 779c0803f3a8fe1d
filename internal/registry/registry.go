// Package registry manages the category catalog: the built-in defaults plus
// whatever the user adds. Lookups are total; an id with no backing category
// resolves to a neutral placeholder so records that outlive their category
// still render.
package registry

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"extraque/internal/core"
	"extraque/internal/store"
)

// FallbackColor is the slate tone used for categories that no longer exist.
const FallbackColor = "#94a3b8"

// ColorGenerator picks a display color for a category created without one.
type ColorGenerator func() string

// palette mirrors the colors of the built-in set so user-added categories
// blend in.
var palette = []string{
	"#3b82f6", "#ef4444", "#f59e0b", "#8b5cf6", "#ec4899",
	"#10b981", "#6366f1", "#06b6d4", "#64748b", "#22c55e", "#0ea5e9",
}

// RandomColor is the production generator.
func RandomColor() string {
	return palette[rand.Intn(len(palette))]
}

// Registry exposes catalog operations over a CategoryStore.
type Registry struct {
	categories store.CategoryStore
	color      ColorGenerator
}

// New builds a registry. A nil generator falls back to RandomColor.
func New(categories store.CategoryStore, color ColorGenerator) *Registry {
	if color == nil {
		color = RandomColor
	}
	return &Registry{categories: categories, color: color}
}

// All returns the full catalog in storage order.
func (r *Registry) All(ctx context.Context) ([]core.CategoryItem, error) {
	return r.categories.ListCategories(ctx)
}

// ByPolarity returns the catalog entries of one polarity, sorted by label so
// pickers render stably.
func (r *Registry) ByPolarity(ctx context.Context, p core.Polarity) ([]core.CategoryItem, error) {
	all, err := r.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0:0]
	for _, c := range all {
		if c.Polarity == p {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Add creates a category. An empty color gets one assigned.
func (r *Registry) Add(ctx context.Context, label, color string, p core.Polarity) (core.CategoryItem, error) {
	c := core.CategoryItem{Label: strings.TrimSpace(label), Color: color, Polarity: p}
	if err := c.Validate(); err != nil {
		return core.CategoryItem{}, err
	}
	if c.Color == "" {
		c.Color = r.color()
	}
	return r.categories.CreateCategory(ctx, c)
}

// Rename changes a category's label. Renaming a missing id is a no-op.
func (r *Registry) Rename(ctx context.Context, id, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return core.ErrEmptyCategory
	}
	return r.categories.UpdateCategoryLabel(ctx, id, label)
}

// Remove deletes a category. Records that reference the id keep it and fall
// back to the placeholder on lookup; nothing cascades.
func (r *Registry) Remove(ctx context.Context, id string) error {
	return r.categories.DeleteCategory(ctx, id)
}

// Lookup builds a total lookup function over the current catalog. Unknown
// ids resolve to a placeholder carrying the raw id as its label.
func (r *Registry) Lookup(ctx context.Context) (func(id string) core.CategoryItem, error) {
	all, err := r.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return LookupIn(all), nil
}

// LookupIn is Lookup over an already-fetched catalog slice.
func LookupIn(catalog []core.CategoryItem) func(id string) core.CategoryItem {
	byID := make(map[string]core.CategoryItem, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	return func(id string) core.CategoryItem {
		if c, ok := byID[id]; ok {
			return c
		}
		return core.CategoryItem{ID: id, Label: id, Color: FallbackColor}
	}
}

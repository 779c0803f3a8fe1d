package registry

import (
	"context"
	"testing"

	"extraque/internal/core"
	"extraque/internal/store/memory"
)

func fixedColor() string { return "#abcdef" }

func seededRegistry(t *testing.T) *Registry {
	t.Helper()
	s := memory.New(nil)
	s.Seed()
	return New(s, fixedColor)
}

func TestAddAssignsColorWhenEmpty(t *testing.T) {
	ctx := context.Background()
	r := seededRegistry(t)

	cases := []struct {
		name      string
		color     string
		wantColor string
	}{
		{name: "explicit color kept", color: "#112233", wantColor: "#112233"},
		{name: "empty color assigned", color: "", wantColor: "#abcdef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := r.Add(ctx, "Pets", tc.color, core.Expense)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if c.Color != tc.wantColor {
				t.Fatalf("color = %q, want %q", c.Color, tc.wantColor)
			}
			if c.ID == "" {
				t.Fatal("expected a generated id")
			}
		})
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	r := seededRegistry(t)

	if _, err := r.Add(ctx, "   ", "", core.Expense); err == nil {
		t.Fatal("expected error for blank label")
	}
	if _, err := r.Add(ctx, "Pets", "", core.Polarity("sideways")); err == nil {
		t.Fatal("expected error for invalid polarity")
	}
}

func TestByPolarity(t *testing.T) {
	ctx := context.Background()
	r := seededRegistry(t)

	income, err := r.ByPolarity(ctx, core.Income)
	if err != nil {
		t.Fatalf("ByPolarity: %v", err)
	}
	want := []string{"Income", "Investment", "Other Income"}
	if len(income) != len(want) {
		t.Fatalf("got %d income categories, want %d", len(income), len(want))
	}
	for i, label := range want {
		if income[i].Label != label {
			t.Fatalf("income[%d] = %q, want %q (sorted by label)", i, income[i].Label, label)
		}
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	r := seededRegistry(t)

	if err := r.Rename(ctx, "Food", "Groceries"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	lookup, err := r.Lookup(ctx)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := lookup("Food").Label; got != "Groceries" {
		t.Fatalf("label after rename = %q, want Groceries", got)
	}

	if err := r.Rename(ctx, "Food", "  "); err == nil {
		t.Fatal("expected error for blank label")
	}
	if err := r.Rename(ctx, "no-such-id", "X"); err != nil {
		t.Fatalf("rename of missing id should be a no-op, got %v", err)
	}
}

func TestRemoveDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	r := seededRegistry(t)

	if err := r.Remove(ctx, "Food"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	lookup, err := r.Lookup(ctx)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got := lookup("Food")
	want := core.CategoryItem{ID: "Food", Label: "Food", Color: FallbackColor}
	if got != want {
		t.Fatalf("dangling lookup = %+v, want placeholder %+v", got, want)
	}
}

func TestLookupIsTotal(t *testing.T) {
	lookup := LookupIn([]core.CategoryItem{
		{ID: "Housing", Label: "Housing", Color: "#3b82f6", Polarity: core.Expense},
	})

	if got := lookup("Housing").Color; got != "#3b82f6" {
		t.Fatalf("known id color = %q", got)
	}
	got := lookup("ghost")
	if got.Label != "ghost" || got.Color != FallbackColor {
		t.Fatalf("unknown id = %+v, want raw id with fallback color", got)
	}
}

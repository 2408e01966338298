package draft

import (
	"testing"

	"foodcost/models"
)

const today = "2026-10-14"

func TestNewDraftIsCleanAndEmpty(t *testing.T) {
	t.Parallel()

	d := New(today)
	if d.Dirty() {
		t.Fatal("expected new draft to be clean")
	}
	if d.State() != StateEmpty {
		t.Fatalf("expected empty state, got %q", d.State())
	}
	if !d.IsNew() || d.SessionKey() != KeyNewOrder {
		t.Fatalf("expected new-order draft keyed %q, got %q", KeyNewOrder, d.SessionKey())
	}
	if d.Current.Date != today {
		t.Fatalf("expected date %q, got %q", today, d.Current.Date)
	}
}

func TestDirtyTracksEveryField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(d *Draft)
	}{
		{"name", func(d *Draft) { d.SetName("Wedding") }},
		{"date", func(d *Draft) { d.SetDate("2026-12-01") }},
		{"notes", func(d *Draft) { d.SetNotes("no peanuts") }},
		{"items", func(d *Draft) { d.AddRecipe("r1", 2) }},
		{"overrides", func(d *Draft) { d.SetOverride("a", 1200) }},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := New(today)
			tt.mutate(&d)
			if !d.Dirty() {
				t.Fatalf("expected %s change to mark the draft dirty", tt.name)
			}
		})
	}
}

func TestDirtyClearsWhenChangesAreReverted(t *testing.T) {
	t.Parallel()

	d := New(today)
	d.SetName("Wedding")
	d.SetName("")
	d.AddRecipe("r1", 1)
	d.RemoveRecipe("r1")
	d.SetOverride("a", 5)
	d.ClearOverride("a")

	if d.Dirty() {
		t.Fatalf("expected reverted draft to be clean, got %+v", d.Current)
	}
}

func TestFromOrderUsesOrderAsBaseline(t *testing.T) {
	t.Parallel()

	price := 30000.0
	order := models.Order{
		ID:                  "o1",
		Name:                "Arisan",
		Date:                "2026-11-02",
		Notes:               "less salt",
		Items:               []models.OrderItem{{RecipeID: "r1", Quantity: 10, CustomPrice: &price}},
		IngredientOverrides: []models.IngredientOverride{{IngredientID: "a", CustomPrice: 1200}},
	}

	d := FromOrder(order)
	if d.Dirty() {
		t.Fatal("expected draft loaded from order to be clean")
	}
	if d.IsNew() || d.SessionKey() != KeyEditOrder {
		t.Fatalf("expected editing draft keyed %q", KeyEditOrder)
	}

	d.SetCustomPrice("r1", nil)
	if !d.Dirty() {
		t.Fatal("expected clearing a custom price to mark the draft dirty")
	}
	if order.Items[0].CustomPrice == nil || *order.Items[0].CustomPrice != 30000 {
		t.Fatal("expected the source order to be left untouched")
	}

	other := 30000.0
	d.SetCustomPrice("r1", &other)
	if d.Dirty() {
		t.Fatal("expected equal custom price values to compare clean")
	}
}

func TestQuantityAndOverrideClamping(t *testing.T) {
	t.Parallel()

	d := New(today)
	d.AddRecipe("r1", 0)
	if d.Current.Items[0].Quantity != MinQuantity {
		t.Fatalf("expected AddRecipe to clamp to %v, got %v", MinQuantity, d.Current.Items[0].Quantity)
	}

	d.AddRecipe("r1", 3)
	if d.Current.Items[0].Quantity != 4 || len(d.Current.Items) != 1 {
		t.Fatalf("expected repeated add to merge into 4 portions, got %+v", d.Current.Items)
	}

	if !d.SetQuantity("r1", -5) || d.Current.Items[0].Quantity != MinQuantity {
		t.Fatalf("expected SetQuantity to clamp, got %v", d.Current.Items[0].Quantity)
	}
	if d.SetQuantity("missing", 3) {
		t.Fatal("expected SetQuantity on unknown recipe to report false")
	}

	d.SetOverride("a", 0)
	if d.Current.Overrides[0].CustomPrice != MinOverridePrice {
		t.Fatalf("expected override price clamp to %v, got %v", MinOverridePrice, d.Current.Overrides[0].CustomPrice)
	}
	d.SetOverride("a", 1500)
	if len(d.Current.Overrides) != 1 || d.Current.Overrides[0].CustomPrice != 1500 {
		t.Fatalf("expected override to be replaced in place, got %+v", d.Current.Overrides)
	}
}

func TestResetReturnsToEmpty(t *testing.T) {
	t.Parallel()

	d := FromOrder(models.Order{ID: "o1", Name: "Arisan", Items: []models.OrderItem{{RecipeID: "r1", Quantity: 2}}})
	d.SetNotes("changed")
	d.Reset(today)

	if d.State() != StateEmpty || d.Dirty() || !d.IsNew() {
		t.Fatalf("expected reset draft to be an empty new draft, got %+v", d)
	}
}

package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"foodcost/internal/costing"
	"foodcost/models"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    float64
		currency string
		want     string
	}{
		{"groups thousands", 1500000, "IDR", "IDR 1.500.000"},
		{"rounds fractions", 999.6, "IDR", "IDR 1.000"},
		{"small value", 45, "", "45"},
		{"negative", -2500, "IDR", "IDR -2.500"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatMoney(tt.value, tt.currency); got != tt.want {
				t.Fatalf("FormatMoney(%v, %q) = %q, want %q", tt.value, tt.currency, got, tt.want)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	if got := FormatQuantity(33.3333, "gr"); got != "33.33 gr" {
		t.Fatalf("FormatQuantity() = %q", got)
	}
	if got := FormatQuantity(3, ""); got != "3" {
		t.Fatalf("FormatQuantity() = %q", got)
	}
}

func TestFormatSheetDate(t *testing.T) {
	t.Parallel()

	if got := FormatSheetDate("2026-10-14"); got != "14 Oct 2026" {
		t.Fatalf("FormatSheetDate() = %q", got)
	}
	if got := FormatSheetDate("soon"); got != "soon" {
		t.Fatalf("FormatSheetDate() = %q", got)
	}
}

func TestOrderSheetRendersEscapedContent(t *testing.T) {
	t.Parallel()

	data := OrderSheetData{
		Business: models.Profile{BusinessName: "Dapur <Ibu>", Phone: "0812"},
		Currency: "IDR",
		Order: models.Order{
			Name:   "Arisan & Friends",
			Date:   "2026-10-14",
			Status: models.OrderStatusPending,
		},
		Ingredients: []costing.AggregatedIngredient{
			{Name: "Beef", Unit: "gr", Quantity: 150, CurrentPrice: 1200, IsOverridden: true, Total: 180000},
		},
		Recipes:    []costing.RecipeLine{{Name: "Rendang", Quantity: 3, UnitCost: 50000, LineTotal: 150000}},
		TotalCost:  180000,
		SavedTotal: 180000,
		PrintedAt:  time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := OrderSheet(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"Dapur &lt;Ibu&gt;",
		"Arisan &amp; Friends",
		"14 Oct 2026",
		"150 gr",
		"IDR 180.000",
		"(custom price)",
		"Rendang",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected sheet to contain %q, got %s", want, html)
		}
	}
	if strings.Contains(html, "<Ibu>") {
		t.Fatal("expected business name to be escaped")
	}
}

func TestOrderSheetSavedTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     float64
		saved     float64
		wantSaved bool
	}{
		{"matching totals", 150000, 150000, false},
		{"sub-unit drift", 150000.2, 150000, false},
		{"stale snapshot", 180000, 150000, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := OrderSheetData{Currency: "IDR", Order: models.Order{Name: "Arisan"}, TotalCost: tt.total, SavedTotal: tt.saved}

			var buf bytes.Buffer
			if err := OrderSheet(data).Render(context.Background(), &buf); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			html := buf.String()
			if !strings.Contains(html, FormatMoney(tt.total, "IDR")) {
				t.Fatalf("expected live total in %s", html)
			}
			if got := strings.Contains(html, "Saved total"); got != tt.wantSaved {
				t.Fatalf("saved total shown = %v, want %v", got, tt.wantSaved)
			}
		})
	}
}

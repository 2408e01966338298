package pages

import (
	"math"
	"strconv"
	"strings"
	"time"

	"foodcost/internal/costing"
	"foodcost/models"
)

// OrderSheetData holds everything printed on an order's kitchen sheet.
type OrderSheetData struct {
	Business    models.Profile
	Currency    string
	Order       models.Order
	Ingredients []costing.AggregatedIngredient
	Recipes     []costing.RecipeLine
	// TotalCost is the live sum of the ingredient lines.
	TotalCost float64
	// SavedTotal is the order's snapshot total, printed when it no longer
	// matches TotalCost.
	SavedTotal float64
	PrintedAt  time.Time
}

func (d OrderSheetData) showSavedTotal() bool {
	return math.Round(d.SavedTotal) != math.Round(d.TotalCost)
}

// FormatQuantity renders a quantity with at most two decimals and its unit.
func FormatQuantity(value float64, unit string) string {
	formatted := strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
	if unit == "" {
		return formatted
	}
	return formatted + " " + unit
}

// FormatMoney renders an amount rounded to whole units with dot thousand
// separators, prefixed by the currency code.
func FormatMoney(value float64, currency string) string {
	negative := value < 0
	digits := strconv.FormatInt(int64(math.Round(math.Abs(value))), 10)

	var b strings.Builder
	for idx, r := range digits {
		if idx > 0 && (len(digits)-idx)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	amount := b.String()
	if negative {
		amount = "-" + amount
	}
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

// FormatSheetDate renders a yyyy-MM-dd date as "02 Jan 2006", passing
// unparseable values through unchanged.
func FormatSheetDate(value string) string {
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format("02 Jan 2006")
}

func businessContact(profile models.Profile) string {
	return strings.Join(nonEmpty(profile.OwnerName, profile.Phone, profile.Address), " · ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}


package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"foodcost/internal/costing"
	applog "foodcost/internal/log"
)

const shoppingSheet = "Sheet1"

var shoppingHeader = []string{"Ingredient", "Unit", "Quantity", "Price", "Overridden", "Total", "Used in"}

// ShoppingListFileName returns the download name of a shopping list.
func ShoppingListFileName(orderName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, strings.TrimSpace(orderName))
	if name == "" {
		name = "order"
	}
	return "shopping_list_" + name + ".xlsx"
}

// ShoppingList writes aggregation as a single-sheet workbook, one row per
// ingredient followed by a total row.
func ShoppingList(ctx context.Context, w io.Writer, aggregation costing.Aggregation) error {
	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			applog.Error(ctx, "close shopping list workbook", "error", err)
		}
	}()

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("shopping list style: %w", err)
	}

	for col, title := range shoppingHeader {
		if err := setCell(file, col+1, 1, title); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(shoppingHeader), 1)
	if err := file.SetCellStyle(shoppingSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("shopping list header style: %w", err)
	}

	row := 2
	for _, entry := range aggregation.Ingredients {
		values := []any{
			entry.Name,
			entry.Unit,
			entry.Quantity,
			entry.CurrentPrice,
			entry.IsOverridden,
			entry.Total,
			describeOrigins(entry.OriginRecipes),
		}
		for col, value := range values {
			if err := setCell(file, col+1, row, value); err != nil {
				return err
			}
		}
		row++
	}

	if err := setCell(file, 1, row, "Total"); err != nil {
		return err
	}
	if err := setCell(file, 6, row, aggregation.TotalCost); err != nil {
		return err
	}
	totalRow := strconv.Itoa(row)
	if err := file.SetCellStyle(shoppingSheet, "A"+totalRow, "F"+totalRow, bold); err != nil {
		return fmt.Errorf("shopping list total style: %w", err)
	}
	if err := file.SetColWidth(shoppingSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("shopping list column width: %w", err)
	}
	if err := file.SetColWidth(shoppingSheet, "G", "G", 40); err != nil {
		return fmt.Errorf("shopping list column width: %w", err)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write shopping list: %w", err)
	}
	return nil
}

func setCell(file *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("shopping list cell: %w", err)
	}
	if err := file.SetCellValue(shoppingSheet, cell, value); err != nil {
		return fmt.Errorf("shopping list cell %s: %w", cell, err)
	}
	return nil
}

func describeOrigins(origins []costing.Origin) string {
	parts := make([]string, 0, len(origins))
	for _, origin := range origins {
		parts = append(parts, fmt.Sprintf("%s (%s)", origin.RecipeName, strconv.FormatFloat(origin.Portions, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}

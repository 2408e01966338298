package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"foodcost/internal/config"
	"foodcost/internal/db"
	"foodcost/internal/kv"
	applog "foodcost/internal/log"
	"foodcost/internal/service"
	"foodcost/internal/store"
	"foodcost/models"
)

var (
	cleanWhitespace = regexp.MustCompile(`\s+`)
	pricePattern    = regexp.MustCompile(`[0-9][0-9.,]*`)
)

var openBackendFunc = db.Backend

type importSummary struct {
	Created int
	Updated int
	Skipped []string
}

func main() {
	csvPath := "ingredients.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string, out io.Writer) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	backend, err := openBackendFunc(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	summary, err := importIngredients(ctx, backend, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d new and %d updated ingredients from %s\n", summary.Created, summary.Updated, filepath.Base(csvPath))
	for _, skipped := range summary.Skipped {
		fmt.Fprintf(out, "skipped %s\n", skipped)
	}
	return nil
}

// importIngredients creates or updates one ingredient per record, matching
// existing ingredients by case-insensitive name. Invalid rows are skipped
// and reported rather than aborting the import.
func importIngredients(ctx context.Context, backend kv.Backend, records []map[string]string) (importSummary, error) {
	catalog := service.NewCatalog(store.New(backend))

	existing, err := catalog.ListIngredients(ctx)
	if err != nil {
		return importSummary{}, fmt.Errorf("list ingredients: %w", err)
	}
	byName := make(map[string]models.Ingredient, len(existing))
	for _, ingredient := range existing {
		byName[strings.ToLower(ingredient.Name)] = ingredient
	}

	var summary importSummary
	for idx, record := range records {
		ingredient := buildIngredient(record)
		label := fmt.Sprintf("record %d (%s)", idx+1, ingredient.Name)

		if current, ok := byName[strings.ToLower(ingredient.Name)]; ok {
			if ingredient.Image == "" {
				ingredient.Image = current.Image
			}
			updated, err := catalog.UpdateIngredient(ctx, current.ID, ingredient)
			if err != nil {
				if service.IsValidation(err) {
					summary.Skipped = append(summary.Skipped, label+": "+err.Error())
					continue
				}
				return summary, fmt.Errorf("%s: %w", label, err)
			}
			byName[strings.ToLower(updated.Name)] = updated
			summary.Updated++
			continue
		}

		created, err := catalog.CreateIngredient(ctx, ingredient)
		if err != nil {
			if service.IsValidation(err) {
				summary.Skipped = append(summary.Skipped, label+": "+err.Error())
				continue
			}
			return summary, fmt.Errorf("%s: %w", label, err)
		}
		byName[strings.ToLower(created.Name)] = created
		summary.Created++
	}

	applog.Info(ctx, "ingredient import finished", "created", summary.Created, "updated", summary.Updated, "skipped", len(summary.Skipped))
	return summary, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	for idx, key := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(key, "\ufeff")))
	}
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildIngredient(row map[string]string) models.Ingredient {
	return models.Ingredient{
		Name:  normalizeText(row["name"]),
		Unit:  models.Unit(strings.TrimSpace(row["unit"])),
		Price: parsePrice(row["price"]),
		Image: strings.TrimSpace(row["image"]),
	}
}

func normalizeText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return cleanWhitespace.ReplaceAllString(value, " ")
}

// parsePrice reads prices written as "14000", "Rp 14.000", "14,000" or
// "1.250,50". A separator followed by exactly three digits is treated as a
// thousands separator. Unparseable values yield -1 so validation rejects them.
func parsePrice(value string) float64 {
	match := pricePattern.FindString(strings.TrimSpace(value))
	if match == "" {
		return -1
	}

	lastDot := strings.LastIndex(match, ".")
	lastComma := strings.LastIndex(match, ",")
	decimal := -1
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimal = max(lastDot, lastComma)
	case lastDot >= 0 && len(match)-lastDot-1 != 3:
		decimal = lastDot
	case lastComma >= 0 && len(match)-lastComma-1 != 3:
		decimal = lastComma
	}

	var b strings.Builder
	for idx, r := range match {
		switch {
		case idx == decimal:
			b.WriteByte('.')
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}

	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return -1
	}
	return parsed
}

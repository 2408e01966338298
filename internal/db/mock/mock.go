package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodcost/internal/costing"
	"foodcost/internal/kv"
	applog "foodcost/internal/log"
	"foodcost/internal/store"
	"foodcost/models"
)

// New returns an in-memory sqlite database seeded with a small catering catalog.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:foodcost-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, err
	}

	backend, err := kv.NewSQL(db)
	if err != nil {
		return nil, err
	}
	if err := Seed(ctx, store.New(backend)); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

// Seed fills s with sample ingredients, recipes and one order. It does
// nothing when ingredients already exist.
func Seed(ctx context.Context, s *store.Store) error {
	existing, err := s.Ingredients.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		applog.Debug(ctx, "store already holds data, skipping seed")
		return nil
	}
	applog.Debug(ctx, "seeding mock data")

	ingredients := []models.Ingredient{
		{ID: "ing-beef", Name: "Daging Sapi", Unit: models.UnitGram, Price: 140},
		{ID: "ing-coconut-milk", Name: "Santan", Unit: models.UnitMilliliter, Price: 30},
		{ID: "ing-shallot", Name: "Bawang Merah", Unit: models.UnitGram, Price: 45},
		{ID: "ing-chili", Name: "Cabai Merah", Unit: models.UnitGram, Price: 60},
		{ID: "ing-rice", Name: "Beras", Unit: models.UnitKilogram, Price: 14000},
		{ID: "ing-egg", Name: "Telur", Unit: models.UnitPiece, Price: 2200},
		{ID: "ing-box", Name: "Kotak Nasi", Unit: models.UnitPack, Price: 1500},
	}
	for _, ingredient := range ingredients {
		if err := s.Ingredients.Put(ctx, ingredient); err != nil {
			return err
		}
	}

	tumpengCost := 350000.0
	recipes := []models.Recipe{
		{
			ID:    "rcp-rendang",
			Name:  "Rendang Sapi",
			Yield: 10,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: "ing-beef", Quantity: 1000},
				{IngredientID: "ing-coconut-milk", Quantity: 800},
				{IngredientID: "ing-shallot", Quantity: 150},
				{IngredientID: "ing-chili", Quantity: 100},
			},
		},
		{
			ID:    "rcp-nasi-box",
			Name:  "Nasi Kotak Telur Balado",
			Yield: 20,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: "ing-rice", Quantity: 2},
				{IngredientID: "ing-egg", Quantity: 20},
				{IngredientID: "ing-chili", Quantity: 200},
				{IngredientID: "ing-shallot", Quantity: 100},
				{IngredientID: "ing-box", Quantity: 20},
			},
		},
		{
			ID:         "rcp-tumpeng",
			Name:       "Tumpeng Mini",
			Yield:      1,
			ManualCost: &tumpengCost,
			Note:       "Priced from the supplier quote.",
		},
	}
	for _, recipe := range recipes {
		if err := s.Recipes.Put(ctx, recipe); err != nil {
			return err
		}
	}

	items := []models.OrderItem{
		{RecipeID: "rcp-rendang", Quantity: 30},
		{RecipeID: "rcp-nasi-box", Quantity: 50},
	}
	overrides := []models.IngredientOverride{{IngredientID: "ing-beef", CustomPrice: 135}}
	aggregation := costing.Aggregate(items, costing.RecipesByID(recipes), costing.IngredientsByID(ingredients), overrides)
	order := models.Order{
		ID:                  "ord-arisan",
		Name:                "Arisan Ibu RT 05",
		Date:                time.Now().Format(models.DateLayout),
		Items:               items,
		Notes:               "Delivery at 11:00.",
		Status:              models.OrderStatusPending,
		TotalCost:           aggregation.TotalCost,
		IngredientOverrides: overrides,
	}
	return s.Orders.Put(ctx, order)
}

package server

import (
	"context"
	"net/http"

	"foodcost/internal/handlers"
	applog "foodcost/internal/log"
)

type route struct {
	pattern string
	handler http.HandlerFunc
}

var routes = []route{
	{"GET /healthz", handlers.Health},

	{"GET /api/ingredients", handlers.ListIngredients},
	{"POST /api/ingredients", handlers.CreateIngredient},
	{"GET /api/ingredients/{id}", handlers.ShowIngredient},
	{"PUT /api/ingredients/{id}", handlers.UpdateIngredient},
	{"DELETE /api/ingredients/{id}", handlers.DeleteIngredient},

	{"GET /api/recipes", handlers.ListRecipes},
	{"POST /api/recipes", handlers.CreateRecipe},
	{"GET /api/recipes/{id}", handlers.ShowRecipe},
	{"PUT /api/recipes/{id}", handlers.UpdateRecipe},
	{"DELETE /api/recipes/{id}", handlers.DeleteRecipe},
	{"GET /api/recipes/{id}/cost", handlers.RecipeCost},

	{"GET /api/orders", handlers.ListOrders},
	{"GET /api/orders/{id}", handlers.ShowOrder},
	{"DELETE /api/orders/{id}", handlers.DeleteOrder},
	{"GET /api/orders/{id}/aggregate", handlers.OrderAggregate},
	{"POST /api/orders/{id}/recalculate", handlers.RecalculateOrder},
	{"PUT /api/orders/{id}/status", handlers.UpdateOrderStatus},
	{"POST /api/orders/{id}/duplicate", handlers.DuplicateOrder},
	{"POST /api/orders/{id}/edit", handlers.EditOrder},

	{"GET /api/draft", handlers.ShowDraft},
	{"PUT /api/draft", handlers.UpdateDraft},
	{"DELETE /api/draft", handlers.DiscardDraft},
	{"POST /api/draft/items", handlers.AddDraftItem},
	{"PUT /api/draft/items/{recipeId}", handlers.UpdateDraftItem},
	{"DELETE /api/draft/items/{recipeId}", handlers.RemoveDraftItem},
	{"PUT /api/draft/overrides/{ingredientId}", handlers.SetDraftOverride},
	{"DELETE /api/draft/overrides/{ingredientId}", handlers.ClearDraftOverride},
	{"POST /api/draft/save", handlers.SaveDraft},
	{"GET /api/draft/shopping-list.xlsx", handlers.DraftShoppingList},

	{"GET /api/backup", handlers.ExportBackup},
	{"POST /api/backup", handlers.ImportBackup},

	{"GET /api/profile", handlers.ShowProfile},
	{"PUT /api/profile", handlers.UpdateProfile},
	{"GET /api/preferences", handlers.ShowPreferences},
	{"PUT /api/preferences", handlers.UpdatePreferences},

	{"GET /orders/{id}/sheet", handlers.OrderSheet},
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, rt.handler)
		applog.Debug(context.Background(), "route registered", "pattern", rt.pattern)
	}
	return mux
}

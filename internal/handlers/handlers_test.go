package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"foodcost/internal/kv"
	"foodcost/internal/session"
	"foodcost/internal/store"
	"foodcost/models"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
	store   *store.Store
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	backend := kv.NewMemory()
	s := store.New(backend)
	ctx := context.Background()
	if err := s.Ingredients.Put(ctx, models.Ingredient{ID: "a", Name: "Beef", Unit: models.UnitGram, Price: 1000}); err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	if err := s.Recipes.Put(ctx, models.Recipe{ID: "r", Name: "Rendang", Yield: 2, Ingredients: []models.RecipeIngredient{{IngredientID: "a", Quantity: 100}}}); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}

	sm := scs.New()
	sm.Store = session.NewStore(backend)
	Configure(sm, s)
	originalNow := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		Configure(nil, nil)
		nowFunc = originalNow
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ingredients", ListIngredients)
	mux.HandleFunc("POST /api/ingredients", CreateIngredient)
	mux.HandleFunc("GET /api/ingredients/{id}", ShowIngredient)
	mux.HandleFunc("PUT /api/ingredients/{id}", UpdateIngredient)
	mux.HandleFunc("DELETE /api/ingredients/{id}", DeleteIngredient)
	mux.HandleFunc("GET /api/recipes/{id}/cost", RecipeCost)
	mux.HandleFunc("GET /api/orders/{id}", ShowOrder)
	mux.HandleFunc("GET /api/orders/{id}/aggregate", OrderAggregate)
	mux.HandleFunc("PUT /api/orders/{id}/status", UpdateOrderStatus)
	mux.HandleFunc("POST /api/orders/{id}/edit", EditOrder)
	mux.HandleFunc("GET /api/draft", ShowDraft)
	mux.HandleFunc("PUT /api/draft", UpdateDraft)
	mux.HandleFunc("DELETE /api/draft", DiscardDraft)
	mux.HandleFunc("POST /api/draft/items", AddDraftItem)
	mux.HandleFunc("PUT /api/draft/items/{recipeId}", UpdateDraftItem)
	mux.HandleFunc("DELETE /api/draft/items/{recipeId}", RemoveDraftItem)
	mux.HandleFunc("PUT /api/draft/overrides/{ingredientId}", SetDraftOverride)
	mux.HandleFunc("POST /api/draft/save", SaveDraft)
	mux.HandleFunc("GET /api/draft/shopping-list.xlsx", DraftShoppingList)
	mux.HandleFunc("GET /api/backup", ExportBackup)
	mux.HandleFunc("POST /api/backup", ImportBackup)
	mux.HandleFunc("PUT /api/preferences", UpdatePreferences)
	mux.HandleFunc("GET /orders/{id}/sheet", OrderSheet)

	return &testClient{t: t, handler: sm.LoadAndSave(mux), store: s}
}

func (c *testClient) do(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	if cookies := rr.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestIngredientEndpoints(t *testing.T) {
	c := newTestClient(t)

	rr := c.do(http.MethodPost, "/api/ingredients", map[string]any{"name": "Santan", "unit": "ml", "price": 30})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody[models.Ingredient](t, rr)
	if created.ID == "" {
		t.Fatal("expected created ingredient to carry an id")
	}

	rr = c.do(http.MethodPost, "/api/ingredients", map[string]any{"name": "", "unit": "cup", "price": 1})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"errors"`) {
		t.Fatalf("expected field errors in body, got %s", rr.Body.String())
	}

	rr = c.do(http.MethodGet, "/api/ingredients", nil)
	list := decodeBody[[]models.Ingredient](t, rr)
	if len(list) != 2 || list[0].Name != "Beef" || list[1].Name != "Santan" {
		t.Fatalf("expected ingredients sorted by name, got %+v", list)
	}

	if rr := c.do(http.MethodGet, "/api/ingredients/missing", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := c.do(http.MethodPost, "/api/ingredients", "{"); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
	if rr := c.do(http.MethodDelete, "/api/ingredients/"+created.ID, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestRecipeCostEndpoint(t *testing.T) {
	c := newTestClient(t)

	rr := c.do(http.MethodGet, "/api/recipes/r/cost", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	summary := decodeBody[map[string]any](t, rr)
	if summary["costPerPortion"].(float64) != 50000 {
		t.Fatalf("unexpected cost summary %+v", summary)
	}
}

func TestDraftLifecycle(t *testing.T) {
	c := newTestClient(t)

	rr := c.do(http.MethodGet, "/api/draft", nil)
	view := decodeBody[draftResponse](t, rr)
	if view.State != "empty" || view.Dirty || view.Date != "2026-10-14" {
		t.Fatalf("expected empty clean draft dated today, got %+v", view)
	}

	if rr := c.do(http.MethodPost, "/api/draft/items", map[string]any{"recipeId": "ghost"}); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown recipe, got %d", rr.Code)
	}

	c.do(http.MethodPut, "/api/draft", map[string]any{"name": "Office lunch"})
	c.do(http.MethodPost, "/api/draft/items", map[string]any{"recipeId": "r", "quantity": 3})
	rr = c.do(http.MethodPut, "/api/draft/overrides/a", map[string]any{"customPrice": 1200})
	view = decodeBody[draftResponse](t, rr)
	if !view.Dirty || view.State != "editing" {
		t.Fatalf("expected dirty editing draft, got %+v", view)
	}
	if math.Abs(view.Breakdown.TotalCost-180000) > 1e-6 {
		t.Fatalf("expected live total 180000, got %v", view.Breakdown.TotalCost)
	}

	rr = c.do(http.MethodPost, "/api/draft/save", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	order := decodeBody[models.Order](t, rr)
	if order.Status != models.OrderStatusPending || math.Abs(order.TotalCost-180000) > 1e-6 {
		t.Fatalf("unexpected saved order %+v", order)
	}

	view = decodeBody[draftResponse](t, c.do(http.MethodGet, "/api/draft", nil))
	if view.State != "empty" {
		t.Fatalf("expected draft to be cleared after save, got %+v", view)
	}

	rr = c.do(http.MethodPost, "/api/orders/"+order.ID+"/edit", nil)
	view = decodeBody[draftResponse](t, rr)
	if view.EditingID != order.ID || view.Dirty {
		t.Fatalf("expected clean edit draft for %s, got %+v", order.ID, view)
	}
	rr = c.do(http.MethodPut, "/api/draft/items/r", map[string]any{"quantity": 4})
	view = decodeBody[draftResponse](t, rr)
	if !view.Dirty {
		t.Fatal("expected edit draft to be dirty after quantity change")
	}

	rr = c.do(http.MethodPost, "/api/draft/save", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rr.Code, rr.Body.String())
	}
	updated := decodeBody[models.Order](t, rr)
	if updated.ID != order.ID || math.Abs(updated.TotalCost-240000) > 1e-6 {
		t.Fatalf("unexpected updated order %+v", updated)
	}
}

func TestSaveDraftValidationKeepsDraft(t *testing.T) {
	c := newTestClient(t)

	c.do(http.MethodPost, "/api/draft/items", map[string]any{"recipeId": "r"})
	rr := c.do(http.MethodPost, "/api/draft/save", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without a name, got %d", rr.Code)
	}

	view := decodeBody[draftResponse](t, c.do(http.MethodGet, "/api/draft", nil))
	if len(view.Items) != 1 {
		t.Fatalf("expected draft to survive failed save, got %+v", view)
	}
	orders, _ := c.store.Orders.List(context.Background())
	if len(orders) != 0 {
		t.Fatalf("expected no order to be stored, got %+v", orders)
	}
}

func TestDraftItemNotFound(t *testing.T) {
	c := newTestClient(t)

	if rr := c.do(http.MethodPut, "/api/draft/items/r", map[string]any{"quantity": 2}); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := c.do(http.MethodDelete, "/api/draft/items/r", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDiscardDraft(t *testing.T) {
	c := newTestClient(t)

	c.do(http.MethodPut, "/api/draft", map[string]any{"name": "Scratch"})
	rr := c.do(http.MethodDelete, "/api/draft", nil)
	view := decodeBody[draftResponse](t, rr)
	if view.Name != "" || view.State != "empty" {
		t.Fatalf("expected empty draft after discard, got %+v", view)
	}
}

func TestDraftShoppingList(t *testing.T) {
	c := newTestClient(t)

	c.do(http.MethodPut, "/api/draft", map[string]any{"name": "Office lunch"})
	c.do(http.MethodPost, "/api/draft/items", map[string]any{"recipeId": "r", "quantity": 3})
	rr := c.do(http.MethodGet, "/api/draft/shopping-list.xlsx", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "shopping_list_Office_lunch.xlsx") {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")) {
		t.Fatal("expected a zip-based xlsx body")
	}
}

func seedOrder(t *testing.T, c *testClient) models.Order {
	t.Helper()
	order := models.Order{
		ID:        "o1",
		Name:      "Arisan",
		Date:      "2026-10-20",
		Items:     []models.OrderItem{{RecipeID: "r", Quantity: 3}},
		Status:    models.OrderStatusPending,
		TotalCost: 150000,
	}
	if err := c.store.Orders.Put(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestOrderEndpoints(t *testing.T) {
	c := newTestClient(t)
	seedOrder(t, c)

	rr := c.do(http.MethodGet, "/api/orders/o1/aggregate", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	breakdown := decodeBody[map[string]any](t, rr)
	if breakdown["totalCost"].(float64) != 150000 {
		t.Fatalf("unexpected breakdown %+v", breakdown)
	}

	if rr := c.do(http.MethodPut, "/api/orders/o1/status", map[string]any{"status": "nope"}); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", rr.Code)
	}
	rr = c.do(http.MethodPut, "/api/orders/o1/status", map[string]any{"status": "completed"})
	if order := decodeBody[models.Order](t, rr); order.Status != models.OrderStatusCompleted {
		t.Fatalf("expected completed order, got %+v", order)
	}
	if rr := c.do(http.MethodGet, "/api/orders/missing", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestBackupEndpoints(t *testing.T) {
	c := newTestClient(t)
	seedOrder(t, c)

	rr := c.do(http.MethodGet, "/api/backup", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "food_cost_backup_2026-10-14.json") {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	exported := rr.Body.String()

	if rr := c.do(http.MethodPost, "/api/backup", `{"ingredients": []}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete backup, got %d", rr.Code)
	}
	ingredients, _ := c.store.Ingredients.List(context.Background())
	if len(ingredients) != 1 {
		t.Fatalf("expected rejected import to leave data untouched, got %+v", ingredients)
	}

	rr = c.do(http.MethodPost, "/api/backup", exported)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on import, got %d: %s", rr.Code, rr.Body.String())
	}
	summary := decodeBody[map[string]any](t, rr)
	if summary["orders"].(float64) != 1 {
		t.Fatalf("unexpected import summary %+v", summary)
	}
}

func TestUpdatePreferencesFillsDefaults(t *testing.T) {
	c := newTestClient(t)

	rr := c.do(http.MethodPut, "/api/preferences", map[string]any{"currency": "usd"})
	prefs := decodeBody[models.Preferences](t, rr)
	if prefs.Currency != "USD" || prefs.Locale != models.DefaultPreferences.Locale {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}

func TestOrderSheet(t *testing.T) {
	c := newTestClient(t)
	seedOrder(t, c)

	rr := c.do(http.MethodGet, "/orders/o1/sheet", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "IDR 150.000") {
		t.Fatalf("expected total in sheet, got %s", rr.Body.String())
	}

	if rr := c.do(http.MethodGet, "/orders/missing/sheet", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestOrderSheetShowsLiveAndSavedTotals(t *testing.T) {
	c := newTestClient(t)
	seedOrder(t, c)
	if strings.Contains(c.do(http.MethodGet, "/orders/o1/sheet", nil).Body.String(), "Saved total") {
		t.Fatal("expected no saved total while prices are unchanged")
	}

	if err := c.store.Ingredients.Put(context.Background(), models.Ingredient{ID: "a", Name: "Beef", Unit: models.UnitGram, Price: 1200}); err != nil {
		t.Fatalf("update price: %v", err)
	}

	body := c.do(http.MethodGet, "/orders/o1/sheet", nil).Body.String()
	for _, want := range []string{
		`<td class="num total-cost">IDR 180.000</td>`,
		"Saved total",
		`<td class="num saved-total">IDR 150.000</td>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected sheet to contain %q, got %s", want, body)
		}
	}
}

func TestHandlersUnavailableWithoutStore(t *testing.T) {
	Configure(nil, nil)

	rr := httptest.NewRecorder()
	ListIngredients(rr, httptest.NewRequest(http.MethodGet, "/api/ingredients", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

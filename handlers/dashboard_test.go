package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"menuhub-backend/models"

	"github.com/tealeg/xlsx"
)

func TestDashboardRequiresRestaurantSession(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, adminToken := seedAdmin(t, db, "admin@menuhub.local", "supersecret")

	if w := serve(r, jsonRequest("GET", "/api/dashboard/menu", nil)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := serve(r, authRequest("GET", "/api/dashboard/menu", nil, adminToken)); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for admin token, got %d", w.Code)
	}
}

func TestDashboardMenuIncludesSoldOut(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "dash", true)
	category := seedCategory(t, db, restaurant.ID, "Mains", 0)
	seedMenuItem(t, db, category, "Available", "5", true)
	seedMenuItem(t, db, category, "Sold Out", "6", false)

	w := serve(r, authRequest("GET", "/api/dashboard/menu", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	categories := parseResponse(w)["categories"].([]interface{})
	items := categories[0].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("expected sold-out item in management view, got %d items", len(items))
	}
}

func TestDashboardCategoryCRUD(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "crud", true)

	w := serve(r, authRequest("POST", "/api/dashboard/categories", map[string]interface{}{
		"nameEn":    "Starters",
		"nameAr":    "مقبلات",
		"sortOrder": 2,
	}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := parseResponse(w)
	id := created["id"].(string)
	if created["name"] != "مقبلات" || created["sortOrder"] != float64(2) {
		t.Errorf("unexpected category %v", created)
	}

	w = serve(r, authRequest("PUT", "/api/dashboard/categories/"+id, map[string]interface{}{"descriptionEn": "Small plates"}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := parseResponse(w)
	if updated["descriptionEn"] != "Small plates" || updated["nameEn"] != "Starters" {
		t.Errorf("expected partial update, got %v", updated)
	}

	w = serve(r, authRequest("DELETE", "/api/dashboard/categories/"+id, nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := serve(r, authRequest("DELETE", "/api/dashboard/categories/"+id, nil, token)); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestDashboardInvalidID(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "badid", true)

	w := serve(r, authRequest("PUT", "/api/dashboard/items/not-a-uuid", map[string]string{}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDashboardCrossTenantForbidden(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, myToken := seedRestaurant(t, db, "mine", true)
	theirs, _ := seedRestaurant(t, db, "theirs", true)
	category := seedCategory(t, db, theirs.ID, "Secret", 0)
	item := seedMenuItem(t, db, category, "Recipe", "10", true)

	w := serve(r, authRequest("PUT", "/api/dashboard/categories/"+category.ID.String(), map[string]string{"nameEn": "Hacked"}, myToken))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 on foreign category, got %d: %s", w.Code, w.Body.String())
	}
	w = serve(r, authRequest("DELETE", "/api/dashboard/items/"+item.ID.String(), nil, myToken))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 on foreign item, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Error("foreign item must survive")
	}
}

func TestDashboardCreateItem(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "items", true)
	category := seedCategory(t, db, restaurant.ID, "Mains", 0)

	w := serve(r, multipartRequest("POST", "/api/dashboard/items", map[string]string{
		"categoryId": category.ID.String(),
		"nameEn":     "Burger",
		"price":      "12.5",
		"salePrice":  "10",
		"isVegan":    "on",
	}, map[string][]byte{"image": pngPixel}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	item := parseResponse(w)
	if item["price"] != "12.50" || item["salePrice"] != "10.00" {
		t.Errorf("unexpected prices %v / %v", item["price"], item["salePrice"])
	}
	if item["isVegan"] != true || item["isAvailable"] != true || item["isGlutenFree"] != false {
		t.Errorf("unexpected flags %v", item)
	}
	image, _ := item["image"].(string)
	if !strings.HasPrefix(image, "data:image/png;base64,") {
		t.Errorf("expected inline png, got %.40s", image)
	}
}

func TestDashboardCreateItemValidation(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "invalid", true)
	category := seedCategory(t, db, restaurant.ID, "Mains", 0)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing price", map[string]string{"categoryId": category.ID.String()}, "price"},
		{"bad price", map[string]string{"categoryId": category.ID.String(), "price": "abc"}, "price"},
		{"missing category", map[string]string{"price": "5"}, "categoryId"},
		{"price overflows column", map[string]string{"categoryId": category.ID.String(), "price": "1e12"}, "price"},
		{"negative sale price", map[string]string{"categoryId": category.ID.String(), "price": "5", "salePrice": "-1"}, "salePrice"},
	}
	for _, tc := range tests {
		w := serve(r, authRequest("POST", "/api/dashboard/items", tc.body, token))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", tc.name, w.Code, w.Body.String())
			continue
		}
		if got := parseResponse(w)["field"]; got != tc.field {
			t.Errorf("%s: expected field %s, got %v", tc.name, tc.field, got)
		}
	}

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	if count != 0 {
		t.Errorf("failed creates must not write, found %d items", count)
	}
}

func TestDashboardCreateItemForeignCategory(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "here", true)
	other, _ := seedRestaurant(t, db, "there", true)
	foreign := seedCategory(t, db, other.ID, "Theirs", 0)

	w := serve(r, authRequest("POST", "/api/dashboard/items", map[string]string{
		"categoryId": foreign.ID.String(),
		"price":      "5",
	}, token))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDashboardUpdateItemAndAvailability(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "toggle", true)
	category := seedCategory(t, db, restaurant.ID, "Mains", 0)
	item := seedMenuItem(t, db, category, "Stew", "8", true)
	path := "/api/dashboard/items/" + item.ID.String()

	w := serve(r, authRequest("PUT", path, map[string]string{"descriptionEn": "Slow cooked"}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := parseResponse(w)
	if updated["descriptionEn"] != "Slow cooked" || updated["price"] != "8.00" {
		t.Errorf("expected partial update, got %v", updated)
	}

	w = serve(r, authRequest("PATCH", path+"/availability", map[string]bool{"isAvailable": false}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["isAvailable"] != false {
		t.Error("expected item marked unavailable")
	}

	w = serve(r, authRequest("PATCH", path+"/availability", map[string]string{}, token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without isAvailable, got %d", w.Code)
	}

	public := parseResponse(serve(r, jsonRequest("GET", "/api/menus/toggle", nil)))
	categories := public["categories"].([]interface{})
	if items := categories[0].(map[string]interface{})["items"].([]interface{}); len(items) != 0 {
		t.Errorf("expected unavailable item hidden from public menu, got %d", len(items))
	}
}

func TestDashboardUpdateAppearance(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "looks", true)

	w := serve(r, multipartRequest("PUT", "/api/dashboard/appearance", map[string]string{
		"bannerColor": "#ff0000",
	}, map[string][]byte{"bannerImage": pngPixel}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["bannerColor"] != "#ff0000" {
		t.Errorf("expected banner color, got %v", resp["bannerColor"])
	}
	if banner, _ := resp["bannerImage"].(string); !strings.HasPrefix(banner, "data:image/png") {
		t.Errorf("expected banner image, got %v", resp["bannerImage"])
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Error("password hash must never be serialized")
	}

	// removal flag wins over a simultaneous upload
	w = serve(r, multipartRequest("PUT", "/api/dashboard/appearance", map[string]string{
		"removeBannerImage": "true",
	}, map[string][]byte{"bannerImage": pngPixel}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["bannerImage"] != nil {
		t.Error("expected banner image removed")
	}
}

func TestDashboardUpdateAppearanceRejectsNonImage(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "pdf", true)

	w := serve(r, multipartRequest("PUT", "/api/dashboard/appearance", nil,
		map[string][]byte{"logo": []byte("%PDF-1.4 not an image")}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["field"] != "logo" {
		t.Errorf("expected logo field error, got %s", w.Body.String())
	}
}

func TestDashboardUpdateInfoAndAbout(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "info", true)

	w := serve(r, authRequest("PUT", "/api/dashboard/info", map[string]string{"phone": "+966 555", "email": "bad"}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, authRequest("PUT", "/api/dashboard/info", map[string]string{"phone": "+966 555"}, token))
	if w.Code != http.StatusOK || parseResponse(w)["phone"] != "+966 555" {
		t.Fatalf("expected phone updated, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, authRequest("PUT", "/api/dashboard/about", map[string]string{
		"aboutStoryEn": "Family recipes",
		"instagramUrl": "https://instagram.com/info",
	}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["aboutStoryEn"] != "Family recipes" || resp["instagramUrl"] != "https://instagram.com/info" {
		t.Errorf("unexpected about update %v", resp)
	}
}

func TestDashboardChangePassword(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "secure", true)

	w := serve(r, authRequest("PUT", "/api/dashboard/password", map[string]string{
		"currentPassword": "wrong-password",
		"newPassword":     "newpassword456",
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong current password, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, authRequest("PUT", "/api/dashboard/password", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, jsonRequest("POST", "/api/auth/restaurant/login", map[string]string{
		"slug":     "secure",
		"password": "newpassword456",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected login with new password, got %d", w.Code)
	}
}

func TestDashboardExport(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "sheet", true)
	category := seedCategory(t, db, restaurant.ID, "Mains", 0)
	seedMenuItem(t, db, category, "Soup", "4.5", true)

	w := serve(r, authRequest("GET", "/api/dashboard/export", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sheet-menu.xlsx") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	if err != nil {
		t.Fatalf("expected a workbook: %v", err)
	}
	if file.Sheets[0].MaxRow != 2 {
		t.Errorf("expected header plus one row, got %d", file.Sheets[0].MaxRow)
	}
}

func TestDashboardImportJSON(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	restaurant, token := seedRestaurant(t, db, "bulk", true)

	w := serve(r, authRequest("POST", "/api/dashboard/import", map[string]interface{}{
		"items": []map[string]interface{}{
			{"categoryEn": "Drinks", "nameEn": "Tea", "price": "1.5"},
			{"categoryEn": "Drinks", "nameEn": "Coffee", "price": "2"},
			{"categoryEn": "Drinks", "nameEn": "Broken", "price": "n/a"},
		},
	}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	report := parseResponse(w)
	if report["created"] != float64(2) || report["failed"] != float64(1) || report["categoriesCreated"] != float64(1) {
		t.Errorf("unexpected report %v", report)
	}

	var count int64
	db.Model(&models.MenuItem{}).Where("restaurant_id = ?", restaurant.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 imported items, got %d", count)
	}
}

func TestDashboardImportEmptyJSON(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "empty", true)

	w := serve(r, authRequest("POST", "/api/dashboard/import", map[string]interface{}{"items": []interface{}{}}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDashboardImportWorkbook(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "xlsx", true)

	file := xlsx.NewFile()
	sheet, _ := file.AddSheet("Menu")
	for _, values := range [][]string{
		{"Category", "Item", "Price", "Available"},
		{"Desserts", "Cake", "3.25", "no"},
		{"Desserts", "Pie", "2.75", "yes"},
	} {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		t.Fatal(err)
	}

	w := serve(r, multipartRequest("POST", "/api/dashboard/import", nil, map[string][]byte{"file": buf.Bytes()}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if report := parseResponse(w); report["created"] != float64(2) {
		t.Errorf("unexpected report %v", report)
	}

	var cake models.MenuItem
	db.First(&cake, "name = ?", "Cake")
	if cake.IsAvailable {
		t.Error("expected Cake imported as unavailable")
	}
}

func TestDashboardImportBadWorkbook(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "garbage", true)

	w := serve(r, multipartRequest("POST", "/api/dashboard/import", nil, map[string][]byte{"file": []byte("nope")}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDashboardInactiveRestaurantIsReadOnly(t *testing.T) {
	db := freshDB()
	r := setupRouter(db)
	_, token := seedRestaurant(t, db, "paused", false)

	w := serve(r, authRequest("POST", "/api/dashboard/categories", map[string]string{"nameEn": "Drinks"}, token))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a deactivated restaurant, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, authRequest("GET", "/api/dashboard/menu", nil, token))
	if w.Code != http.StatusOK {
		t.Errorf("expected the management view to stay readable, got %d", w.Code)
	}
}

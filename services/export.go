package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"menuhub-backend/dtos"
	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/google/uuid"
	"github.com/tealeg/xlsx"
)

const menuSheetName = "Menu"

// Sheet columns shared by export and import.
const (
	colCategory      = "Category"
	colCategoryAr    = "Category (AR)"
	colCategoryEn    = "Category (EN)"
	colItem          = "Item"
	colNameAr        = "Name (AR)"
	colNameEn        = "Name (EN)"
	colDescriptionAr = "Description (AR)"
	colDescriptionEn = "Description (EN)"
	colIngredientsAr = "Ingredients (AR)"
	colIngredientsEn = "Ingredients (EN)"
	colAllergensAr   = "Allergens (AR)"
	colAllergensEn   = "Allergens (EN)"
	colPrice         = "Price"
	colSalePrice     = "Sale Price"
	colAvailable     = "Available"
	colVegetarian    = "Vegetarian"
	colVegan         = "Vegan"
	colGlutenFree    = "Gluten Free"
	colSortOrder     = "Sort Order"
	colImageURL      = "Image URL"
	colImageAlt      = "Image Alt"
)

var menuSheetColumns = []string{
	colCategory, colCategoryAr, colCategoryEn,
	colItem, colNameAr, colNameEn,
	colDescriptionAr, colDescriptionEn,
	colIngredientsAr, colIngredientsEn,
	colAllergensAr, colAllergensEn,
	colPrice, colSalePrice,
	colAvailable, colVegetarian, colVegan, colGlutenFree,
	colSortOrder,
	colImageURL, colImageAlt,
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ExportMenu writes the restaurant's menu, sold-out items included, as an
// xlsx workbook. Category and Item columns are localized to lang.
func (s *Service) ExportMenu(ctx context.Context, scope Scope, restaurantID uuid.UUID, lang string, w io.Writer) error {
	restaurant, err := s.loadRestaurant(ctx, s.db, scope, restaurantID)
	if err != nil {
		return err
	}
	menu, err := s.loadMenu(ctx, restaurant.Slug, false, true)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(menuSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range menuSheetColumns {
		headerRow.AddCell().SetString(h)
	}

	for i := range menu.Categories {
		category := &menu.Categories[i]
		for j := range category.Items {
			writeItemRow(sheet.AddRow(), category, &category.Items[j], lang)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeItemRow(row *xlsx.Row, category *models.Category, item *models.MenuItem, lang string) {
	sale := ""
	if item.SalePrice.Valid {
		sale = formatPrice(item.SalePrice.Decimal)
	}
	// inline data URIs are too large for a cell and cannot be re-imported
	imageURL := ""
	if item.Image != nil && !utils.IsDataURI(*item.Image) {
		imageURL = *item.Image
	}
	values := []string{
		utils.Localize(category, "name", lang), category.NameAr, category.NameEn,
		utils.Localize(item, "name", lang), item.NameAr, item.NameEn,
		item.DescriptionAr, item.DescriptionEn,
		item.IngredientsAr, item.IngredientsEn,
		item.AllergensAr, item.AllergensEn,
		formatPrice(item.Price), sale,
		yesNo(item.IsAvailable), yesNo(item.IsVegetarian), yesNo(item.IsVegan), yesNo(item.IsGlutenFree),
		strconv.Itoa(item.SortOrder),
		imageURL, item.ImageAlt,
	}
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// ParseMenuSheet reads the first sheet of an xlsx workbook laid out like
// ExportMenu's output. Columns are matched by header, so order and unknown
// extra columns do not matter.
func ParseMenuSheet(r io.ReaderAt, size int64) ([]dtos.MenuImportItem, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, invalid("file", "is not a readable xlsx workbook")
	}
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return nil, invalid("file", "is empty or missing header row")
	}

	sheet := file.Sheets[0]
	index := map[string]int{}
	for i, cell := range sheet.Rows[0].Cells {
		index[strings.ToLower(strings.TrimSpace(cell.String()))] = i
	}
	if _, ok := index[strings.ToLower(colPrice)]; !ok {
		return nil, invalid("file", "is missing the %s column", colPrice)
	}

	var items []dtos.MenuImportItem
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		if row == nil {
			continue
		}
		get := func(column string) string {
			pos, ok := index[strings.ToLower(column)]
			if !ok || pos >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[pos].String())
		}

		item := dtos.MenuImportItem{
			Category:      get(colCategory),
			CategoryAr:    get(colCategoryAr),
			CategoryEn:    get(colCategoryEn),
			Name:          get(colItem),
			NameAr:        get(colNameAr),
			NameEn:        get(colNameEn),
			DescriptionAr: get(colDescriptionAr),
			DescriptionEn: get(colDescriptionEn),
			IngredientsAr: get(colIngredientsAr),
			IngredientsEn: get(colIngredientsEn),
			AllergensAr:   get(colAllergensAr),
			AllergensEn:   get(colAllergensEn),
			Price:         get(colPrice),
			SalePrice:     get(colSalePrice),
			IsVegetarian:  parseBool(get(colVegetarian)),
			IsVegan:       parseBool(get(colVegan)),
			IsGlutenFree:  parseBool(get(colGlutenFree)),
			ImageURL:      get(colImageURL),
			ImageAlt:      get(colImageAlt),
		}
		if raw := get(colAvailable); raw != "" {
			available := parseBool(raw)
			item.IsAvailable = &available
		}
		item.SortOrder, _ = strconv.Atoi(get(colSortOrder))

		if item.Name == "" && item.NameAr == "" && item.NameEn == "" && item.Price == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, invalid("file", "contains no menu items")
	}
	return items, nil
}

package ecommerce

import "github.com/shoprank/backend/internal/domain/integration"

// coupangAllCategoryID is the best-category ID covering every category
const coupangAllCategoryID = "0"

// coupangCategoryIDs maps category keys to Coupang best-category IDs
var coupangCategoryIDs = map[integration.Category]string{
	integration.CategoryAll:     coupangAllCategoryID,
	integration.CategoryFashion: "1001",
	integration.CategoryBeauty:  "1002",
	integration.CategoryDigital: "1003",
	integration.CategorySports:  "1004",
	integration.CategoryHome:    "1005",
	integration.CategoryFood:    "1006",
	integration.CategoryBaby:    "1007",
	integration.CategoryPet:     "1008",
}

// naverCategoryKeywords maps category keys to the Korean search keyword used in their place
var naverCategoryKeywords = map[integration.Category]string{
	integration.CategoryFashion: "패션",
	integration.CategoryBeauty:  "화장품",
	integration.CategoryDigital: "디지털",
	integration.CategorySports:  "스포츠",
	integration.CategoryHome:    "생활용품",
	integration.CategoryFood:    "식품",
	integration.CategoryBaby:    "유아용품",
	integration.CategoryPet:     "반려동물용품",
}

// CoupangCategoryID resolves a category key to its Coupang ID. Unknown keys resolve to "0".
func CoupangCategoryID(category integration.Category) string {
	if id, ok := coupangCategoryIDs[category]; ok {
		return id
	}
	return coupangAllCategoryID
}

// NaverCategoryKeyword returns the search keyword for a category.
// The second result is false for "all" and unknown keys.
func NaverCategoryKeyword(category integration.Category) (string, bool) {
	keyword, ok := naverCategoryKeywords[category]
	return keyword, ok
}

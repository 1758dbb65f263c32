package integration

// Category is a platform-independent category key
type Category string

const (
	CategoryAll     Category = "all"
	CategoryFashion Category = "fashion"
	CategoryBeauty  Category = "beauty"
	CategoryDigital Category = "digital"
	CategorySports  Category = "sports"
	CategoryHome    Category = "home"
	CategoryFood    Category = "food"
	CategoryBaby    Category = "baby"
	CategoryPet     Category = "pet"
)

// AllCategories lists every supported category key in display order
var AllCategories = []Category{
	CategoryAll,
	CategoryFashion,
	CategoryBeauty,
	CategoryDigital,
	CategorySports,
	CategoryHome,
	CategoryFood,
	CategoryBaby,
	CategoryPet,
}

// IsValid returns true if the category is one of the supported keys
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

package models

// Category is a spending category. Closed set; every expense and budget
// carries exactly one, and there is no dynamic extension.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryOther         Category = "OTHER"
)

// AllCategories returns every category in its fixed display order.
// Reports that must cover the full set iterate this slice, never a DB result.
func AllCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	switch Category(name) {
	case CategoryFood, CategoryTransport, CategoryUtilities, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

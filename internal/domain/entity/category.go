package entity

import "strings"

// Category labels form a fixed but extensible vocabulary. Externally
// supplied labels outside this set are accepted as-is.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryRent          = "Rent"
	CategoryBills         = "Bills"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryHealthcare    = "Healthcare"
	CategoryGroceries     = "Groceries"
	CategoryCash          = "Cash"
	CategoryOther         = "Other"
)

// Categories returns the fixed category vocabulary in display order.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryRent,
		CategoryBills,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryGroceries,
		CategoryCash,
		CategoryOther,
	}
}

// NormalizeCategory trims the label and capitalizes its first letter,
// leaving the rest of the string untouched. Empty input normalizes to "".
func NormalizeCategory(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

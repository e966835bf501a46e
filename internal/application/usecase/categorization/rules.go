// Package categorization contains the category assignment use case.
package categorization

import (
	"strings"

	"github.com/spendlens/backend/internal/domain/entity"
)

// Keyword groups for the deterministic fallback, checked in priority order.
// Cash and bill checks run before food/transport so an ATM withdrawal or a
// "trf to AMEX" line is never caught by a generic merchant keyword.
var (
	cashKeywords = []string{"atm", "cash withdrawal", "cash wdl", "withdrawn at"}

	billIssuerKeywords = []string{
		"american express", "amex", "cred club", "credit card bill",
		"card payment", "bill payment", "trf to",
	}

	foodKeywords = []string{
		"swiggy", "zomato", "dominos", "pizza", "restaurant", "cafe",
		"food", "eat", "kitchen", "biryani", "mcdonald", "kfc", "burger",
	}

	transportKeywords = []string{
		"uber", "ola", "rapido", "metro", "fuel", "petrol", "diesel", "cab",
	}

	utilityKeywords = []string{
		"electricity", "wifi", "broadband", "mobile bill", "recharge",
		"postpaid", "dth", "water bill", "gas bill",
	}

	shoppingKeywords = []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa", "shopping",
	}
)

// RuleBasedCategory maps a description to a category label using ordered
// keyword checks. It always returns a non-empty label.
func RuleBasedCategory(description string) string {
	lower := strings.ToLower(description)

	switch {
	case containsAny(lower, cashKeywords):
		return entity.CategoryCash
	case containsAny(lower, billIssuerKeywords):
		return entity.CategoryBills
	case containsAny(lower, foodKeywords):
		return entity.CategoryFood
	case containsAny(lower, transportKeywords):
		return entity.CategoryTransport
	case strings.Contains(lower, "rent"):
		return entity.CategoryRent
	case containsAny(lower, utilityKeywords):
		return entity.CategoryBills
	case containsAny(lower, shoppingKeywords):
		return entity.CategoryShopping
	default:
		return entity.CategoryOther
	}
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Package ingestion contains SMS parsing and ingestion use cases.
package ingestion

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
)

// Phrases that conclusively mark a message as an OTP, regardless of any
// other content.
var strongOTPPhrases = []string{
	"one-time password",
	"one time password",
	"verification code",
	"do not share",
}

// Weak non-transaction keywords reject a message only when no debit/credit
// action keyword is present.
var weakNonTxnKeywords = []string{
	"balance enquiry",
	"mini statement",
	"promotional",
	"otp",
}

// otpVocabulary marks OTP-ish context for the numeric-code check.
var otpVocabulary = []string{"otp", "one time", "one-time", "code"}

// actionKeywords indicate money movement.
var actionKeywords = []string{
	"debited", "credited", "spent", "paid", "received", "withdrawn", "purchase", "trf to",
}

var creditKeywords = []string{"credited", "received", "refund", "cashback"}
var debitKeywords = []string{"debited", "spent", "paid", "withdrawn", "purchase"}

var knownBanks = []struct {
	substr string
	name   string
}{
	{"hdfc", "HDFC"},
	{"icici", "ICICI"},
	{"sbi", "SBI"},
	{"axis", "Axis"},
	{"kotak", "Kotak"},
	{"idfc", "IDFC"},
	{"paytm", "Paytm"},
	{"phonepe", "PhonePe"},
}

// "cred" is matched on word boundaries so "credited" does not hit it.
var credWordPattern = regexp.MustCompile(`(?i)\bcred\b`)

var (
	currencyPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr)\s*[0-9][0-9,]*`)

	// Numeric codes shaped like "is 123456" or "574652 is" in OTP-ish context.
	otpCodePattern = regexp.MustCompile(`(?i)\bis\s+\d{4,8}\b|\b\d{4,8}\s+is\b`)

	// Amount extraction patterns, tried in priority order.
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)(?:debited|credited|spent|paid|received)\s+(?:with\s+|by\s+|for\s+)?(?:rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
		regexp.MustCompile(`(?i)(?:amount|amt)[:.]?\s*(?:rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
	}

	// Merchant extraction patterns, first match wins.
	merchantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)trf\s+to\s+([A-Za-z0-9@/&._' -]+)`),
		regexp.MustCompile(`(?i)withdrawn\s+at\s+([A-Za-z0-9@/&._' -]+)`),
		regexp.MustCompile(`(?i)\b(?:at|to|for)\s+([A-Za-z0-9@/&._'-]+(?: [A-Za-z0-9@/&._'-]+)*)`),
		regexp.MustCompile(`(?i)upi/[0-9]+/([A-Za-z0-9@&._' -]+)`),
		regexp.MustCompile(`(?i)paid\s+to\s+([A-Za-z0-9@/&._' -]+)`),
		regexp.MustCompile(`(?i)merchant\s+([A-Za-z0-9@/&._' -]+)`),
	}

	dateMonthNamePattern = regexp.MustCompile(`(?i)\b(\d{1,2})-([A-Za-z]{3})-(\d{2})\b`)
	dateNumericPattern   = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// merchantStopWords terminate a captured merchant fragment.
var merchantStopWords = []string{" on ", " ref", " avl", " bal", " info", " not you", " call ", " dial "}

// Parse turns raw SMS text into a structured transaction candidate, or nil
// when the message is not transactional or carries no positive amount.
// It never errors and never panics on malformed input.
func Parse(text, sender string) *entity.ParsedSMS {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	lower := strings.ToLower(trimmed)

	if !isTransactional(lower) {
		return nil
	}

	amount, ok := extractAmount(trimmed)
	if !ok {
		return nil
	}

	return &entity.ParsedSMS{
		RawText:   text,
		Amount:    amount,
		Merchant:  extractMerchant(trimmed),
		Date:      extractDate(trimmed),
		Direction: detectDirection(lower),
		Channel:   detectChannel(lower),
		Bank:      detectBank(lower, strings.ToLower(sender)),
		Sender:    sender,
		ParsedAt:  time.Now().UTC(),
	}
}

func isTransactional(lower string) bool {
	for _, phrase := range strongOTPPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	hasAction := containsAny(lower, actionKeywords)

	// Weak keywords alone are not conclusive.
	for _, kw := range weakNonTxnKeywords {
		if strings.Contains(lower, kw) && !hasAction {
			return false
		}
	}

	if otpCodePattern.MatchString(lower) && containsAny(lower, otpVocabulary) {
		return false
	}

	return hasAction && currencyPattern.MatchString(lower)
}

func extractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil || !amount.IsPositive() {
			continue
		}
		return amount, true
	}
	return decimal.Zero, false
}

func extractMerchant(text string) string {
	for _, pattern := range merchantPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if merchant := cleanMerchant(match[1]); merchant != "" {
			return merchant
		}
	}

	// Fallback: words 4-6 of the message, skipping short filler words.
	words := strings.Fields(text)
	if len(words) > 3 {
		end := 6
		if len(words) < end {
			end = len(words)
		}
		picked := make([]string, 0, 3)
		for _, w := range words[3:end] {
			if len(w) <= 3 {
				continue
			}
			picked = append(picked, w)
		}
		if len(picked) > 0 {
			return strings.Join(picked, " ")
		}
	}

	return "Transaction"
}

// cleanMerchant trims a captured fragment at the first stop word and, for
// composite UPI paths like "UPI/123456789012/SWIGGY", keeps the last segment.
func cleanMerchant(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	lower := strings.ToLower(fragment)
	cut := len(fragment)
	for _, stop := range merchantStopWords {
		if i := strings.Index(lower, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	fragment = strings.TrimSpace(fragment[:cut])

	if strings.Contains(fragment, "/") {
		parts := strings.Split(fragment, "/")
		fragment = strings.TrimSpace(parts[len(parts)-1])
	}

	return strings.Trim(fragment, ".,-:; ")
}

func extractDate(text string) time.Time {
	if match := dateMonthNamePattern.FindStringSubmatch(text); match != nil {
		day := atoi(match[1])
		month, ok := monthsByName[strings.ToLower(match[2])]
		year := 2000 + atoi(match[3])
		if ok && day >= 1 && day <= 31 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
	}

	if match := dateNumericPattern.FindStringSubmatch(text); match != nil {
		day := atoi(match[1])
		month := atoi(match[2])
		year := atoi(match[3])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Now().UTC()
}

func detectDirection(lower string) entity.Direction {
	if containsAny(lower, creditKeywords) {
		return entity.DirectionCredit
	}
	if containsAny(lower, debitKeywords) {
		return entity.DirectionDebit
	}
	return entity.DirectionDebit
}

func detectChannel(lower string) entity.Channel {
	switch {
	case containsAny(lower, []string{"upi", "vpa", "paytm", "gpay", "phonepe"}) || credWordPattern.MatchString(lower):
		return entity.ChannelUPI
	case containsAny(lower, []string{"card", "pos"}):
		return entity.ChannelCard
	case strings.Contains(lower, "atm"):
		return entity.ChannelATM
	case containsAny(lower, []string{"netbanking", "neft", "imps"}):
		return entity.ChannelNetBanking
	default:
		return entity.ChannelOther
	}
}

func detectBank(lowerText, lowerSender string) string {
	combined := lowerText + " " + lowerSender
	for _, bank := range knownBanks {
		if strings.Contains(combined, bank.substr) {
			return bank.name
		}
	}
	if credWordPattern.MatchString(combined) {
		return "CRED"
	}
	return ""
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

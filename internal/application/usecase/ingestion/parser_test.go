package ingestion

import (
	"testing"
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

func TestParse_RejectsNonTransactionalMessages(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "OTP with do not share",
			text: "Your OTP for transaction of Rs.5000 is 482913. Do not share with anyone.",
		},
		{
			name: "OTP with one time password",
			text: "574652 is your One Time Password for login.",
		},
		{
			name: "numeric code with otp vocabulary",
			text: "Use code 493021. Your OTP expires in 10 minutes.",
		},
		{
			name: "balance enquiry without action keyword",
			text: "Balance enquiry: your A/c XX1234 has Rs.15,000.00 available.",
		},
		{
			name: "promotional message",
			text: "Promotional offer! Get Rs.500 off on your next recharge.",
		},
		{
			name: "empty text",
			text: "",
		},
		{
			name: "action keyword without currency",
			text: "Your request to update contact details has been received.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text, "VM-HDFCBK"); got != nil {
				t.Errorf("expected nil, got %+v", got)
			}
		})
	}
}

func TestParse_UPIDebit(t *testing.T) {
	text := "Rs.450.00 debited from A/c XX1234 for UPI/123456789012/SWIGGY on 02-Dec-24. Not you? Call 18002586161."

	parsed := Parse(text, "VM-HDFCBK")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}

	if got := parsed.Amount.StringFixed(2); got != "450.00" {
		t.Errorf("expected amount 450.00, got %s", got)
	}
	if parsed.Merchant != "SWIGGY" {
		t.Errorf("expected merchant SWIGGY, got %q", parsed.Merchant)
	}
	if parsed.Direction != entity.DirectionDebit {
		t.Errorf("expected DEBIT, got %s", parsed.Direction)
	}
	if parsed.Channel != entity.ChannelUPI {
		t.Errorf("expected UPI channel, got %s", parsed.Channel)
	}
	if parsed.Bank != "HDFC" {
		t.Errorf("expected bank HDFC, got %q", parsed.Bank)
	}

	wantDate := time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC)
	if !parsed.Date.Equal(wantDate) {
		t.Errorf("expected date %s, got %s", wantDate, parsed.Date)
	}
	if parsed.Source() != "HDFC UPI" {
		t.Errorf("expected source 'HDFC UPI', got %q", parsed.Source())
	}
}

func TestParse_CreditMessage(t *testing.T) {
	text := "INR 12,500.00 credited to A/c XX9876 by NEFT on 15-01-2025. Avl bal INR 45,000.00"

	parsed := Parse(text, "AX-ICICIB")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}

	if got := parsed.Amount.StringFixed(2); got != "12500.00" {
		t.Errorf("expected amount 12500.00, got %s", got)
	}
	if parsed.Direction != entity.DirectionCredit {
		t.Errorf("expected CREDIT, got %s", parsed.Direction)
	}
	if parsed.Channel != entity.ChannelNetBanking {
		t.Errorf("expected NETBANKING channel, got %s", parsed.Channel)
	}
	if parsed.Bank != "ICICI" {
		t.Errorf("expected bank ICICI, got %q", parsed.Bank)
	}

	wantDate := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Date.Equal(wantDate) {
		t.Errorf("expected date %s, got %s", wantDate, parsed.Date)
	}
}

func TestParse_CardSpend(t *testing.T) {
	text := "You spent Rs.1,299.00 at AMAZON RETAIL on your Axis card XX4321 on 20-Mar-25. Avl limit Rs.50,000"

	parsed := Parse(text, "AD-AXISBK")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}

	if got := parsed.Amount.StringFixed(2); got != "1299.00" {
		t.Errorf("expected amount 1299.00, got %s", got)
	}
	if parsed.Merchant != "AMAZON RETAIL" {
		t.Errorf("expected merchant AMAZON RETAIL, got %q", parsed.Merchant)
	}
	if parsed.Channel != entity.ChannelCard {
		t.Errorf("expected CARD channel, got %s", parsed.Channel)
	}
	if parsed.Direction != entity.DirectionDebit {
		t.Errorf("expected DEBIT, got %s", parsed.Direction)
	}
}

func TestParse_ATMWithdrawal(t *testing.T) {
	text := "Rs.5000 withdrawn at HDFC ATM MG ROAD on 05-Feb-25. Avl bal Rs.22,340.50"

	parsed := Parse(text, "VM-HDFCBK")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}

	if got := parsed.Amount.StringFixed(2); got != "5000.00" {
		t.Errorf("expected amount 5000.00, got %s", got)
	}
	if parsed.Channel != entity.ChannelATM {
		t.Errorf("expected ATM channel, got %s", parsed.Channel)
	}
	if parsed.Merchant != "HDFC ATM MG ROAD" {
		t.Errorf("expected merchant HDFC ATM MG ROAD, got %q", parsed.Merchant)
	}
}

func TestDetectChannel_Priority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want entity.Channel
	}{
		{
			name: "card wins over atm",
			text: "rs.5000 withdrawn at hdfc atm mg road from card xx1111",
			want: entity.ChannelCard,
		},
		{
			name: "upi wins over card",
			text: "rs.200 debited via upi using card xx1111",
			want: entity.ChannelUPI,
		},
		{
			name: "vpa marks upi",
			text: "rs.450 debited to vpa swiggy@ybl",
			want: entity.ChannelUPI,
		},
		{
			name: "cred word marks upi",
			text: "rs.999 paid via cred",
			want: entity.ChannelUPI,
		},
		{
			name: "credited alone is not cred",
			text: "rs.999 credited by neft",
			want: entity.ChannelNetBanking,
		},
		{
			name: "atm without card",
			text: "rs.1000 withdrawn at sbi atm",
			want: entity.ChannelATM,
		},
		{
			name: "no channel keyword",
			text: "rs.100 debited from account",
			want: entity.ChannelOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectChannel(tt.text); got != tt.want {
				t.Errorf("detectChannel(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse_VPADebitSource(t *testing.T) {
	text := "Rs. 450.00 debited from A/c XX1234 on 02-Dec-24 to VPA swiggy@ybl/SWIGGY. Ref 123456. -HDFC Bank"

	parsed := Parse(text, "VM-HDFCBK")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}
	if parsed.Channel != entity.ChannelUPI {
		t.Errorf("expected UPI channel, got %s", parsed.Channel)
	}
	if parsed.Source() != "HDFC UPI" {
		t.Errorf("expected source 'HDFC UPI', got %q", parsed.Source())
	}
	if parsed.Merchant != "SWIGGY" {
		t.Errorf("expected merchant SWIGGY, got %q", parsed.Merchant)
	}
}

func TestParse_MerchantFallback(t *testing.T) {
	// No recognizable merchant pattern; falls back to message words.
	text := "Rs.250 debited. Groceries Corner Store purchase complete, thank you."

	parsed := Parse(text, "")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}
	if parsed.Merchant == "" {
		t.Error("expected non-empty merchant fallback")
	}
}

func TestParse_MerchantFallbackWindowStopsAtWordSix(t *testing.T) {
	// Words 4-6 are all short filler; later words must not be picked up.
	text := "Rs.90 was debited by an od Restaurant billing desk"

	parsed := Parse(text, "")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}
	if parsed.Merchant != "Transaction" {
		t.Errorf("expected placeholder merchant, got %q", parsed.Merchant)
	}
}

func TestParse_BankFromSenderOnly(t *testing.T) {
	text := "Rs.99 debited for UPI/443322110099/HOTSTAR on 01-Jun-25"

	parsed := Parse(text, "VK-KOTAKB")
	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}
	if parsed.Bank != "Kotak" {
		t.Errorf("expected bank Kotak from sender, got %q", parsed.Bank)
	}
	if parsed.Merchant != "HOTSTAR" {
		t.Errorf("expected merchant HOTSTAR, got %q", parsed.Merchant)
	}
}

func TestParse_DateDefaultsToNow(t *testing.T) {
	before := time.Now().UTC().Add(-time.Minute)
	parsed := Parse("Rs.100 debited for UPI/000000000001/TEA STALL", "")
	after := time.Now().UTC().Add(time.Minute)

	if parsed == nil {
		t.Fatal("expected parse result, got nil")
	}
	if parsed.Date.Before(before) || parsed.Date.After(after) {
		t.Errorf("expected date near now, got %s", parsed.Date)
	}
}

func TestCleanMerchant(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"upi path keeps last segment", "UPI/123456789012/SWIGGY", "SWIGGY"},
		{"stop word trims trailing context", "ZOMATO on 02-Dec-24. Not you", "ZOMATO"},
		{"ref trailer", "BIGBAZAAR ref 99123", "BIGBAZAAR"},
		{"plain name untouched", "Netflix.com", "Netflix.com"},
		{"whitespace trimmed", "  DMart  ", "DMart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMerchant(tt.fragment); got != tt.want {
				t.Errorf("cleanMerchant(%q) = %q, want %q", tt.fragment, got, tt.want)
			}
		})
	}
}

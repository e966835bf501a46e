package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money left or entered the account.
type Direction string

const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// Channel is the payment rail a transaction occurred through.
type Channel string

const (
	ChannelUPI        Channel = "UPI"
	ChannelCard       Channel = "CARD"
	ChannelATM        Channel = "ATM"
	ChannelNetBanking Channel = "NETBANKING"
	ChannelOther      Channel = "OTHER"
)

// Label returns the human-readable channel label used as transaction source.
func (c Channel) Label() string {
	switch c {
	case ChannelUPI:
		return "UPI"
	case ChannelCard:
		return "Card"
	case ChannelATM:
		return "ATM"
	case ChannelNetBanking:
		return "Net Banking"
	default:
		return "Other"
	}
}

// ParsedSMS is the structured transaction candidate extracted from a raw
// bank SMS. It exists only for the duration of one ingestion call.
type ParsedSMS struct {
	RawText   string
	Amount    decimal.Decimal
	Merchant  string
	Date      time.Time
	Direction Direction
	Channel   Channel
	Bank      string // optional, empty when no known bank matched
	Sender    string
	ParsedAt  time.Time
}

// Source composes the persisted transaction source label from the detected
// bank and channel, e.g. "HDFC UPI" or plain "Card".
func (p *ParsedSMS) Source() string {
	if p.Bank != "" {
		return p.Bank + " " + p.Channel.Label()
	}
	return p.Channel.Label()
}

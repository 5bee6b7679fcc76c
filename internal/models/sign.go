package models

import "github.com/shopspring/decimal"

// Sign is the presentation bucket of a signed metric.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
	SignNeutral  Sign = "neutral"
)

// Classify buckets a value: positive iff > 0, negative iff < 0, neutral iff 0.
func Classify(v decimal.Decimal) Sign {
	switch v.Sign() {
	case 1:
		return SignPositive
	case -1:
		return SignNegative
	default:
		return SignNeutral
	}
}

// SignedValue pairs a value with its sign classification.
type SignedValue struct {
	Value decimal.Decimal `json:"value" yaml:"value"`
	Sign  Sign            `json:"sign" yaml:"sign"`
}

// NewSignedValue classifies v.
func NewSignedValue(v decimal.Decimal) SignedValue {
	return SignedValue{Value: v, Sign: Classify(v)}
}

package utils

import (
	"github.com/shopspring/decimal"
)

// minorUnitExponents lists ISO 4217 currencies whose minor unit is not 1/100.
var minorUnitExponents = map[string]int32{
	"BHD": 3,
	"BIF": 0,
	"CLP": 0,
	"IQD": 3,
	"ISK": 0,
	"JOD": 3,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"PYG": 0,
	"RWF": 0,
	"TND": 3,
	"UGX": 0,
	"VND": 0,
	"XAF": 0,
	"XOF": 0,
}

// CurrencyExponent returns the number of decimal places of the currency's minor unit.
func CurrencyExponent(currencyCode string) int32 {
	if exp, ok := minorUnitExponents[currencyCode]; ok {
		return exp
	}
	return 2
}

// FormatMinorUnits renders an amount held in minor units in major units.
// Example: 12345 USD returns "123.45"
// Example: 12345 JPY returns "12345"
// Example: 5 KWD returns "0.005"
func FormatMinorUnits(amount int64, currencyCode string) string {
	exp := CurrencyExponent(currencyCode)
	return decimal.New(amount, -exp).StringFixed(exp)
}

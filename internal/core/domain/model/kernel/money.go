package kernel

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places money amounts are rounded to.
const MoneyPlaces = 2

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

package services

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// currencySymbols is the ordered list checked before any fallback. Order
// matters: a formatted amount is matched against the first symbol it
// contains, so "A$50" resolves to "$" here. Compatibility with existing
// data wins over precision; see the technical-debt note in DESIGN.md.
var currencySymbols = []string{
	"$", "€", "£", "¥", "₹", "₽", "₿",
	"kr", "R$", "A$", "C$", "HK$", "NZ$", "S$", "CHF",
}

// ExtractCurrency sniffs a currency marker out of a formatted amount string
// such as "$50.00" or "€12,50". When no known symbol is present it falls
// back to the first rune that is not a digit, '.', ',' or '-', and finally
// to "$".
func ExtractCurrency(formatted string) string {
	for _, sym := range currencySymbols {
		if strings.Contains(formatted, sym) {
			return sym
		}
	}
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' || r == ',' || r == '-' {
			continue
		}
		return string(r)
	}
	return "$"
}

// NetBalance is the per-currency aggregate of outstanding debts.
type NetBalance struct {
	Currency  string
	TheyOweMe float64
	IOweThem  float64
}

// Net is TheyOweMe minus IOweThem.
func (b NetBalance) Net() float64 {
	return b.TheyOweMe - b.IOweThem
}

// CalculateNetBalances groups outstanding (non-completed) debts by the
// currency marker of their formatted amount and sums each direction.
// Results are sorted by currency ascending. The function is pure; calling
// it twice on the same input yields the same output.
func CalculateNetBalances(debts []models.Debt) []NetBalance {
	byCurrency := make(map[string]*NetBalance)
	for _, d := range debts {
		if !d.Outstanding() {
			continue
		}
		cur := ExtractCurrency(d.AmountWithCurrency)
		b, ok := byCurrency[cur]
		if !ok {
			b = &NetBalance{Currency: cur}
			byCurrency[cur] = b
		}
		if d.InDebt == models.InDebtYes {
			b.IOweThem += d.Amount
		} else {
			b.TheyOweMe += d.Amount
		}
	}

	out := make([]NetBalance, 0, len(byCurrency))
	for _, b := range byCurrency {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

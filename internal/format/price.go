// Package format renders Chilean peso amounts the way the menu displays
// them: no decimals, dot as thousands separator.
package format

import "strconv"

// Price formats an integer CLP amount with the currency symbol, e.g. 8000
// becomes "$8.000".
func Price(amount int64) string {
	if amount < 0 {
		return "-$" + groupThousands(-amount)
	}
	return "$" + groupThousands(amount)
}

// PriceNumber formats the amount without the currency symbol.
func PriceNumber(amount int64) string {
	if amount < 0 {
		return "-" + groupThousands(-amount)
	}
	return groupThousands(amount)
}

func groupThousands(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return digits
	}
	var out []byte
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

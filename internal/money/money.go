package money

import "fmt"

// Rupiah renders an amount in cents as "Rp 199.000".
func Rupiah(cents int64) string {
	whole := cents / 100
	neg := whole < 0
	if neg {
		whole = -whole
	}

	s := fmt.Sprintf("%d", whole)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}

	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}

// Package document validates the national tax identifiers carried by
// account holders (11 digits) and merchants (14 digits).
package document

// digits converts an all-digit string into its numeric values.
// The caller guarantees s contains only '0'..'9'.
func digits(s string) []int {
	d := make([]int, len(s))
	for i := range s {
		d[i] = int(s[i] - '0')
	}
	return d
}

func allSame(d []int) bool {
	for _, v := range d[1:] {
		if v != d[0] {
			return false
		}
	}
	return true
}

// weightedSum multiplies d[i] by weight(i) and adds the products.
func weightedSum(d []int, weight func(i int) int) int {
	sum := 0
	for i, v := range d {
		sum += v * weight(i)
	}
	return sum
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range s {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

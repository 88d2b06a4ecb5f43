// Package numwords renders rupee amounts as words using the Indian
// numbering system (crore/lakh/thousand groups).
package numwords

import "strings"

var below20 = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// twoDigits renders 0..99.
func twoDigits(n int) string {
	if n < 20 {
		return below20[n]
	}
	out := tens[n/10]
	if n%10 > 0 {
		out += " " + below20[n%10]
	}
	return out
}

// threeDigits renders 0..999.
func threeDigits(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, below20[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, twoDigits(n))
	}
	return strings.Join(parts, " ")
}

// InWords converts a non-negative integer to Indian-system words.
// Grouping after the first three digits goes in pairs: thousand, lakh, crore.
func InWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string

	crore := n / 10000000
	n %= 10000000
	lakh := n / 100000
	n %= 100000
	thousand := n / 1000
	n %= 1000

	if crore > 0 {
		// Beyond 99 crore the crore count itself is rendered recursively
		// (e.g. "One Hundred Crore").
		if crore > 99 {
			parts = append(parts, InWords(crore)+" Crore")
		} else {
			parts = append(parts, twoDigits(int(crore))+" Crore")
		}
	}
	if lakh > 0 {
		parts = append(parts, twoDigits(int(lakh))+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigits(int(thousand))+" Thousand")
	}
	if n > 0 {
		parts = append(parts, threeDigits(int(n)))
	}

	return strings.Join(parts, " ")
}

// RupeesInWords renders the integer rupee portion of an amount, ending in
// "Rupees Only". Zero renders as "Zero Rupees Only".
func RupeesInWords(amount float64) string {
	rupees := int64(amount)
	if rupees <= 0 {
		return "Zero Rupees Only"
	}
	return InWords(rupees) + " Rupees Only"
}

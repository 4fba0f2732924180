package phonemask

import (
	"strings"

	"transfer-storefront/internal/pkg/helper"
)

// Mask is a country phone format; '#' is a digit slot, everything else is
// literal. Prefix holds the literal dialling code at the mask start.
type Mask struct {
	Country string `json:"country"`
	Name    string `json:"name"`
	Prefix  string `json:"prefix"`
	Pattern string `json:"pattern"`
}

var masks = map[string]Mask{
	"HT": {Country: "HT", Name: "Haiti", Prefix: "509", Pattern: "+509 #### ####"},
	"US": {Country: "US", Name: "United States", Prefix: "1", Pattern: "+1 (###) ###-####"},
	"CA": {Country: "CA", Name: "Canada", Prefix: "1", Pattern: "+1 (###) ###-####"},
	"DO": {Country: "DO", Name: "Dominican Republic", Prefix: "1", Pattern: "+1 (###) ###-####"},
	"FR": {Country: "FR", Name: "France", Prefix: "33", Pattern: "+33 # ## ## ## ##"},
	"MX": {Country: "MX", Name: "Mexico", Prefix: "52", Pattern: "+52 ## #### ####"},
	"BR": {Country: "BR", Name: "Brazil", Prefix: "55", Pattern: "+55 (##) #####-####"},
	"CL": {Country: "CL", Name: "Chile", Prefix: "56", Pattern: "+56 # #### ####"},
}

// Lookup accepts an ISO alpha-2 code or the English country name.
func Lookup(country string) (Mask, bool) {
	c := strings.TrimSpace(country)
	if m, ok := masks[strings.ToUpper(c)]; ok {
		return m, true
	}
	for _, m := range masks {
		if strings.EqualFold(m.Name, c) {
			return m, true
		}
	}
	return Mask{}, false
}

func Masks() []Mask {
	out := make([]Mask, 0, len(masks))
	for _, m := range masks {
		out = append(out, m)
	}
	return out
}

// Slots is the number of local digits the mask takes after the prefix.
func (m Mask) Slots() int {
	return strings.Count(m.Pattern, "#")
}

// local strips a leading dialling code from the digits of input.
func (m Mask) local(input string) string {
	digits := helper.OnlyDigits(input)
	if strings.HasPrefix(digits, m.Prefix) && len(digits) > m.Slots() {
		digits = digits[len(m.Prefix):]
	}
	return digits
}

// Apply formats as many digits as the input has, the way the field does
// while the user types. A leading dialling code is dropped and extra digits
// are cut off.
func (m Mask) Apply(input string) string {
	digits := m.local(input)
	if len(digits) == 0 {
		return ""
	}
	if len(digits) > m.Slots() {
		digits = digits[:m.Slots()]
	}

	var sb strings.Builder
	used := 0
	for _, r := range m.Pattern {
		if r == '#' {
			if used == len(digits) {
				break
			}
			sb.WriteByte(digits[used])
			used++
			continue
		}
		if used > 0 && used == len(digits) {
			break
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}

// Complete reports whether s is a fully formatted number for this mask.
func (m Mask) Complete(s string) bool {
	return len(m.local(s)) == m.Slots() && m.Apply(s) == strings.TrimSpace(s)
}

// Format applies the mask for country. Unknown countries get "+" and the
// digits.
func Format(country, input string) string {
	if m, ok := Lookup(country); ok {
		return m.Apply(input)
	}
	digits := helper.OnlyDigits(input)
	if digits == "" {
		return ""
	}
	return "+" + digits
}

// Valid reports whether phone is complete for country. For countries without
// a mask any "+" number of 7 to 15 digits passes.
func Valid(country, phone string) bool {
	if m, ok := Lookup(country); ok {
		return m.Complete(phone)
	}
	p := strings.TrimSpace(phone)
	n := len(helper.OnlyDigits(p))
	return strings.HasPrefix(p, "+") && n >= 7 && n <= 15
}

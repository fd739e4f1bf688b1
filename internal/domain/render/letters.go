// Package render turns a document and its regrouped sections into a
// printable projection: one lettered page per section, materials and
// labour subsections, then a summary page.
package render

// SectionLetter maps a zero-based section index to its page letter:
// A..Z, then AA, AB and so on (spreadsheet column style), so documents
// with more than 26 sections still render.
func SectionLetter(index int) string {
	if index < 0 {
		return ""
	}
	// base-26 without a zero digit
	n := index + 1
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

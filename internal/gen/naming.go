package gen

import (
	"strings"
	"unicode"
)

// snakeCase converts a Go identifier to snake_case, keeping initialisms
// together: "HTTPRequest" -> "http_request", "SalesByRegion" -> "sales_by_region".
func snakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// isExported reports whether name starts with an upper case letter.
func isExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}

	return false
}

// upperFirst capitalizes the first letter of name.
func upperFirst(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}

	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// funcName builds the generated function name for a record: CubeSale for
// Sale, cubeSale for sale, so that visibility follows the record.
func funcName(prefix, recordName string) string {
	if isExported(recordName) {
		return upperFirst(prefix) + recordName
	}

	return strings.ToLower(prefix[:1]) + prefix[1:] + upperFirst(recordName)
}

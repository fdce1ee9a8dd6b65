package scriptcs

import (
	"encoding/base64"
	"strings"
)

// NullValue is the C# literal emitted for a null variable value.
const NullValue = "null"

const (
	decodePrefix = `System.Text.Encoding.UTF8.GetString(Convert.FromBase64String("`
	decodeSuffix = `"))`
)

// EncodeValue returns a C# expression that evaluates to value. Strings are
// carried as base64 of their UTF-8 bytes so no quoting or escaping is needed.
// A nil value encodes to the null literal.
func EncodeValue(value *string) string {
	if value == nil {
		return NullValue
	}
	return EncodeString(*value)
}

// EncodeString is EncodeValue for a non-null string.
func EncodeString(value string) string {
	var b strings.Builder
	b.Grow(len(decodePrefix) + base64.StdEncoding.EncodedLen(len(value)) + len(decodeSuffix))
	b.WriteString(decodePrefix)
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(value)))
	b.WriteString(decodeSuffix)
	return b.String()
}

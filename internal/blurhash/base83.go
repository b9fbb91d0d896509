package blurhash

import "fmt"

// alphabet is part of the wire format and must not change.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// digitValue maps a byte to its base-83 digit, or -1.
var digitValue [256]int8

func init() {
	for i := range digitValue {
		digitValue[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		digitValue[alphabet[i]] = int8(i)
	}
}

// decode83 parses s as a base-83 numeral, most significant digit first.
func decode83(s string) (int, error) {
	result := 0
	for i := 0; i < len(s); i++ {
		d := digitValue[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w %q at offset %d", InvalidCharacter, s[i], i)
		}
		result = result*83 + int(d)
	}
	return result, nil
}

// encode83 renders n as exactly length base-83 digits.
// The caller guarantees n < 83^length.
func encode83(n, length int) string {
	return string(appendBase83(make([]byte, 0, length), n, length))
}

// appendBase83 appends exactly length digits of n to dst.
func appendBase83(dst []byte, n, length int) []byte {
	div := 1
	for i := 1; i < length; i++ {
		div *= 83
	}
	for i := 0; i < length; i++ {
		dst = append(dst, alphabet[(n/div)%83])
		div /= 83
	}
	return dst
}

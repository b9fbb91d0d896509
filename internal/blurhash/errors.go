package blurhash

// EncodeError is the closed set of reasons Encode rejects its input.
type EncodeError int

const (
	// ComponentNumberOutbound: a component count is outside [1, 9].
	ComponentNumberOutbound EncodeError = iota + 1
	// PixelArrayMismatch: len(pixels) != width*height*4.
	PixelArrayMismatch
)

func (e EncodeError) Error() string {
	switch e {
	case ComponentNumberOutbound:
		return "blurhash: component count must be between 1 and 9"
	case PixelArrayMismatch:
		return "blurhash: pixel array length does not match width*height*4"
	}
	return "blurhash: unknown encode error"
}

// DecodeError is the closed set of reasons Decode rejects a hash.
type DecodeError int

const (
	// InvalidLength: the hash is shorter than 6 characters.
	InvalidLength DecodeError = iota + 1
	// LengthMismatch: the hash length disagrees with its size flag.
	LengthMismatch
	// InvalidCharacter: a character is not part of the base-83 alphabet.
	InvalidCharacter
	// InvalidDimensions: a negative output width or height was requested.
	InvalidDimensions
)

func (e DecodeError) Error() string {
	switch e {
	case InvalidLength:
		return "blurhash: hash must be at least 6 characters"
	case LengthMismatch:
		return "blurhash: hash length does not match its component count"
	case InvalidCharacter:
		return "blurhash: invalid base83 character"
	case InvalidDimensions:
		return "blurhash: output dimensions must not be negative"
	}
	return "blurhash: unknown decode error"
}

package material

import "errors"

// Construction-time structural errors. All of these mean the data fed to the
// store was malformed; none of them is a recoverable runtime condition.
var (
	ErrEmptyName       = errors.New("empty attribute name")
	ErrTooLong         = errors.New("attribute data too long")
	ErrUnsupportedType = errors.New("unsupported attribute type")
	ErrTypeMismatch    = errors.New("attribute type mismatch")
	ErrEmptyAttribute  = errors.New("empty attribute record")
	ErrDuplicate       = errors.New("duplicate attribute")
	ErrUnsorted        = errors.New("attribute data not sorted")
	ErrInvalidOffsets  = errors.New("invalid layer offsets")
	ErrOwnedFlag       = errors.New("borrowed data can't be Owned")
	ErrInvalidSize     = errors.New("invalid value size")
)

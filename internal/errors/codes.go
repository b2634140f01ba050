package errors

// Code classifies an error
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
	CodeUnavailable     Code = "UNAVAILABLE"

	// CodeMalformedEncoding marks persisted text that is not a valid item
	// container envelope.
	CodeMalformedEncoding Code = "MALFORMED_ENCODING"

	// CodeUnsupportedSchemaVersion marks an item record whose version tag has
	// no migration path to the current schema.
	CodeUnsupportedSchemaVersion Code = "UNSUPPORTED_SCHEMA_VERSION"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

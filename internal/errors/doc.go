// Package errors provides the structured error type used across rpg-items.
//
// Every error carries a Code, a human readable Message, an optional Cause and
// optional metadata:
//
//	err := errors.UnsupportedSchemaVersionf("item %s has version %d", id, v).
//	    WithMeta("item_id", id).
//	    WithMeta("version", v)
//
// Wrapping keeps the code of the wrapped error unless a new one is given:
//
//	if err := store.Set(ctx, key, data); err != nil {
//	    return errors.Wrap(err, "failed to persist items")
//	}
//
// Checking:
//
//	if errors.IsUnsupportedSchemaVersion(err) {
//	    // the stored data was written by a newer build
//	}
//
// # Layer guidelines
//
// Entities:
//   - Return MalformedEncoding / UnsupportedSchemaVersion from decoding
//   - Never error on a missing key, report absence instead
//
// Repositories and stores:
//   - Wrap backend failures with context and the key involved
//
// Orchestrators:
//   - Validate inputs with the ValidationBuilder (InvalidArgument)
//   - Turn absence into NotFound where the caller asked for a single item
package errors

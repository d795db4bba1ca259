// Package dto defines the request/response models of the Authlete backend API.
//
// Every type is a plain data holder: exported fields with camelCase json tags
// matching the wire format, no behavior beyond String() on enums and
// Summarize() on a few response types. Serialization is encoding/json;
// protocol semantics live entirely in the remote backend.
//
// Request DTOs are posted to /api/... endpoints; response DTOs embed
// APIResponse (resultCode / resultMessage) and usually carry an Action that
// tells the caller which HTTP response to build for its own client.
package dto

package dto

// CimdOptions configures support for Client ID Metadata Documents
// (draft-ietf-oauth-client-id-metadata-document): clients identified by an
// https URL whose metadata the backend fetches on demand.
type CimdOptions struct {
	// Enabled turns CIMD support on for the service.
	Enabled bool `json:"enabled,omitempty"`

	// MetadataCacheDuration is how long fetched metadata documents are
	// cached, in seconds. 0 means the backend default.
	MetadataCacheDuration int64 `json:"metadataCacheDuration,omitempty"`

	// MaxMetadataSize caps the size of a fetched document in bytes.
	MaxMetadataSize int `json:"maxMetadataSize,omitempty"`

	// ErrorOnFetchFailure makes authorization requests fail when the
	// document cannot be fetched instead of falling back to cached data.
	ErrorOnFetchFailure bool `json:"errorOnFetchFailure,omitempty"`

	// AllowedSchemes restricts the URL schemes accepted as client IDs.
	// Only "https" is meaningful today; the field exists for the draft's
	// evolution.
	AllowedSchemes []string `json:"allowedSchemes,omitempty"`
}

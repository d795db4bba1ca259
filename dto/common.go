package dto

import "fmt"

// APIResponse is the base of every Authlete response. resultCode is a short
// machine code like "A004001"; resultMessage is human-readable.
type APIResponse struct {
	ResultCode    string `json:"resultCode,omitempty"`
	ResultMessage string `json:"resultMessage,omitempty"`
}

// Result returns "code: message" for logs and errors.
func (r *APIResponse) Result() string {
	return fmt.Sprintf("%s: %s", r.ResultCode, r.ResultMessage)
}

// Pair is a generic string key/value pair.
type Pair struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// Property is an extra property associated with an access token.
// Hidden properties are kept by the backend but never exposed to the client
// application (RFC 6749 extension parameters).
type Property struct {
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// TaggedValue is a string value with a language tag (BCP 47), used for
// localized client metadata such as client_name#ja.
type TaggedValue struct {
	Tag   string `json:"tag,omitempty"`
	Value string `json:"value,omitempty"`
}

// NamedURI is a URI with a display name (e.g. entries of trust frameworks).
type NamedURI struct {
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// Scope represents a scope of a service ("openid", "profile", ...).
type Scope struct {
	Name         string        `json:"name,omitempty"`
	DefaultEntry bool          `json:"defaultEntry,omitempty"`
	Description  string        `json:"description,omitempty"`
	Descriptions []TaggedValue `json:"descriptions,omitempty"`
	Attributes   []Pair        `json:"attributes,omitempty"`
}

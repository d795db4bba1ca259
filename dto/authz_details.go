package dto

// AuthzDetailsElement is an element of the "authorization_details" request
// parameter defined in RFC 9396 (OAuth 2.0 Rich Authorization Requests).
//
// OtherFields holds the JSON of all the members this struct has no field for;
// the backend returns them verbatim.
type AuthzDetailsElement struct {
	Type        string   `json:"type,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	Actions     []string `json:"actions,omitempty"`
	DataTypes   []string `json:"dataTypes,omitempty"`
	Identifier  string   `json:"identifier,omitempty"`
	Privileges  []string `json:"privileges,omitempty"`
	OtherFields string   `json:"otherFields,omitempty"`
}

// AuthzDetails is the whole "authorization_details" value.
type AuthzDetails struct {
	Elements []AuthzDetailsElement `json:"elements,omitempty"`
}

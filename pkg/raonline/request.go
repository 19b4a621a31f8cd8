package raonline

// PartInfoRequest represents a GetPartInfoItems lookup request.
type PartInfoRequest struct {
	Method        string  `json:"method"` // "GetPartInfoItems"
	Login         string  `json:"login"`
	Password      string  `json:"password"`
	PartNumber    string  `json:"partNumber"`
	SearchAnalogs bool    `json:"searchAnalogs"`
	Language      string  `json:"language"` // "E" for English
	MinQuantity   float64 `json:"minQuantity"`
	RefID         string  `json:"refId,omitempty"`
}

package dto

type CreateThingRequest struct {
	// Urn optionally carries a client-supplied identifier; the server
	// generates one when absent.
	Urn    *string `json:"urn"`
	Type   string  `json:"type" binding:"required,max=255"`
	Active *bool   `json:"active"`
}

type UpdateThingRequest struct {
	Urn    string `json:"urn" binding:"required"`
	Active *bool  `json:"active"`
}

type ThingFilters struct {
	IDPrefix      string `form:"id_prefix" json:"id_prefix"`
	Type          string `form:"type" json:"type"`
	ModifiedAfter *int64 `form:"modified_after" json:"modified_after"`
}

type ThingResponse struct {
	Urn          string `json:"urn"`
	Type         string `json:"type"`
	TenantUrn    string `json:"tenant_urn"`
	CreatedAt    int64  `json:"created_at"`
	LastModified int64  `json:"last_modified"`
	Active       bool   `json:"active"`
}

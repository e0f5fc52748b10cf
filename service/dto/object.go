package dto

type CreateObjectRequest struct {
	ObjectID    string `json:"object_id" binding:"required,max=767"`
	Type        string `json:"type" binding:"required,max=255"`
	Name        string `json:"name" binding:"required,max=255"`
	Moniker     string `json:"moniker" binding:"max=2048"`
	Description string `json:"description" binding:"max=1024"`
	Active      *bool  `json:"active"`
}

// UpdateObjectRequest carries a partial update. Urn and ObjectID locate
// the target record; every other field overwrites the stored value only
// when present (non-nil, non-empty for strings).
type UpdateObjectRequest struct {
	Urn         *string `json:"urn"`
	ObjectID    *string `json:"object_id"`
	Type        *string `json:"type"`
	Name        *string `json:"name"`
	Moniker     *string `json:"moniker"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ObjectFilters is the sparse search criteria map. Zero values mean
// "do not constrain". ModifiedAfter is epoch milliseconds, strictly
// greater-than.
type ObjectFilters struct {
	ObjectIDPrefix string `form:"object_id_prefix" json:"object_id_prefix"`
	Type           string `form:"type" json:"type"`
	NamePrefix     string `form:"name_prefix" json:"name_prefix"`
	MonikerPrefix  string `form:"moniker_prefix" json:"moniker_prefix"`
	ModifiedAfter  *int64 `form:"modified_after" json:"modified_after"`
}

type ObjectResponse struct {
	Urn          string `json:"urn"`
	ObjectID     string `json:"object_id"`
	Type         string `json:"type"`
	AccountUrn   string `json:"account_urn"`
	CreatedAt    int64  `json:"created_at"`
	LastModified int64  `json:"last_modified"`
	Moniker      string `json:"moniker,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Active       bool   `json:"active"`
}

package dto

// TagRequest rejects blank names at validation time, before anything is
// persisted.
type TagRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

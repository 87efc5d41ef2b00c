package dto

type CreateItemRequestDTO struct {
	Name string `json:"name" binding:"required,max=120"`
}

// UpdateItemRequestDTO carries a rename and/or a completion toggle;
// at least one of the two must be present.
type UpdateItemRequestDTO struct {
	Name string `json:"name"`
	Done *bool  `json:"done"`
}

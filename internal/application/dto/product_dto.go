package dto

// CreateProductRequest input for product creation.
type CreateProductRequest struct {
	Name string `json:"name" validate:"required,min=3,max=500"`
}

// ProductResponse product output.
type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

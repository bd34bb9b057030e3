package request

import "cistilnica/internal/usecase"

// CreateArticleRequest is the POST /api/articles payload. A finalPrice field
// sent by the client is not even parsed; the server derives it.
type CreateArticleRequest struct {
	Name            string  `json:"name" binding:"required"`
	Unit            string  `json:"unit" binding:"required"`
	Price           float64 `json:"price"`
	VATPercent      float64 `json:"vatPercent"`
	OwnerCustomerID string  `json:"ownerCustomerId"`
}

func (r CreateArticleRequest) ToInput() usecase.ArticleInput {
	return usecase.ArticleInput{
		Name:            r.Name,
		Unit:            r.Unit,
		Price:           r.Price,
		VATPercent:      r.VATPercent,
		OwnerCustomerID: r.OwnerCustomerID,
	}
}

type UpdateArticleRequest struct {
	Name            *string  `json:"name"`
	Unit            *string  `json:"unit"`
	Price           *float64 `json:"price"`
	VATPercent      *float64 `json:"vatPercent"`
	OwnerCustomerID *string  `json:"ownerCustomerId"`
}

func (r UpdateArticleRequest) ToUpdate() usecase.ArticleUpdate {
	return usecase.ArticleUpdate{
		Name:            r.Name,
		Unit:            r.Unit,
		Price:           r.Price,
		VATPercent:      r.VATPercent,
		OwnerCustomerID: r.OwnerCustomerID,
	}
}

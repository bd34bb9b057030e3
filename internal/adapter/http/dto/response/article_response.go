package response

import (
	"time"

	"cistilnica/internal/domain/entities"
)

type ArticleResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	Price           float64   `json:"price"`
	VATPercent      float64   `json:"vatPercent"`
	FinalPrice      float64   `json:"finalPrice"`
	UsageCount      int64     `json:"usageCount"`
	OwnerCustomerID string    `json:"ownerCustomerId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromArticle(a entities.Article) ArticleResponse {
	return ArticleResponse{
		ID:              a.ID,
		Name:            a.Name,
		Unit:            a.Unit,
		Price:           a.Price,
		VATPercent:      a.VATPercent,
		FinalPrice:      a.FinalPrice,
		UsageCount:      a.UsageCount,
		OwnerCustomerID: a.OwnerCustomerID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromArticles(articles []entities.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = FromArticle(a)
	}
	return out
}

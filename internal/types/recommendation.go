package types

import "github.com/pageza/tastemap/backend/internal/recommendation"

type RecommendationsResponse struct {
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Count           int                             `json:"count"`
}

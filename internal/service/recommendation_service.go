package service

import (
	"context"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
)

const recommendLimit = 20

// RecommendationService answers free-text queries like "a quiet room
// for six people in Mapo" by having the extractor distill them into a
// search filter and running the regular catalog search with it.
type RecommendationService struct {
	extractor ConditionExtractor
	spaces    *repository.SpaceRepo
}

func NewRecommendationService(extractor ConditionExtractor, spaces *repository.SpaceRepo) *RecommendationService {
	return &RecommendationService{extractor: extractor, spaces: spaces}
}

// Recommend returns OPEN spaces matching the extracted condition,
// along with the condition itself so the client can show what the
// query was understood as.
func (s *RecommendationService) Recommend(ctx context.Context, query string) (SearchCondition, []model.Space, error) {
	cond, err := s.extractor.Extract(ctx, query)
	if err != nil {
		return SearchCondition{}, nil, err
	}

	var f repository.SearchFilter
	if cond.Location != "" {
		f.Location = &cond.Location
	}
	if cond.SpaceType != "" && model.ValidSpaceType(cond.SpaceType) {
		f.SpaceType = &cond.SpaceType
	}
	if cond.PeopleCount > 0 {
		f.Capacity = &cond.PeopleCount
	}

	spaces, _, err := s.spaces.Search(ctx, f, recommendLimit, 0)
	if err != nil {
		return SearchCondition{}, nil, err
	}
	return cond, spaces, nil
}

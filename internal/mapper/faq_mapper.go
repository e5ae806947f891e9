package mapper

import (
	"time"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/model"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(f *model.Faq) *entity.Faq {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		ts := f.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Faq{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaqMapper) ToModel(f *entity.Faq) *model.Faq {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.Faq{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

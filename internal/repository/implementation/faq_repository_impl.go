package implementation

import (
	"context"
	"errors"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/mapper"
	"csupport-chat-be/internal/model"
	"csupport-chat-be/internal/repository/contract"
	"csupport-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FaqRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaqMapper
}

func NewFaqRepository(db *gorm.DB) contract.FaqRepository {
	return &FaqRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaqMapper(),
	}
}

func (r *FaqRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FaqRepositoryImpl) Create(ctx context.Context, faq *entity.Faq) error {
	m := r.mapper.ToModel(faq)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*faq = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaqRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Faq, error) {
	var m model.Faq
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FaqRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Faq, error) {
	var models []*model.Faq
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Faq, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *FaqRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Faq{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

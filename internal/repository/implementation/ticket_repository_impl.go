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

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TicketMapper
}

func NewTicketRepository(db *gorm.DB) contract.TicketRepository {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mapper.NewTicketMapper(),
	}
}

func (r *TicketRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *entity.Ticket) error {
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, ticket *entity.Ticket) error {
	m := r.mapper.ToModel(ticket)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*ticket = *r.mapper.ToEntity(m)
	return nil
}

func (r *TicketRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ticket, error) {
	var m model.Ticket
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TicketRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ticket, error) {
	var models []*model.Ticket
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Ticket, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TicketRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Ticket{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

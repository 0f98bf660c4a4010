package orderrepo

import (
	"context"
	"errors"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// The aggregate's order type selects the table pair each operation targets.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Table(ordersTableName(aggregate.OrderType())).Create(&dto).Error; err != nil {
		return err
	}

	if len(items) > 0 {
		err := r.db.WithContext(ctx).Table(orderItemsTableName(aggregate.OrderType())).Create(&items).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Line items are immutable after placement and are not touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Table(ordersTableName(aggregate.OrderType())).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID from the table pair of the given order family.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID, orderType order.Type) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Table(ordersTableName(orderType)).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, dto, orderType)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, items, orderType)
}

// GetAllInDeliveringStatus retrieves all orders of one family currently out for delivery.
func (r *GormOrderRepository) GetAllInDeliveringStatus(
	ctx context.Context,
	orderType order.Type,
) ([]*order.Order, error) {
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Table(ordersTableName(orderType)).
		Find(&dtos, "status = ?", string(order.StatusDelivering)).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		items, itemsErr := r.loadItems(ctx, dto, orderType)
		if itemsErr != nil {
			return nil, itemsErr
		}

		aggregate, domainErr := toDomain(dto, items, orderType)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) loadItems(
	ctx context.Context,
	dto OrderDTO,
	orderType order.Type,
) ([]ItemDTO, error) {
	var items []ItemDTO
	err := r.db.WithContext(ctx).
		Table(orderItemsTableName(orderType)).
		Order("id").
		Find(&items, "order_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

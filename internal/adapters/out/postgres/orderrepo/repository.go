package orderrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items and delivery details.
// Identifiers the database generates for owned rows are written back into
// the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return assignGeneratedIDs(aggregate, dto)
}

// Update saves an existing order. Items removed from the aggregate are
// deleted; new items are inserted and their identifiers written back.
// Fails with a not-found error if the order has never been added.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto).Error; err != nil {
		return err
	}

	if err := r.deleteRemovedItems(db, dto); err != nil {
		return err
	}

	return assignGeneratedIDs(aggregate, dto)
}

// deleteRemovedItems drops item rows no longer present in the aggregate.
func (r *GormOrderRepository) deleteRemovedItems(db *gorm.DB, dto OrderDTO) error {
	keep := make([]int64, 0, len(dto.Items))
	for _, it := range dto.Items {
		keep = append(keep, it.ID)
	}

	query := db.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}

	return query.Delete(&ItemDTO{}).Error
}

// Get retrieves an order by id, with its items and delivery details.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("DeliveryDetails").
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every stored order, sorted by id.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("DeliveryDetails").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllInStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("DeliveryDetails").
		Order("id").
		Find(&dtos, "status = ?", int(status)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes an order; owned item and delivery rows go with it via the
// cascade constraint.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", id)
	}
	return nil
}

// MaxID returns the highest stored order id, zero for an empty store.
func (r *GormOrderRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(id), 0) FROM orders").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// assignGeneratedIDs writes database-generated identifiers back into the
// aggregate after an insert. Item DTOs keep the aggregate's ordering, so rows
// and domain items line up by index.
func assignGeneratedIDs(aggregate *order.Order, dto OrderDTO) error {
	for i, it := range aggregate.Items() {
		if it.ID() != 0 || i >= len(dto.Items) {
			continue
		}
		if err := it.AssignID(dto.Items[i].ID); err != nil {
			return err
		}
	}

	if dd := aggregate.DeliveryDetails(); dd != nil && dd.ID() == 0 && dto.DeliveryDetails != nil {
		if err := dd.AssignID(dto.DeliveryDetails.ID); err != nil {
			return err
		}
	}

	return nil
}

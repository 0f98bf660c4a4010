package orderrepo

import (
	"deliverytracking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Migrate creates or updates the table pairs for both order families.
func Migrate(db *gorm.DB) error {
	for _, orderType := range []order.Type{order.TypeNormal, order.TypeCustom} {
		if err := db.Table(ordersTableName(orderType)).AutoMigrate(&OrderDTO{}); err != nil {
			return err
		}
		if err := db.Table(orderItemsTableName(orderType)).AutoMigrate(&ItemDTO{}); err != nil {
			return err
		}
	}

	return nil
}

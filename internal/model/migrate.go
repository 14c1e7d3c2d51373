package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей движка программирования.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Program{},
		&Slot{},
		&Application{},
		&Booking{},
		&Event{},
	)
}

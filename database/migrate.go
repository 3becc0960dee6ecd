package database

import (
	"github.com/yeremiapane/daie-pos/models"
	"github.com/yeremiapane/daie-pos/utils"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Product{},
		&models.Client{},
		&models.Waiter{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Session{},
		&models.SessionOrder{},
		&models.Rating{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		utils.ErrorLogger.WithError(err).Error("AutoMigrate failed")
		return err
	}
	for _, m := range Models() {
		if !db.Migrator().HasTable(m) {
			utils.ErrorLogger.WithField("model", m).Error("table missing after AutoMigrate")
		}
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}

package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncrementCounter adds one to the named counter, creating it at 1 if it
// does not exist, and returns the new value. Increments are atomic at
// the store; concurrent bumps never lose updates.
func IncrementCounter(db *gorm.DB, name string) (int64, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("counters.value + 1")}),
	}).Create(&Counter{Name: name, Value: 1}).Error
	if err != nil {
		return 0, err
	}

	var c Counter
	if err := db.Where("name = ?", name).First(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}

// GetCounter reads the named counter, returning 0 when it does not exist.
func GetCounter(db *gorm.DB, name string) (int64, error) {
	var c Counter
	err := db.Where("name = ?", name).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

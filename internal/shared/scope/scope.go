package scope

import "gorm.io/gorm"

// Owner membatasi query ke baris milik satu employee
func Owner(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

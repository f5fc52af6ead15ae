package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company (organization).
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// TableScope is Scope with a qualified column, for queries that join tables
// which all carry a company_id.
func TableScope(table, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".company_id = ?", companyID)
	}
}

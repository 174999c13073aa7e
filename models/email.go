package models

// Email is a single address owned by exactly one Person. Addresses are never
// shared between people; updating a person's mail list replaces the whole set.
type Email struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID uint   `gorm:"not null;index" json:"person_id"`
	Mail     string `gorm:"not null" json:"mail"`
}

// TableName explicitly sets the table name for GORM.
func (Email) TableName() string {
	return "emails"
}

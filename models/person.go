package models

// Person represents a directory entry in the database using GORM.
// It corresponds to the 'people' table.
type Person struct {
	ID                    uint   `gorm:"primaryKey;autoIncrement" json:"Id"`
	NameSurnamePatronymic string `gorm:"uniqueIndex;not null" json:"NameSurnamePatronymic"`
	Gender                string `json:"Gender"`
	Nationality           string `json:"Nationality"`
	Age                   int    `json:"Age"`

	// Relationships
	Emails []Email `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"emails,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}

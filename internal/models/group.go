package models

// Group represents a named post category
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string `gorm:"type:varchar(200);not null;column:title"`
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex:blog_groups_ux1;column:slug"`
	Description string `gorm:"type:text;not null;default:'';column:description"`

	// Relationships
	Posts []Post `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "blog_groups"
}

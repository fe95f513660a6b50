package models

// Genre is a hierarchical game category. The tree is shallow in practice, so
// a plain parent pointer is enough; no ordering or path materialization.
type Genre struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	ParentID *uint   `gorm:"index" json:"parent_id,omitempty"`
	Children []Genre `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

package models

// Recipe is owned by exactly one user. UserID is set on creation and never changed.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"index;not null" json:"user_id"`
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       Price        `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string       `gorm:"size:255;not null;default:''" json:"link"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}

func (r *Recipe) String() string { return r.Title }

// Tag is a per-user label for filtering recipes. (UserID, Name) is unique.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"-"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_tags_user_name" json:"name"`
}

func (t *Tag) String() string { return t.Name }

// Ingredient has the same shape and uniqueness rule as Tag.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"-"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
}

func (i *Ingredient) String() string { return i.Name }

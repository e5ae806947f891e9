package specification

import (
	"gorm.io/gorm"
)

// ByUserEmail filters tickets by the reporting customer's email
type ByUserEmail struct {
	Email string
}

func (s ByUserEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_email = ?", s.Email)
}

// ByStatusIn filters by a set of lifecycle statuses
type ByStatusIn struct {
	Statuses []string
}

func (s ByStatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

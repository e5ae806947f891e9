package specification

import (
	"strings"

	"gorm.io/gorm"
)

// QuestionEqualsFold matches a question exactly, case-insensitively.
type QuestionEqualsFold struct {
	Question string
}

func (s QuestionEqualsFold) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(question) = LOWER(?)", s.Question)
}

// QuestionContainsAny matches questions containing any of the keywords,
// case-insensitively. An empty keyword list matches nothing.
type QuestionContainsAny struct {
	Keywords []string
}

func (s QuestionContainsAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keywords) == 0 {
		return db.Where("1 = 0")
	}
	conditions := make([]string, len(s.Keywords))
	args := make([]interface{}, len(s.Keywords))
	for i, kw := range s.Keywords {
		conditions[i] = "LOWER(question) LIKE ?"
		args[i] = "%" + strings.ToLower(kw) + "%"
	}
	return db.Where(strings.Join(conditions, " OR "), args...)
}

package repository

import (
	"github.com/trahulprabhu38/major-project-sub000/internal/model"

	"gorm.io/gorm"
)

type MarksRepository struct {
	DB *gorm.DB
}

func NewMarksRepository(db *gorm.DB) *MarksRepository {
	return &MarksRepository{DB: db}
}

// MarksRowFor assembles the per-question sub-part scores for one
// (student, exam). Returns nil when the student has no marks for that exam:
// a missing row is an empty analysis input, not an error.
func (r *MarksRepository) MarksRowFor(usn string, examIndex int) (*model.MarksRow, error) {
	var marks []model.StudentMark
	err := r.DB.Where("usn = ? AND exam_index = ?", usn, examIndex).
		Order("question ASC, part ASC").
		Find(&marks).Error
	if err != nil {
		return nil, err
	}
	if len(marks) == 0 {
		return nil, nil
	}

	row := &model.MarksRow{
		USN:       usn,
		ExamIndex: examIndex,
		Parts:     make(map[int][]*float64),
	}
	for _, m := range marks {
		row.Parts[m.Question] = append(row.Parts[m.Question], m.Score)
	}
	return row, nil
}

// BulkCreate replaces a student's marks for one exam with the given rows.
func (r *MarksRepository) BulkCreate(usn string, examIndex int, marks []model.StudentMark) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("usn = ? AND exam_index = ?", usn, examIndex).
			Delete(&model.StudentMark{}).Error; err != nil {
			return err
		}
		for i := range marks {
			marks[i].USN = usn
			marks[i].ExamIndex = examIndex
			if err := tx.Create(&marks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

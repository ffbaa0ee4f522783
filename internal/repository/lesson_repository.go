package repository

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

var lessonSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"order":     "sort_order",
}

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Course").First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) ListByCourse(courseID uint, q *util.PageQuery) ([]model.Lesson, int64, error) {
	query := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lessons []model.Lesson
	err := query.Order(q.OrderClause(lessonSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&lessons).Error
	return lessons, total, err
}

// CountByCourse 课程下的课时总数，进度计算用，不分页
func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// CountByCourseIDs 按课程聚合课时数，避免列表页逐课程查询
func (r *LessonRepository) CountByCourseIDs(courseIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CourseID uint
		Total    int64
	}
	var rows []row
	err := r.DB.Model(&model.Lesson{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.CourseID] = rw.Total
	}
	return counts, nil
}

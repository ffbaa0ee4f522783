package repository

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

var courseSortColumns = map[string]string{
	"createdAt": "courses.created_at",
	"title":     "courses.title",
	"category":  "courses.category",
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	return &course, err
}

// FindActiveByID 仅返回未下架的课程
func (r *CourseRepository) FindActiveByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").Where("is_active = ?", true).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// ListPublic 公开课程列表：课程未下架且讲师账号未禁用
func (r *CourseRepository) ListPublic(q *util.PageQuery) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).
		Joins("JOIN users ON users.id = courses.instructor_id").
		Where("courses.is_active = ? AND users.is_active = ?", true, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Preload("Instructor").
		Order(q.OrderClause(courseSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint, q *util.PageQuery) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("instructor_id = ?", instructorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Order(q.OrderClause(courseSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("instructor_id = ?", instructorID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) FindRecent(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").Order("created_at DESC").Limit(limit).Find(&courses).Error
	return courses, err
}

// CourseFilter 管理端课程列表过滤条件
type CourseFilter struct {
	Category     string
	IsActive     *bool
	Search       string
	InstructorID uint
}

func (r *CourseRepository) List(q *util.PageQuery, filter CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.InstructorID != 0 {
		query = query.Where("instructor_id = ?", filter.InstructorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Preload("Instructor").
		Order(q.OrderClause(courseSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&courses).Error
	return courses, total, err
}

package repository

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var enrollmentSortColumns = map[string]string{
	"createdAt": "enrollments.created_at",
}

var studentSortColumns = map[string]string{
	"createdAt": "enrollments.created_at",
	"name":      "users.name",
	"email":     "users.email",
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Preload("CompletedLessons").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

// FindByStudentForCourses 查出某学生在一组课程中的选课记录，按课程索引
func (r *EnrollmentRepository) FindByStudentForCourses(studentID uint, courseIDs []uint) (map[uint]*model.Enrollment, error) {
	byCourse := make(map[uint]*model.Enrollment, len(courseIDs))
	if len(courseIDs) == 0 {
		return byCourse, nil
	}

	var enrollments []model.Enrollment
	err := r.DB.Preload("CompletedLessons").
		Where("student_id = ? AND course_id IN ?", studentID, courseIDs).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	for i := range enrollments {
		byCourse[enrollments[i].CourseID] = &enrollments[i]
	}
	return byCourse, nil
}

func (r *EnrollmentRepository) ListByStudent(studentID uint, q *util.PageQuery) ([]model.Enrollment, int64, error) {
	query := r.DB.Model(&model.Enrollment{}).Where("student_id = ?", studentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []model.Enrollment
	err := query.Preload("Course.Instructor").Preload("CompletedLessons").
		Order(q.OrderClause(enrollmentSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&enrollments).Error
	return enrollments, total, err
}

// ListStudentsByCourse 课程学员名册，讲师端使用
func (r *EnrollmentRepository) ListStudentsByCourse(courseID uint, q *util.PageQuery) ([]model.User, int64, error) {
	query := r.DB.Model(&model.Enrollment{}).
		Joins("JOIN users ON users.id = enrollments.student_id").
		Where("enrollments.course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.User
	err := query.Select("users.id, users.created_at, users.updated_at, users.name, users.email, users.role, users.is_active").
		Order(q.OrderClause(studentSortColumns)).
		Offset(q.Offset()).Limit(q.Limit).
		Scan(&students).Error
	return students, total, err
}

// AddCompletion 幂等写入课时完成记录，重复标记由唯一索引吸收
func (r *EnrollmentRepository) AddCompletion(enrollmentID, lessonID uint) error {
	completion := model.LessonCompletion{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error
}

// CountCompletedInCourse 统计选课记录中仍属于该课程的已完成课时数
func (r *EnrollmentRepository) CountCompletedInCourse(enrollmentID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.enrollment_id = ? AND lessons.course_id = ?", enrollmentID, courseID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) FindRecent(limit int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Student").Preload("Course").
		Order("created_at DESC").Limit(limit).
		Find(&enrollments).Error
	return enrollments, err
}

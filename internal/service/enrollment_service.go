package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, lessonRepo *repository.LessonRepository) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
	}
}

// EnrollmentView 选课记录加派生进度
type EnrollmentView struct {
	model.Enrollment
	Progress     int   `json:"progress"`
	TotalLessons int64 `json:"totalLessons"`
}

// Enroll 选课。目标课程必须存在且未下架；重复选课返回校验错误。
// 应用层查重只是为了友好报错，并发下的兜底是 (student_id, course_id) 唯一索引
func (s *EnrollmentService) Enroll(studentID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindActiveByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseInactive
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, course.ID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

// MarkLessonComplete 标记课时完成，重复标记是无错误的空操作
func (s *EnrollmentService) MarkLessonComplete(studentID, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}

	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, lesson.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollmentNotFound
		}
		return err
	}

	return s.EnrollmentRepo.AddCompletion(enrollment.ID, lesson.ID)
}

// ListMine 自己的选课列表，逐条附加进度。父课程已不可解析的记录
// 报告 progress 0 / totalLessons 0 而不是报错
func (s *EnrollmentService) ListMine(studentID uint, q *util.PageQuery) ([]EnrollmentView, int64, error) {
	enrollments, total, err := s.EnrollmentRepo.ListByStudent(studentID, q)
	if err != nil {
		return nil, 0, err
	}

	views := make([]EnrollmentView, len(enrollments))
	for i := range enrollments {
		views[i] = EnrollmentView{Enrollment: enrollments[i]}

		if enrollments[i].Course == nil {
			continue
		}

		totalLessons, err := s.LessonRepo.CountByCourse(enrollments[i].CourseID)
		if err != nil {
			return nil, 0, err
		}
		completed, err := s.EnrollmentRepo.CountCompletedInCourse(enrollments[i].ID, enrollments[i].CourseID)
		if err != nil {
			return nil, 0, err
		}

		views[i].TotalLessons = totalLessons
		views[i].Progress = progressPercent(completed, totalLessons)
	}

	return views, total, nil
}

// ListStudents 课程学员名册，仅课程归属讲师可见
func (s *EnrollmentService) ListStudents(courseID, actorID uint, q *util.PageQuery) ([]model.User, int64, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrCourseNotFound
		}
		return nil, 0, err
	}
	if course.InstructorID != actorID {
		return nil, 0, util.ErrPermissionDenied
	}

	return s.EnrollmentRepo.ListStudentsByCourse(courseID, q)
}

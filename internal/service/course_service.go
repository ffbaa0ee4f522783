package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, lessonRepo *repository.LessonRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type CourseInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
}

type CourseUpdate struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
}

// CourseView 公开课程列表项，带访问者视角的选课与进度信息
type CourseView struct {
	model.Course
	Enrolled bool `json:"enrollment"`
	Progress int  `json:"progress"`
}

func (s *CourseService) Create(instructorID uint, input CourseInput) (*model.Course, error) {
	course := &model.Course{
		InstructorID: instructorID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsActive:     true,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByID(course.ID)
}

// ListPublic 公开课程列表。viewer 为 nil 时每项均为未选课、进度 0
func (s *CourseService) ListPublic(q *util.PageQuery, viewer *model.User) ([]CourseView, int64, error) {
	courses, total, err := s.CourseRepo.ListPublic(q)
	if err != nil {
		return nil, 0, err
	}

	views := make([]CourseView, len(courses))
	for i := range courses {
		views[i] = CourseView{Course: courses[i]}
	}

	if viewer == nil || len(courses) == 0 {
		return views, total, nil
	}

	courseIDs := make([]uint, len(courses))
	for i := range courses {
		courseIDs[i] = courses[i].ID
	}

	enrollments, err := s.EnrollmentRepo.FindByStudentForCourses(viewer.ID, courseIDs)
	if err != nil {
		return nil, 0, err
	}
	lessonCounts, err := s.LessonRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, 0, err
	}

	for i := range views {
		enrollment, ok := enrollments[views[i].ID]
		if !ok {
			continue
		}
		views[i].Enrolled = true

		completed, err := s.EnrollmentRepo.CountCompletedInCourse(enrollment.ID, views[i].ID)
		if err != nil {
			return nil, 0, err
		}
		views[i].Progress = progressPercent(completed, lessonCounts[views[i].ID])
	}

	return views, total, nil
}

// GetByID 只返回未下架课程，ID 不存在或已下架均视为 404
func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// CheckOwnership 课程不存在时返回 ErrCourseNotFound
func (s *CourseService) CheckOwnership(courseID, instructorID uint) (bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrCourseNotFound
		}
		return false, err
	}
	return course.InstructorID == instructorID, nil
}

func (s *CourseService) Update(courseID, actorID uint, update CourseUpdate) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if course.InstructorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	if !course.IsActive {
		return nil, util.ErrCourseNotFound
	}

	if update.Title != "" {
		course.Title = update.Title
	}
	if update.Description != "" {
		course.Description = update.Description
	}
	if update.Category != "" {
		course.Category = update.Category
	}
	if update.ImageURL != "" {
		course.ImageURL = update.ImageURL
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete 软删除：仅翻转 IsActive，课时与选课记录保留父引用
func (s *CourseService) Delete(courseID, actorID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if course.InstructorID != actorID {
		return util.ErrPermissionDenied
	}
	if !course.IsActive {
		return util.ErrCourseNotFound
	}

	course.IsActive = false
	return s.CourseRepo.Update(course)
}

func (s *CourseService) ListByInstructor(instructorID uint, q *util.PageQuery) ([]model.Course, int64, error) {
	return s.CourseRepo.ListByInstructor(instructorID, q)
}

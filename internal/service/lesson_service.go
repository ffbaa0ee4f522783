package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *LessonService {
	return &LessonService{
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type LessonInput struct {
	Title     string
	Content   string
	Order     int
	VideoURL  string
	VideoType model.VideoType
}

type LessonUpdate struct {
	Title     string
	Content   string
	Order     int
	VideoURL  string
	VideoType model.VideoType
}

// LessonView 课时列表项，带访问者视角的完成标记
type LessonView struct {
	model.Lesson
	IsCompleted bool `json:"isCompleted"`
}

// Create 新增课时。要求课程归属于操作者，且提供上传视频或合法外链之一
func (s *LessonService) Create(courseID, actorID uint, input LessonInput) (*model.Lesson, error) {
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

	if input.VideoURL == "" {
		return nil, util.ErrVideoRequired
	}
	if input.VideoType == "" {
		input.VideoType = model.VideoUpload
	}
	if input.VideoType == model.VideoLink && !util.IsValidVideoURL(input.VideoURL) {
		return nil, util.ErrInvalidVideoURL
	}

	lesson := &model.Lesson{
		CourseID:  courseID,
		Title:     input.Title,
		Content:   input.Content,
		Order:     input.Order,
		VideoURL:  input.VideoURL,
		VideoType: input.VideoType,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// ListForCourse 课时列表。viewer 为 nil 时所有课时都报告未完成
func (s *LessonService) ListForCourse(courseID uint, q *util.PageQuery, viewer *model.User) ([]LessonView, int64, error) {
	lessons, total, err := s.LessonRepo.ListByCourse(courseID, q)
	if err != nil {
		return nil, 0, err
	}

	views := make([]LessonView, len(lessons))
	for i := range lessons {
		views[i] = LessonView{Lesson: lessons[i]}
	}

	if viewer == nil {
		return views, total, nil
	}

	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(viewer.ID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return views, total, nil
		}
		return nil, 0, err
	}

	completed := make(map[uint]bool, len(enrollment.CompletedLessons))
	for _, c := range enrollment.CompletedLessons {
		completed[c.LessonID] = true
	}
	for i := range views {
		views[i].IsCompleted = completed[views[i].ID]
	}

	return views, total, nil
}

func (s *LessonService) GetByID(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

// checkOwnership 课时归属沿父课程的讲师推导
func (s *LessonService) checkOwnership(lessonID, actorID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if lesson.Course == nil {
		return nil, util.ErrCourseUnresolvable
	}
	if lesson.Course.InstructorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	return lesson, nil
}

func (s *LessonService) Update(lessonID, actorID uint, update LessonUpdate) (*model.Lesson, error) {
	lesson, err := s.checkOwnership(lessonID, actorID)
	if err != nil {
		return nil, err
	}

	if update.Title != "" {
		lesson.Title = update.Title
	}
	if update.Content != "" {
		lesson.Content = update.Content
	}
	if update.Order != 0 {
		lesson.Order = update.Order
	}
	if update.VideoURL != "" {
		videoType := update.VideoType
		if videoType == "" {
			videoType = lesson.VideoType
		}
		if videoType == model.VideoLink && !util.IsValidVideoURL(update.VideoURL) {
			return nil, util.ErrInvalidVideoURL
		}
		lesson.VideoURL = update.VideoURL
		lesson.VideoType = videoType
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(lessonID, actorID uint) error {
	lesson, err := s.checkOwnership(lessonID, actorID)
	if err != nil {
		return err
	}
	return s.LessonRepo.Delete(lesson.ID)
}

// CountForCourse 进度计算的分母，不分页
func (s *LessonService) CountForCourse(courseID uint) (int64, error) {
	return s.LessonRepo.CountByCourse(courseID)
}

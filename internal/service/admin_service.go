package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AdminService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAdminService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *AdminService {
	return &AdminService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type DashboardStats struct {
	TotalStudents    int64 `json:"totalStudents"`
	TotalInstructors int64 `json:"totalInstructors"`
	TotalCourses     int64 `json:"totalCourses"`
	TotalEnrollments int64 `json:"totalEnrollments"`
}

type RecentActivity struct {
	RecentUsers       []model.User       `json:"recentUsers"`
	RecentCourses     []model.Course     `json:"recentCourses"`
	RecentEnrollments []model.Enrollment `json:"recentEnrollments"`
}

// UserDetail 用户详情加使用统计
type UserDetail struct {
	model.User
	Stats UserStats `json:"stats"`
}

type UserStats struct {
	Enrollments    int64 `json:"enrollments"`
	CoursesCreated int64 `json:"coursesCreated"`
}

// AdminCourseView 管理端课程列表项，带选课人数
type AdminCourseView struct {
	model.Course
	EnrollmentCount int64 `json:"enrollmentCount"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalStudents, err = s.UserRepo.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if stats.TotalInstructors, err = s.UserRepo.CountByRole(model.Instructor); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = s.CourseRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalEnrollments, err = s.EnrollmentRepo.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) GetRecentActivities(limit int) (*RecentActivity, error) {
	activity := &RecentActivity{}
	var err error

	if activity.RecentUsers, err = s.UserRepo.FindRecent(limit); err != nil {
		return nil, err
	}
	if activity.RecentCourses, err = s.CourseRepo.FindRecent(limit); err != nil {
		return nil, err
	}
	if activity.RecentEnrollments, err = s.EnrollmentRepo.FindRecent(limit); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *AdminService) ListUsers(q *util.PageQuery, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.UserRepo.List(q, filter)
}

func (s *AdminService) GetUser(userID uint) (*UserDetail, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	enrollments, err := s.EnrollmentRepo.CountByStudent(userID)
	if err != nil {
		return nil, err
	}
	coursesCreated, err := s.CourseRepo.CountByInstructor(userID)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User: *user,
		Stats: UserStats{
			Enrollments:    enrollments,
			CoursesCreated: coursesCreated,
		},
	}, nil
}

// ToggleUserStatus 启用/禁用账号，当前设计不做物理删除
func (s *AdminService) ToggleUserStatus(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) ListCourses(q *util.PageQuery, filter repository.CourseFilter) ([]AdminCourseView, int64, error) {
	courses, total, err := s.CourseRepo.List(q, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]AdminCourseView, len(courses))
	for i := range courses {
		count, err := s.EnrollmentRepo.CountByCourse(courses[i].ID)
		if err != nil {
			return nil, 0, err
		}
		views[i] = AdminCourseView{Course: courses[i], EnrollmentCount: count}
	}
	return views, total, nil
}

func (s *AdminService) GetCourse(courseID uint) (*AdminCourseView, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	count, err := s.EnrollmentRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return &AdminCourseView{Course: *course, EnrollmentCount: count}, nil
}

func (s *AdminService) ToggleCourseStatus(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.IsActive = !course.IsActive
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseInactive     = errors.New("course not found or is inactive")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrEnrollmentNotFound = errors.New("you are not enrolled in this course")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseUnresolvable = errors.New("server error: could not resolve course")
	ErrVideoRequired      = errors.New("a lesson video upload or link is required")
	ErrInvalidVideoURL    = errors.New("video url is not valid or not from an allowed provider")
)

package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLessonRequiresVideo(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	course := env.createCourse(t, instructor.ID)

	_, err := env.lesson.Create(course.ID, instructor.ID, LessonInput{
		Title:   "无视频课时",
		Content: "text",
	})
	assert.ErrorIs(t, err, util.ErrVideoRequired)
}

func TestCreateLessonRejectsBadVideoLink(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	course := env.createCourse(t, instructor.ID)

	_, err := env.lesson.Create(course.ID, instructor.ID, LessonInput{
		Title:     "课时",
		Content:   "text",
		VideoURL:  "https://evilyoutube.com.attacker.net/watch",
		VideoType: model.VideoLink,
	})
	assert.ErrorIs(t, err, util.ErrInvalidVideoURL)

	// 上传类型不做域名校验
	lesson, err := env.lesson.Create(course.ID, instructor.ID, LessonInput{
		Title:     "课时",
		Content:   "text",
		VideoURL:  "/uploads/videos/abc.mp4",
		VideoType: model.VideoUpload,
	})
	require.NoError(t, err)
	assert.Equal(t, model.VideoUpload, lesson.VideoType)
}

func TestCreateLessonOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", model.Instructor)
	other := env.createUser(t, "other@example.com", model.Instructor)
	course := env.createCourse(t, owner.ID)

	_, err := env.lesson.Create(course.ID, other.ID, LessonInput{
		Title:     "课时",
		Content:   "text",
		VideoURL:  "https://youtube.com/watch?v=abc",
		VideoType: model.VideoLink,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.lesson.Create(9999, owner.ID, LessonInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListForCourseCompletionFlags(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	student := env.createUser(t, "student@example.com", model.Student)
	course := env.createCourse(t, instructor.ID)

	first := env.createLesson(t, course.ID, instructor.ID, 1)
	env.createLesson(t, course.ID, instructor.ID, 2)

	_, err := env.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, env.enrollment.MarkLessonComplete(student.ID, first.ID))

	q := &util.PageQuery{Page: 1, Limit: 10, SortBy: "order", SortOrder: "asc"}

	// 匿名访问者所有课时未完成
	views, total, err := env.lesson.ListForCourse(course.ID, q, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, v := range views {
		assert.False(t, v.IsCompleted)
	}

	// 已选课学生看到自己的完成标记
	views, _, err = env.lesson.ListForCourse(course.ID, q, student)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].IsCompleted)
	assert.False(t, views[1].IsCompleted)
}

func TestUpdateLessonValidatesNewLink(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	other := env.createUser(t, "other@example.com", model.Instructor)
	course := env.createCourse(t, instructor.ID)
	lesson := env.createLesson(t, course.ID, instructor.ID, 1)

	_, err := env.lesson.Update(lesson.ID, other.ID, LessonUpdate{Title: "Hijacked"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.lesson.Update(lesson.ID, instructor.ID, LessonUpdate{
		VideoURL: "https://example.com/video.mp4",
	})
	assert.ErrorIs(t, err, util.ErrInvalidVideoURL)

	updated, err := env.lesson.Update(lesson.ID, instructor.ID, LessonUpdate{
		VideoURL: "https://vimeo.com/123",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://vimeo.com/123", updated.VideoURL)
}

func TestDeleteLesson(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	course := env.createCourse(t, instructor.ID)
	lesson := env.createLesson(t, course.ID, instructor.ID, 1)

	require.NoError(t, env.lesson.Delete(lesson.ID, instructor.ID))

	_, err := env.lesson.GetByID(lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	assert.ErrorIs(t, env.lesson.Delete(9999, instructor.ID), util.ErrLessonNotFound)
}

package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPage() *util.PageQuery {
	return &util.PageQuery{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "desc"}
}

func TestListPublicAnonymous(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	env.createCourse(t, instructor.ID)

	views, total, err := env.course.ListPublic(defaultPage(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)

	// 匿名访问者：未选课、进度 0
	assert.False(t, views[0].Enrolled)
	assert.Equal(t, 0, views[0].Progress)
	require.NotNil(t, views[0].Instructor)
	assert.Equal(t, instructor.ID, views[0].Instructor.ID)
}

func TestListPublicEnrolledViewer(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	student := env.createUser(t, "student@example.com", model.Student)
	course := env.createCourse(t, instructor.ID)

	lessons := make([]*model.Lesson, 4)
	for i := range lessons {
		lessons[i] = env.createLesson(t, course.ID, instructor.ID, i+1)
	}

	_, err := env.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, env.enrollment.MarkLessonComplete(student.ID, lessons[i].ID))
	}

	views, _, err := env.course.ListPublic(defaultPage(), student)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Enrolled)
	assert.Equal(t, 75, views[0].Progress)
}

func TestListPublicExcludesInactive(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher@example.com", model.Instructor)
	course := env.createCourse(t, instructor.ID)

	require.NoError(t, env.course.Delete(course.ID, instructor.ID))

	views, total, err := env.course.ListPublic(defaultPage(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, views)

	// 详情接口同样按 404 处理
	_, err = env.course.GetByID(course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateCourseOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", model.Instructor)
	other := env.createUser(t, "other@example.com", model.Instructor)
	course := env.createCourse(t, owner.ID)

	_, err := env.course.Update(course.ID, other.ID, CourseUpdate{Title: "Hijacked"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := env.course.Update(course.ID, owner.ID, CourseUpdate{Title: "Go 进阶"})
	require.NoError(t, err)
	assert.Equal(t, "Go 进阶", updated.Title)
	// 未提供的字段保持不变
	assert.Equal(t, "programming", updated.Category)
}

func TestDeleteCourseIsSoft(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", model.Instructor)
	other := env.createUser(t, "other@example.com", model.Instructor)
	course := env.createCourse(t, owner.ID)

	assert.ErrorIs(t, env.course.Delete(course.ID, other.ID), util.ErrPermissionDenied)
	require.NoError(t, env.course.Delete(course.ID, owner.ID))

	// 记录还在，只是下架
	stored, err := env.courses.FindByID(course.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// 再次删除已下架课程视为不存在
	assert.ErrorIs(t, env.course.Delete(course.ID, owner.ID), util.ErrCourseNotFound)
}

func TestCheckOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", model.Instructor)
	course := env.createCourse(t, owner.ID)

	ok, err := env.course.CheckOwnership(course.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.course.CheckOwnership(course.ID, owner.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.course.CheckOwnership(9999, owner.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

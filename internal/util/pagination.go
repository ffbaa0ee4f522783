package util

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery 经过校验的分页参数
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// PageMeta 分页导航元数据
type PageMeta struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	NextPage     *int `json:"nextPage"`
	PrevPage     *int `json:"prevPage"`
}

// ParsePagination 解析并校验 page/limit/sortBy/sortOrder 查询参数
func ParsePagination(c *gin.Context) (*PageQuery, error) {
	q := &PageQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, errors.New("Page must be a positive integer")
		}
		q.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return nil, errors.New("Limit must be between 1 and 100")
		}
		q.Limit = limit
	}

	if raw := c.Query("sortBy"); raw != "" {
		q.SortBy = raw
	}

	if raw := c.Query("sortOrder"); raw != "" {
		if raw != "asc" && raw != "desc" {
			return nil, errors.New(`Sort order must be either "asc" or "desc"`)
		}
		q.SortOrder = raw
	}

	return q, nil
}

// Offset 返回跳过的行数
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// OrderClause 将 sortBy 映射到允许的列名，未知字段回退到 created_at，
// 防止把用户输入拼进 ORDER BY
func (q *PageQuery) OrderClause(columns map[string]string) string {
	col, ok := columns[q.SortBy]
	if !ok {
		if def, exists := columns["createdAt"]; exists {
			col = def
		} else {
			col = "created_at"
		}
	}
	return col + " " + q.SortOrder
}

// NewPageMeta 由总条数计算导航元数据
func NewPageMeta(q *PageQuery, totalItems int64) *PageMeta {
	totalPages := int((totalItems + int64(q.Limit) - 1) / int64(q.Limit))

	meta := &PageMeta{
		CurrentPage:  q.Page,
		TotalPages:   totalPages,
		TotalItems:   int(totalItems),
		ItemsPerPage: q.Limit,
		HasNextPage:  q.Page < totalPages,
		HasPrevPage:  q.Page > 1,
	}

	if meta.HasNextPage {
		next := q.Page + 1
		meta.NextPage = &next
	}
	if meta.HasPrevPage {
		prev := q.Page - 1
		meta.PrevPage = &prev
	}

	return meta
}

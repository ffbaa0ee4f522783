package service

import "math"

// progressPercent 完成度百分比，四舍五入；课程没有课时一律算 0
func progressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

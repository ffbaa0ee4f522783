package util

import (
	"net/url"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AllowedVideoHosts 允许的外链视频域名
var AllowedVideoHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"wistia.com",
	"cloudinary.com",
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword 校验密码强度，失败时返回原因
func ValidatePassword(password string) (bool, string) {
	if len(password) < 6 {
		return false, "Password must be at least 6 characters long"
	}
	return true, ""
}

// MissingFields 返回 data 中缺失（为空）的必填字段名
func MissingFields(data map[string]string, required []string) []string {
	var missing []string
	for _, field := range required {
		if data[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsValidURL 校验绝对 http/https 地址
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidVideoURL 校验外链视频地址。域名按精确匹配或点分后缀匹配，
// 子串匹配会被 evilyoutube.com.attacker.net 这类域名绕过
func IsValidVideoURL(raw string) bool {
	if !IsValidURL(raw) {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())

	for _, allowed := range AllowedVideoHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var tagRegex = regexp.MustCompile(`#(\S+)`)

// ExtractTags 从文案中提取去重后的话题列表（统一小写）
func ExtractTags(rawContent string) []string {
	matches := tagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	tags := make([]string, 0, len(matches))

	for _, m := range matches {
		if len(m) > 1 {
			tagName := strings.ToLower(strings.Trim(m[1], ".,，。!?！？#"))

			if tagName != "" {
				if _, exists := tagSet[tagName]; !exists {
					tagSet[tagName] = struct{}{}
					tags = append(tags, tagName)
				}
			}
		}
	}

	return tags
}

// MergeTags 合并两组话题并去重，保持首次出现的顺序
func MergeTags(groups ...[]string) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, g := range groups {
		for _, t := range g {
			t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			res = append(res, t)
		}
	}
	return res
}

// GetMidnight 返回 t 所在 UTC 日的零点
func GetMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay 返回 t 所在 UTC 日的最后一纳秒
func EndOfDay(t time.Time) time.Time {
	return GetMidnight(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WindowStart 返回最近 days 天窗口的起点（含今天）
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 1
	}
	return GetMidnight(now).AddDate(0, 0, -(days - 1))
}

// StrSliceToUInt64Slice 将字符串切片转换为 uint64 切片，支持逗号分隔
func StrSliceToUInt64Slice(values []string) ([]uint64, error) {
	res := make([]uint64, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, err
			}
			res = append(res, id)
		}
	}
	return res, nil
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// PtrFloat32 用于将 float32 转换为 *float32
func PtrFloat32(f float32) *float32 {
	return &f
}

package service

import (
	"SocialPulse/internal/model"
	"time"
)

// SlotOf 帖子所属的 (小时, 星期) 槽位，按 UTC 计算，周一为 0
func SlotOf(t time.Time) (hour int, day int) {
	t = t.UTC()
	return t.Hour(), (int(t.Weekday()) + 6) % 7
}

// FoldMetric 把一条快照增量并入滚动均值，不回看历史
func FoldMetric(p *model.EngagementPattern, m *model.PostMetric) {
	n := float64(p.PostCount)
	p.AvgEngagementRate = (p.AvgEngagementRate*n + m.EngagementRate) / (n + 1)
	p.AvgLikes = (p.AvgLikes*n + float64(m.LikesCount)) / (n + 1)
	p.AvgComments = (p.AvgComments*n + float64(m.CommentsCount)) / (n + 1)
	p.AvgShares = (p.AvgShares*n + float64(m.SharesCount)) / (n + 1)
	p.PostCount++
}

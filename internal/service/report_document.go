package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/report"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

const reportSlots = 10

func f2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func i64(v int64) string {
	return strconv.FormatInt(v, 10)
}

func reportQuery(f model.ReportFilters) *dto.AnalyticsQuery {
	return &dto.AnalyticsQuery{
		Days:        f.Days,
		ContentType: f.ContentType,
		Platform:    f.Platform,
		AccountID:   f.AccountID,
		HashtagID:   f.HashtagID,
	}
}

func filterLabels(f model.ReportFilters) map[string]string {
	res := make(map[string]string)
	if f.Days > 0 {
		res["days"] = strconv.Itoa(f.Days)
	}
	if f.AccountID != nil {
		res["account_id"] = strconv.FormatUint(*f.AccountID, 10)
	}
	if f.Platform != "" {
		res["platform"] = f.Platform
	}
	if f.ContentType != "" {
		res["content_type"] = f.ContentType
	}
	if f.HashtagID != nil {
		res["hashtag_id"] = strconv.FormatUint(*f.HashtagID, 10)
	}
	return res
}

func contentTypeSection(stats []*dto.ContentTypeStatDTO) report.Section {
	sec := report.Section{
		Name:    "Content types",
		Columns: []string{"content_type", "posts", "avg_engagement_rate", "avg_likes", "avg_comments", "avg_shares", "total_likes"},
	}
	for _, s := range stats {
		sec.Rows = append(sec.Rows, []string{s.ContentType, i64(s.Count), f2(s.AvgEngagementRate), f2(s.AvgLikes), f2(s.AvgComments), f2(s.AvgShares), i64(s.TotalLikes)})
	}
	return sec
}

func topPostsSection(posts []*dto.PostPerformanceDTO) report.Section {
	sec := report.Section{
		Name:    "Top posts",
		Columns: []string{"rank", "post_id", "content_type", "posted_at", "engagement_rate", "likes", "comments", "shares"},
	}
	for _, p := range posts {
		sec.Rows = append(sec.Rows, []string{strconv.Itoa(p.Rank), p.ExternalID, p.ContentType, p.PostedAt.UTC().Format(time.DateOnly), f2(p.EngagementRate), i64(p.LikesCount), i64(p.CommentsCount), i64(p.SharesCount)})
	}
	return sec
}

func timelineSection(points []*dto.TimelinePointDTO) report.Section {
	sec := report.Section{
		Name:    "Daily timeline",
		Columns: []string{"date", "posts", "likes", "comments", "shares", "avg_engagement_rate"},
	}
	for _, p := range points {
		sec.Rows = append(sec.Rows, []string{p.Date, i64(p.PostsCount), i64(p.TotalLikes), i64(p.TotalComments), i64(p.TotalShares), f2(p.AvgEngagementRate)})
	}
	return sec
}

func patternSection(patterns []*dto.EngagementPatternDTO) report.Section {
	sec := report.Section{
		Name:    "Best posting times",
		Columns: []string{"day", "hour", "avg_engagement_rate", "posts"},
	}
	for _, p := range patterns {
		sec.Rows = append(sec.Rows, []string{p.DayName, strconv.Itoa(p.HourOfDay), f2(p.AvgEngagementRate), i64(p.PostCount)})
	}
	return sec
}

func sentimentSection(s *dto.SentimentDTO) report.Section {
	return report.Section{
		Name:    "Comment sentiment",
		Columns: []string{"bucket", "comments", "percent"},
		Rows: [][]string{
			{"positive", i64(s.Positive), f2(s.PositivePercent)},
			{"neutral", i64(s.Neutral), f2(s.NeutralPercent)},
			{"negative", i64(s.Negative), f2(s.NegativePercent)},
		},
	}
}

func hashtagSection(tags []*dto.TrendingHashtagDTO) report.Section {
	sec := report.Section{
		Name:    "Trending hashtags",
		Columns: []string{"tag", "usage_count", "avg_engagement_rate"},
	}
	for _, t := range tags {
		sec.Rows = append(sec.Rows, []string{"#" + t.Tag, i64(t.UsageCount), f2(t.AvgEngagementRate)})
	}
	return sec
}

func demographicsSection(d *dto.DemographicsDTO) report.Section {
	sec := report.Section{
		Name:    "Demographics",
		Columns: []string{"dimension", "bucket", "share"},
	}
	if d == nil {
		return sec
	}
	appendSorted := func(dimension string, m map[string]float64) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sec.Rows = append(sec.Rows, []string{dimension, k, f2(m[k])})
		}
	}
	appendSorted("age", d.AgeDistribution)
	appendSorted("gender", d.Gender)
	for _, c := range d.TopCountries {
		sec.Rows = append(sec.Rows, []string{"country", c.Name, f2(c.Share)})
	}
	for _, c := range d.TopCities {
		sec.Rows = append(sec.Rows, []string{"city", c.Name, f2(c.Share)})
	}
	return sec
}

func growthSection(points []*dto.GrowthPointDTO) report.Section {
	sec := report.Section{
		Name:    "Follower growth",
		Columns: []string{"date", "followers", "following", "change"},
	}
	for _, p := range points {
		sec.Rows = append(sec.Rows, []string{p.Date, i64(p.FollowersCount), i64(p.FollowingCount), i64(p.Change)})
	}
	return sec
}

func competitorSection(items []*dto.CompetitorComparisonDTO) report.Section {
	sec := report.Section{
		Name:    "Competitors",
		Columns: []string{"platform", "username", "followers", "posts", "avg_engagement_rate", "recorded_at"},
	}
	for _, it := range items {
		row := []string{it.Competitor.Platform, it.Competitor.AccountUsername, "", "", "", ""}
		if m := it.LatestMetrics; m != nil {
			row[2], row[3], row[4], row[5] = i64(m.FollowersCount), i64(m.PostsCount), f2(m.AvgEngagementRate), m.RecordedAt.UTC().Format(time.DateOnly)
		}
		sec.Rows = append(sec.Rows, row)
	}
	return sec
}

// buildDocument 按报告类型组装各个章节
func (s *reportServiceImpl) buildDocument(ctx context.Context, rep *model.Report) (*report.Document, error) {
	q := reportQuery(rep.Filters)
	doc := &report.Document{
		Title:       rep.Title,
		ReportType:  rep.ReportType,
		GeneratedAt: nowFunc().UTC(),
		Filters:     filterLabels(rep.Filters),
		Summary:     map[string]any{},
	}
	if rep.Description != nil {
		doc.Description = *rep.Description
	}

	performance := func() error {
		types, err := s.postSvc.ContentComparison(ctx, rep.UserID, q)
		if err != nil {
			return err
		}
		top, err := s.postSvc.TopPerforming(ctx, rep.UserID, q)
		if err != nil {
			return err
		}
		timeline, err := s.postSvc.Timeline(ctx, rep.UserID, q)
		if err != nil {
			return err
		}
		var posts int64
		for _, t := range types {
			posts += t.Count
		}
		doc.Summary["posts"] = posts
		doc.Sections = append(doc.Sections, contentTypeSection(types), topPostsSection(top), timelineSection(timeline))
		return nil
	}
	engagement := func() error {
		timeline, err := s.postSvc.Timeline(ctx, rep.UserID, q)
		if err != nil {
			return err
		}
		patterns, err := s.patternSvc.OptimalTimes(ctx, rep.UserID, &dto.PatternQuery{AccountID: q.AccountID, Limit: reportSlots})
		if err != nil {
			return err
		}
		sentiment, err := s.commentSvc.Sentiment(ctx, rep.UserID, &dto.SentimentQuery{Days: q.Days})
		if err != nil {
			return err
		}
		doc.Summary["average_sentiment"] = sentiment.AverageSentiment
		doc.Sections = append(doc.Sections, timelineSection(timeline), patternSection(patterns), sentimentSection(sentiment))
		return nil
	}
	audience := func() error {
		demo, err := s.audienceSvc.Demographics(ctx, rep.UserID, q.AccountID)
		if err != nil && !errors.Is(err, ErrAudienceNotFound) {
			return err
		}
		growth, err := s.audienceSvc.GrowthTrend(ctx, rep.UserID, &dto.AudienceQuery{AccountID: q.AccountID, Days: q.Days})
		if err != nil {
			return err
		}
		if demo != nil {
			doc.Summary["followers"] = demo.FollowersCount
		}
		doc.Sections = append(doc.Sections, demographicsSection(demo), growthSection(growth))
		return nil
	}
	content := func() error {
		types, err := s.postSvc.ContentComparison(ctx, rep.UserID, q)
		if err != nil {
			return err
		}
		tags, err := s.hashtagSvc.Trending(ctx, rep.UserID, &dto.TrendingQuery{Days: q.Days})
		if err != nil {
			return err
		}
		doc.Sections = append(doc.Sections, contentTypeSection(types), hashtagSection(tags))
		return nil
	}
	comparative := func() error {
		list, err := s.competitorSvc.ListCompetitors(ctx, rep.UserID, &dto.CompetitorListQuery{Platform: q.Platform})
		if err != nil {
			return err
		}
		ids := make([]uint64, 0, len(list))
		for _, c := range list {
			ids = append(ids, c.ID)
		}
		items := make([]*dto.CompetitorComparisonDTO, 0)
		if len(ids) > 0 {
			items, err = s.competitorSvc.Comparison(ctx, rep.UserID, ids)
			if err != nil {
				return err
			}
		}
		doc.Summary["competitors"] = len(items)
		doc.Sections = append(doc.Sections, competitorSection(items))
		return nil
	}

	var steps []func() error
	switch rep.ReportType {
	case consts.ReportPerformance:
		steps = []func() error{performance}
	case consts.ReportEngagement:
		steps = []func() error{engagement}
	case consts.ReportAudience:
		steps = []func() error{audience}
	case consts.ReportContent:
		steps = []func() error{content}
	case consts.ReportComparative:
		steps = []func() error{comparative}
	case consts.ReportCustom:
		steps = []func() error{performance, engagement, audience}
	default:
		return nil, fmt.Errorf("unknown report type %q", rep.ReportType)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

package sources

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// 기업마당 지원사업 RSS. Public feed, no API key involved; the source is
// controlled purely by its configuration file.
const (
	bizinfoEndpoint      = "https://www.bizinfo.go.kr/uss/rss/bizinfoApi.do"
	bizinfoSource        = "기업마당(RSS)"
	bizinfoDefaultAgency = "중소벤처기업부"
)

type BizinfoAdapter struct {
	client    *http.Client
	endpoint  string
	userAgent string
	settings  config.SourceSettings
	parser    *gofeed.Parser
}

func NewBizinfoAdapter(client *http.Client, userAgent string, settings config.SourceSettings) *BizinfoAdapter {
	return &BizinfoAdapter{
		client:    client,
		endpoint:  bizinfoEndpoint,
		userAgent: userAgent,
		settings:  settings,
		parser:    gofeed.NewParser(),
	}
}

func (a *BizinfoAdapter) Name() string { return "bizinfo" }

func (a *BizinfoAdapter) Fetch(ctx context.Context) []notice.Notice {
	if !a.settings.Enabled {
		slog.Debug("Source disabled via configuration", "source", a.Name())
		return nil
	}

	data, _, err := fetchBody(ctx, a.client, a.endpoint, a.userAgent, a.settings.GetTimeout())
	if err != nil {
		slog.Warn("Fetch failed", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	feed, err := a.parser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to parse feed", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	now := time.Now()
	notices := make([]notice.Notice, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		startDate := ""
		if item.PublishedParsed != nil {
			startDate = item.PublishedParsed.Format("2006-01-02")
		}
		if startDate == "" {
			startDate = notice.Today()
		}

		agency := bizinfoDefaultAgency
		if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
			agency = strings.TrimSpace(item.Author.Name)
		}

		category := "지원사업"
		if len(item.Categories) > 0 && item.Categories[0] != "" {
			category = item.Categories[0]
		}

		link := item.Link
		if link == "" {
			link = notice.BizinfoSearchURL(title)
		}

		description := strings.TrimSpace(item.Description)
		if description == "" {
			description = "기업마당을 통해 수집된 공고입니다."
		}

		notices = append(notices, notice.Notice{
			ID:          notice.StableID(link),
			Title:       title,
			Agency:      agency,
			StartDate:   startDate,
			EndDate:     "",
			Region:      "전국",
			Category:    category,
			URL:         link,
			Source:      bizinfoSource,
			Description: description,
			FetchedAt:   now,
		})
	}

	slog.Info("Fetched notices", "source", a.Name(), "count", len(notices))
	return notices
}

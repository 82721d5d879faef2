package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// 한국콘텐츠진흥원 지원사업 공고 (KOCCA PIMS API, JSON)
const (
	koccaEndpoint = "https://kocca.kr/api/pims/List.do"
	koccaSource   = "한국콘텐츠진흥원(API)"
	koccaAgency   = "한국콘텐츠진흥원"
)

type KoccaAdapter struct {
	client     *http.Client
	endpoint   string
	serviceKey string
	userAgent  string
	settings   config.SourceSettings
}

func NewKoccaAdapter(client *http.Client, serviceKey, userAgent string, settings config.SourceSettings) *KoccaAdapter {
	return &KoccaAdapter{
		client:     client,
		endpoint:   koccaEndpoint,
		serviceKey: serviceKey,
		userAgent:  userAgent,
		settings:   settings,
	}
}

func (a *KoccaAdapter) Name() string { return "kocca" }

func (a *KoccaAdapter) Fetch(ctx context.Context) []notice.Notice {
	if a.serviceKey == "" {
		slog.Debug("Source disabled: no API key configured", "source", a.Name())
		return nil
	}
	if !a.settings.Enabled {
		slog.Debug("Source disabled via configuration", "source", a.Name())
		return nil
	}

	query := fmt.Sprintf("serviceKey=%s&pageNo=%d&numOfRows=%d",
		a.serviceKey, a.settings.PageNo, a.settings.GetNumRows(100))

	data, contentType, err := fetchBody(ctx, a.client, a.endpoint+"?"+query, a.userAgent, a.settings.GetTimeout())
	if err != nil {
		slog.Warn("Fetch failed", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}
	data = decodeKorean(data, contentType)

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		slog.Warn("Failed to parse response", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	// The result list moved between API versions: top-level "list" first,
	// then nested under the "INFO" wrapper. Non-array means zero items.
	list := jsonList(payload, "list")
	if list == nil {
		list = jsonList(jsonObject(payload, "INFO"), "list")
	}

	now := time.Now()
	notices := make([]notice.Notice, 0, len(list))
	for _, raw := range list {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		title := strings.TrimSpace(jsonString(item, "title"))
		if title == "" {
			continue
		}

		startDate := notice.NormalizeDate(jsonString(item, "startDt"))
		if startDate == "" {
			startDate = notice.Today()
		}
		endDate := notice.NormalizeDate(jsonString(item, "endDt"))

		category := jsonString(item, "cate")
		if category == "" {
			category = "콘텐츠지원"
		}

		link := jsonString(item, "link")
		if link == "" {
			link = "https://www.kocca.kr/kocca/pims/list.do?searchKeyword=" + url.QueryEscape(title)
		}

		board := jsonString(item, "boardTitle")
		if board == "" {
			board = "지원사업"
		}

		notices = append(notices, notice.Notice{
			ID:          notice.StableID(link),
			Title:       title,
			Agency:      koccaAgency,
			StartDate:   startDate,
			EndDate:     endDate,
			Region:      "전국", // KOCCA programs are national
			Category:    category,
			URL:         link,
			Source:      koccaSource,
			Description: fmt.Sprintf("%s 공고입니다.", board),
			FetchedAt:   now,
		})
	}

	slog.Info("Fetched notices", "source", a.Name(), "count", len(notices))
	return notices
}

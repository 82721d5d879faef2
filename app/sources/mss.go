package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// 중소벤처기업부 지원사업 공고 (data.go.kr OpenAPI, XML)
const (
	mssEndpoint      = "http://apis.data.go.kr/1421000/mssBizService_v2/getbizList_v2"
	mssSource        = "중소벤처기업부(API)"
	mssDefaultAgency = "중소벤처기업부"
)

type MSSAdapter struct {
	client     *http.Client
	endpoint   string
	serviceKey string
	userAgent  string
	settings   config.SourceSettings
}

func NewMSSAdapter(client *http.Client, serviceKey, userAgent string, settings config.SourceSettings) *MSSAdapter {
	return &MSSAdapter{
		client:     client,
		endpoint:   mssEndpoint,
		serviceKey: serviceKey,
		userAgent:  userAgent,
		settings:   settings,
	}
}

func (a *MSSAdapter) Name() string { return "mss" }

func (a *MSSAdapter) Fetch(ctx context.Context) []notice.Notice {
	if a.serviceKey == "" {
		slog.Debug("Source disabled: no API key configured", "source", a.Name())
		return nil
	}
	if !a.settings.Enabled {
		slog.Debug("Source disabled via configuration", "source", a.Name())
		return nil
	}

	// Service keys from data.go.kr arrive pre-encoded; building the query
	// by hand avoids double-encoding them.
	query := fmt.Sprintf("serviceKey=%s&pageNo=%d&numOfRows=%d",
		a.serviceKey, a.settings.PageNo, a.settings.GetNumRows(500))

	data, _, err := fetchBody(ctx, a.client, a.endpoint+"?"+query, a.userAgent, a.settings.GetTimeout())
	if err != nil {
		slog.Warn("Fetch failed", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	header, items, err := parseXMLItems(data)
	if err != nil {
		slog.Warn("Failed to parse response", "source", a.Name(), "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}
	if !resultOK(header) {
		slog.Warn("Upstream returned error result", "source", a.Name(),
			"code", pick(header, "resultCode", "returnReasonCode"),
			"message", pick(header, "resultMsg", "returnAuthMsg"))
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	now := time.Now()
	notices := make([]notice.Notice, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(pick(item, "sj", "title", "bizNm"))
		if title == "" {
			// No placeholder titles: untitled items are dropped.
			continue
		}

		agency := strings.TrimSpace(pick(item, "dept", "writer"))
		if agency == "" {
			agency = mssDefaultAgency
		}

		startDate := notice.NormalizeDate(pick(item, "regDt", "writngDt"))
		if startDate == "" {
			startDate = notice.Today()
		}

		link := pick(item, "url", "link")
		if link == "" {
			link = notice.BizinfoSearchURL(title)
		}

		notices = append(notices, notice.Notice{
			ID:          notice.StableID(link),
			Title:       title,
			Agency:      agency,
			StartDate:   startDate,
			EndDate:     "",
			Region:      "전국", // API has no regional breakdown
			Category:    "지원사업",
			URL:         link,
			Source:      mssSource,
			Description: "공공데이터포털(중소벤처기업부)을 통해 수집된 공고입니다.",
			FetchedAt:   now,
		})
	}

	slog.Info("Fetched notices", "source", a.Name(), "count", len(notices))
	return notices
}

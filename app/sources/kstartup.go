package sources

import (
	"context"
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

// K-Startup 창업지원 공고 (창업진흥원 OpenAPI, XML)
const (
	kstartupEndpoint      = "http://apis.data.go.kr/B552735/kisedKstartupService01/getAnnouncementList"
	kstartupSource        = "K-Startup(API)"
	kstartupDefaultAgency = "창업진흥원"
)

type KStartupAdapter struct {
	client     *http.Client
	endpoint   string
	serviceKey string
	userAgent  string
	settings   config.SourceSettings
}

func NewKStartupAdapter(client *http.Client, serviceKey, userAgent string, settings config.SourceSettings) *KStartupAdapter {
	return &KStartupAdapter{
		client:     client,
		endpoint:   kstartupEndpoint,
		serviceKey: serviceKey,
		userAgent:  userAgent,
		settings:   settings,
	}
}

func (a *KStartupAdapter) Name() string { return "kstartup" }

func (a *KStartupAdapter) Fetch(ctx context.Context) []notice.Notice {
	if a.serviceKey == "" {
		slog.Debug("Source disabled: no API key configured", "source", a.Name())
		return nil
	}
	if !a.settings.Enabled {
		slog.Debug("Source disabled via configuration", "source", a.Name())
		return nil
	}

	query := fmt.Sprintf("serviceKey=%s&pageNo=%d&numOfRows=%d",
		a.serviceKey, a.settings.PageNo, a.settings.GetNumRows(300))

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
			"code", pick(header, "resultCode", "returnReasonCode"))
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	now := time.Now()
	notices := make([]notice.Notice, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(pick(item, "bizNm", "title"))
		if title == "" {
			continue
		}

		agency := strings.TrimSpace(pick(item, "orgNm", "supportAgency"))
		if agency == "" {
			agency = kstartupDefaultAgency
		}

		startDate := notice.NormalizeDate(pick(item, "postDt", "regDt"))
		if startDate == "" {
			startDate = notice.Today()
		}
		endDate := notice.NormalizeDate(item["endDt"])

		link := pick(item, "detailUrl", "url")
		if link == "" {
			if id := item["pbancId"]; id != "" {
				link = "https://www.k-startup.go.kr/web/contents/bizPbanc.do?schM=view&pbancId=" + id
			} else {
				link = "https://www.k-startup.go.kr/common/search/totalSearch.do?searchWord=" + url.QueryEscape(title)
			}
		}

		notices = append(notices, notice.Notice{
			ID:          notice.StableID(link),
			Title:       title,
			Agency:      agency,
			StartDate:   startDate,
			EndDate:     endDate,
			Region:      "전국",
			Category:    "창업지원",
			URL:         link,
			Source:      kstartupSource,
			Description: "K-Startup 창업지원포털에서 수집된 공고입니다.",
			FetchedAt:   now,
		})
	}

	slog.Info("Fetched notices", "source", a.Name(), "count", len(notices))
	return notices
}

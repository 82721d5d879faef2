package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// 나라장터 입찰공고 (KONEPS BidPublicInfoService, JSON). Goods, services
// and construction notices come from three separate operations of the same
// service and are fetched concurrently.
const (
	konepsEndpoint = "http://apis.data.go.kr/1230000/BidPublicInfoService04"
	konepsSource   = "나라장터(KONEPS)"

	opGoods        = "getBidPblancListInfoThng"
	opServices     = "getBidPblancListInfoServc"
	opConstruction = "getBidPblancListInfoCnstwk"

	// Default lookup window when no explicit dates are given.
	konepsDefaultWindowDays = 30
)

var konepsOperations = []struct {
	op       string
	category string
}{
	{opGoods, "물품"},
	{opServices, "용역"},
	{opConstruction, "공사"},
}

type KonepsAdapter struct {
	client     *http.Client
	endpoint   string
	serviceKey string
	userAgent  string
	settings   config.SourceSettings
}

func NewKonepsAdapter(client *http.Client, serviceKey, userAgent string, settings config.SourceSettings) *KonepsAdapter {
	return &KonepsAdapter{
		client:     client,
		endpoint:   konepsEndpoint,
		serviceKey: serviceKey,
		userAgent:  userAgent,
		settings:   settings,
	}
}

func (a *KonepsAdapter) Name() string { return "koneps" }

// Fetch satisfies the Adapter contract with the default bid window.
func (a *KonepsAdapter) Fetch(ctx context.Context) []notice.Notice {
	return a.FetchBids(ctx, "", "", "")
}

// FetchBids retrieves bid notices, optionally narrowed by keyword and an
// announcement-date range (YYYY-MM-DD). Without explicit dates the query
// covers the last 30 days. Results are sorted descending by start date.
func (a *KonepsAdapter) FetchBids(ctx context.Context, keyword, startDate, endDate string) []notice.Notice {
	if a.serviceKey == "" {
		slog.Debug("Source disabled: no API key configured", "source", a.Name())
		return nil
	}
	if !a.settings.Enabled {
		slog.Debug("Source disabled via configuration", "source", a.Name())
		return nil
	}

	begin := konepsWindowBound(startDate, konepsDefaultWindowDays, "0000")
	end := konepsWindowBound(endDate, 0, "2359")

	var mu sync.Mutex
	var notices []notice.Notice

	var wg sync.WaitGroup
	for _, operation := range konepsOperations {
		wg.Add(1)
		go func(op, category string) {
			defer wg.Done()
			fetched := a.fetchOperation(ctx, op, category, keyword, begin, end)
			mu.Lock()
			notices = append(notices, fetched...)
			mu.Unlock()
		}(operation.op, operation.category)
	}
	wg.Wait()

	sorted := notice.Apply(notices, notice.Filter{}, notice.SortRecent)
	slog.Info("Fetched bid notices", "source", a.Name(), "count", len(sorted))
	return sorted
}

func (a *KonepsAdapter) fetchOperation(ctx context.Context, op, category, keyword, begin, end string) []notice.Notice {
	query := fmt.Sprintf("serviceKey=%s&numOfRows=%d&pageNo=%d&type=json",
		a.serviceKey, a.settings.GetNumRows(50), a.settings.PageNo)
	// inqryDiv=1: search by notification date
	query += fmt.Sprintf("&inqryDiv=1&inqryBgnDt=%s&inqryEndDt=%s", begin, end)
	if keyword != "" {
		query += "&bidNtceNm=" + url.QueryEscape(keyword)
	}

	requestURL := fmt.Sprintf("%s/%s?%s", a.endpoint, op, query)

	data, contentType, err := fetchBody(ctx, a.client, requestURL, a.userAgent, a.timeout())
	if err != nil {
		slog.Warn("Fetch failed", "source", a.Name(), "operation", op, "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}
	data = decodeKorean(data, contentType)

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		slog.Warn("Failed to parse response", "source", a.Name(), "operation", op, "error", err)
		metrics.FetchErrors.WithLabelValues(a.Name()).Inc()
		return nil
	}

	body := jsonObject(jsonObject(payload, "response"), "body")
	if body == nil {
		return nil
	}

	// items is an array normally, but a single object when the page holds
	// exactly one notice.
	items := jsonList(body, "items")
	if items == nil {
		if single := jsonObject(body, "items"); single != nil {
			items = []any{single}
		}
	}

	now := time.Now()
	notices := make([]notice.Notice, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		title := strings.TrimSpace(jsonString(item, "bidNtceNm"))
		if title == "" {
			continue
		}

		region := jsonString(item, "inrdRgnNm")
		if region == "" {
			region = "전국"
		}

		agency := jsonString(item, "dminsttNm")

		startDate := notice.NormalizeDate(jsonString(item, "bidNtceDt"))
		if startDate == "" {
			startDate = notice.Today()
		}
		endDate := notice.NormalizeDate(jsonString(item, "bidClseDt"))

		link := jsonString(item, "bidNtceDtlUrl")
		if link == "" {
			link = "https://www.g2b.go.kr:8101/ep/tbid/tbidList.do?searchType=1&bidNm=" + url.QueryEscape(title)
		}

		notices = append(notices, notice.Notice{
			ID:          notice.StableID(link),
			Title:       title,
			Agency:      agency,
			StartDate:   startDate,
			EndDate:     endDate,
			Region:      region,
			Category:    category,
			URL:         link,
			Source:      konepsSource,
			Description: fmt.Sprintf("[%s] %s 공고", category, agency),
			FetchedAt:   now,
		})
	}

	return notices
}

// timeout allows KONEPS a longer bound than the other services; its list
// operations are noticeably slower.
func (a *KonepsAdapter) timeout() time.Duration {
	if a.settings.Timeout > 0 {
		return time.Duration(a.settings.Timeout) * time.Second
	}
	return 10 * time.Second
}

// konepsWindowBound renders one side of the inquiry window in the
// YYYYMMDDHHmm form the API expects. An explicit YYYY-MM-DD date is used
// as-is; otherwise the bound is daysAgo days before now.
func konepsWindowBound(date string, daysAgo int, suffix string) string {
	if date != "" {
		return strings.ReplaceAll(date, "-", "") + suffix
	}
	return time.Now().AddDate(0, 0, -daysAgo).Format("20060102") + suffix
}

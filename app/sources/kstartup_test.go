package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
)

const kstartupFixture = `<?xml version="1.0" encoding="UTF-8"?>
<response>
	<header>
		<resultCode>00</resultCode>
	</header>
	<body>
		<items>
			<item>
				<bizNm>예비창업패키지 창업기업 모집</bizNm>
				<orgNm>창업진흥원 서울지원단</orgNm>
				<postDt>20240301</postDt>
				<endDt>20240331</endDt>
				<detailUrl>https://www.k-startup.go.kr/web/contents/bizPbanc.do?schM=view&amp;pbancId=PBLN_1001</detailUrl>
			</item>
			<item>
				<bizNm>초기창업패키지 모집</bizNm>
				<pbancId>PBLN_1002</pbancId>
			</item>
			<item>
				<bizNm>링크 없는 공고</bizNm>
			</item>
		</items>
	</body>
</response>`

func TestKStartupAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(kstartupFixture))
	}))
	defer server.Close()

	adapter := NewKStartupAdapter(server.Client(), "test-key", "test-agent", enabledSettings())
	adapter.endpoint = server.URL

	notices := adapter.Fetch(context.Background())

	if len(notices) != 3 {
		t.Fatalf("Expected 3 notices, got %d", len(notices))
	}

	first := notices[0]
	if first.Title != "예비창업패키지 창업기업 모집" {
		t.Errorf("Unexpected title '%s'", first.Title)
	}
	if first.Agency != "창업진흥원 서울지원단" {
		t.Errorf("Unexpected agency '%s'", first.Agency)
	}
	if first.StartDate != "2024-03-01" || first.EndDate != "2024-03-31" {
		t.Errorf("Unexpected dates %s / %s", first.StartDate, first.EndDate)
	}
	if first.Category != "창업지원" {
		t.Errorf("Unexpected category '%s'", first.Category)
	}

	// Missing detailUrl falls back to the pbancId detail page.
	second := notices[1]
	if !strings.Contains(second.URL, "pbancId=PBLN_1002") {
		t.Errorf("Expected a pbancId detail URL, got '%s'", second.URL)
	}
	if second.Agency != "창업진흥원" {
		t.Errorf("Expected default agency, got '%s'", second.Agency)
	}

	// No link of any kind falls back to the portal search page.
	third := notices[2]
	if !strings.Contains(third.URL, "totalSearch.do") {
		t.Errorf("Expected a search URL fallback, got '%s'", third.URL)
	}
	if third.EndDate != "" {
		t.Errorf("Expected an open-ended notice, got end date '%s'", third.EndDate)
	}
}

func TestKStartupAdapter_NoKeySkipsFetch(t *testing.T) {
	adapter := NewKStartupAdapter(&http.Client{}, "", "test-agent", enabledSettings())

	if notices := adapter.Fetch(context.Background()); notices != nil {
		t.Errorf("Expected nil without an API key, got %d notices", len(notices))
	}
}

func TestKStartupAdapter_DisabledSkipsFetch(t *testing.T) {
	adapter := NewKStartupAdapter(&http.Client{}, "test-key", "test-agent",
		config.SourceSettings{Enabled: false, PageNo: 1})

	if notices := adapter.Fetch(context.Background()); notices != nil {
		t.Errorf("Expected nil for a disabled source, got %d notices", len(notices))
	}
}

package notice

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"
)

const mockCount = 30

var mockAgencies = []string{
	"중소벤처기업부", "소상공인시장진흥공단", "경기도경제과학진흥원", "서울산업진흥원",
	"부산경제진흥원", "정보통신산업진흥원", "창업진흥원", "한국콘텐츠진흥원",
}

var mockCategories = []string{
	"R&D", "금융/자금", "판로/수출", "인력/채용", "창업/벤처", "경영/컨설팅", "기타",
}

var mockRegions = []string{
	"전국", "서울", "경기", "부산", "대구", "대전", "광주", "인천", "강원", "제주",
}

var mockTitles = []string{
	"2024년 창업성장기술개발사업 제1차 시행계획 공고",
	"소상공인 스마트상점 기술보급사업 모집 공고",
	"중소기업 정책자금(운전/시설) 융자계획 공고",
	"글로벌 강소기업 1000+ 프로젝트 참여기업 모집",
	"지역특화산업육성(R&D) 기술개발 지원사업 공고",
	"청년창업사관학교 14기 입교생 모집",
	"데이터바우처 지원사업 수요기업 모집 공고",
	"AI 바우처 지원사업 사업공고",
	"비대면 서비스 바우처 수요기업 모집",
	"수출바우처사업 참여기업 1차 모집공고",
	"소공인 클린제조환경 조성사업 모집 공고",
	"전통시장 활성화 지원사업 통합공고",
}

// GenerateMock produces synthetic but plausible notices for the fallback
// path when no live source yields data and the store is empty. Start dates
// fall within the past 30 days, end dates 14-74 days after the start.
// Returned sorted descending by StartDate to match the default query sort.
func GenerateMock() []Notice {
	now := time.Now()
	notices := make([]Notice, 0, mockCount)

	for i := 0; i < mockCount; i++ {
		agency := mockAgencies[rand.Intn(len(mockAgencies))]
		category := mockCategories[rand.Intn(len(mockCategories))]
		region := mockRegions[rand.Intn(len(mockRegions))]
		titleBase := mockTitles[rand.Intn(len(mockTitles))]

		start := now.AddDate(0, 0, -rand.Intn(30))
		end := start.AddDate(0, 0, rand.Intn(60)+14)

		keyword := strings.SplitN(titleBase, "(", 2)[0]
		searchURL := BizinfoSearchURL(keyword)

		source := "기업마당"
		if rand.Intn(2) == 0 {
			source = "K-Startup"
		}

		notices = append(notices, Notice{
			ID:          fmt.Sprintf("mock-%d", i),
			Title:       fmt.Sprintf("[%s] %s (%d차)", region, titleBase, i+1),
			Agency:      agency,
			StartDate:   start.Format("2006-01-02"),
			EndDate:     end.Format("2006-01-02"),
			Region:      region,
			Category:    category,
			URL:         searchURL,
			Source:      source,
			Description: fmt.Sprintf("%s에서 주관하는 %s 분야 지원사업입니다. 자세한 내용은 공고문을 참조하세요.", agency, category),
			FetchedAt:   now,
		})
	}

	sortNotices(notices, SortRecent)
	return notices
}

// BizinfoSearchURL builds the keyword-search landing page used when an
// upstream item carries no detail link of its own. Best-effort stand-in,
// not a link to the exact notice.
func BizinfoSearchURL(keyword string) string {
	return "https://www.bizinfo.go.kr/web/lay1/bbs/S1T122C128/AS/74/list.do?keyword=" +
		url.QueryEscape(strings.TrimSpace(keyword))
}

// Package catalog 提供内置的公司、关键词、每日新闻样例以及报告模板。
package catalog

import "github.com/iWorld-y/report_studio/app/studio/pkg/report"

// Company 公司信息
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CEO  string `json:"ceo"`
}

// NewsItem 每日新闻条目
type NewsItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	URL     string   `json:"url"`
	Source  string   `json:"source"`
	Tags    []string `json:"tags"`
}

// Companies 可选公司列表
func Companies() []Company {
	return []Company{
		{ID: "samsung", Name: "삼성전자(주)", CEO: "홍길동"},
		{ID: "skhynix", Name: "SK하이닉스", CEO: "김하늘"},
		{ID: "micron", Name: "마이크론", CEO: "이서준"},
		{ID: "tsmc", Name: "TSMC", CEO: "박지민"},
		{ID: "qualcomm", Name: "퀄컴", CEO: "최윤아"},
		{ID: "pwc", Name: "프라이스워터하우스쿠퍼스컨설팅", CEO: "문호기"},
	}
}

// CompanyByID 按 ID 查找公司
func CompanyByID(id string) (Company, bool) {
	for _, c := range Companies() {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

// Keywords 默认可选关键词
func Keywords() []string {
	return []string{"삼성전자", "마이크론", "GPU 수요", "HBM4", "SK하이닉스", "HBM3E", "AI 데이터센터"}
}

// DailyNews 没有配置搜索服务时使用的新闻样例
func DailyNews() []NewsItem {
	return []NewsItem{
		{
			ID:    "n1",
			Title: "CoWoS 병목 완화 시나리오: 패키징 공급망 변화",
			Bullets: []string{
				"패키징 증설 계획이 2026년까지 단계적으로 반영될 가능성",
				"GPU 수요가 메모리/파운드리 수급에 미치는 영향 점검 필요",
				"대형 고객사 계약 구조 변화가 마진에 영향",
			},
			URL:    "https://www.hankyung.com/article/2026010169151",
			Source: "한국경제",
			Tags:   []string{"패키징", "CoWoS", "TSMC", "GPU 수요"},
		},
		{
			ID:    "n2",
			Title: "HBM3E 양산 경쟁 심화: 수율/공정 최적화 이슈",
			Bullets: []string{
				"HBM3E 수율 개선 속도가 단기 공급능력의 핵심 변수",
				"차세대 HBM4 로드맵 공개 시점이 경쟁 구도에 영향",
			},
			URL:    "https://example.com/news/hbm3e",
			Source: "MockWire",
			Tags:   []string{"HBM3E", "HBM4", "삼성전자", "SK하이닉스", "마이크론"},
		},
		{
			ID:    "n3",
			Title: "AI 데이터센터 투자 재개: CAPEX 가이던스 상향 가능성",
			Bullets: []string{
				"대형 CSP의 GPU 도입 속도가 DRAM/NAND 수요를 견인",
				"재고 정상화 여부에 따라 분기별 변동성 확대",
			},
			URL:    "https://example.com/news/datacenter",
			Source: "MockWire",
			Tags:   []string{"AI 데이터센터", "DRAM", "NAND", "GPU 수요"},
		},
	}
}

// DefaultReportTitle 模板报告标题
const DefaultReportTitle = "반도체 시장의 HBM 트렌드 분석 리포트"

// SeedSections 模板报告的小节，模型未配置时使用
func SeedSections() []report.Section {
	return []report.Section{
		{
			ID:      "section-1",
			Title:   "요약",
			Content: "본 리포트는 반도체 시장의 HBM(High Bandwidth Memory) 트렌드에 대한 종합 분석을 제공합니다. 주요 기업인 삼성전자, 마이크론, SK하이닉스의 기술 동향과 시장 전망을 다룹니다.",
			Type:    report.SectionText,
		},
		{
			ID:      "section-2",
			Title:   "시장 동향",
			Content: "HBM 시장은 AI 데이터센터의 급속한 성장과 GPU 수요 증가로 인해 지속적인 성장세를 보이고 있습니다. HBM3E와 HBM4 등 차세대 기술이 주목받고 있으며, 엔비디아와 AMD의 GPU 플랫폼에서 핵심 메모리 솔루션으로 채택되고 있습니다.",
			Type:    report.SectionText,
		},
		{
			ID:    "section-3",
			Title: "HBM 시장 점유율 (2024)",
			Type:  report.SectionChart,
			ChartConfig: &report.ChartConfig{
				Type: report.ChartBar,
				Data: report.ChartData{
					Labels: []string{"삼성전자", "SK하이닉스", "마이크론", "기타"},
					Datasets: []report.Dataset{
						{Label: "시장 점유율 (%)", Data: []float64{45, 30, 20, 5}, Color: "#7f6bff"},
					},
				},
			},
			Metadata: &report.SectionMetadata{
				Description:        "시장 점유율을 보여주는 바 차트",
				SuggestedChartType: report.ChartPie,
			},
		},
		{
			ID:      "section-4",
			Title:   "주요 기업 분석",
			Content: "삼성전자는 HBM3E 양산에 성공하며 시장 선도 위치를 공고히 하고 있습니다. 마이크론은 차세대 HBM4 개발에 집중하고 있으며, SK하이닉스는 기술 혁신을 통해 경쟁력을 강화하고 있습니다.",
			Type:    report.SectionText,
		},
		{
			ID:    "section-5",
			Title: "기업별 HBM 제품 라인업",
			Type:  report.SectionTable,
			TableData: &report.TableData{
				Headers: []string{"기업", "HBM3", "HBM3E", "HBM4 (개발 중)"},
				Rows: [][]string{
					{"삼성전자", "✓", "✓", "✓"},
					{"SK하이닉스", "✓", "✓", "진행 중"},
					{"마이크론", "✓", "진행 중", "계획"},
				},
			},
		},
	}
}

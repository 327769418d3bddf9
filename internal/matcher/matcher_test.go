package matcher

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func titlePage(title string) string {
	return "<html><head><title>" + title + "</title></head><body></body></html>"
}

func TestMatch_TitleText(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantDate  string
		wantTeams [2]string
	}{
		{
			name:      "VS separator with sponsor name",
			title:     "2025/04/01 中信兄弟 VS 統一7ELEVEn獅",
			wantDate:  "2025-04-01",
			wantTeams: [2]string{"中信兄弟", "統一7ELEVEn獅"},
		},
		{
			name:      "hyphen separator",
			title:     "2025-04-01 樂天 - 富邦",
			wantDate:  "2025-04-01",
			wantTeams: [2]string{"樂天", "富邦"},
		},
		{
			name:      "dotted VS and trailing site name",
			title:     "2025/4/9 味全龍 V.S. 台鋼雄鷹 | 中華職棒",
			wantDate:  "2025-04-09",
			wantTeams: [2]string{"味全龍", "台鋼雄鷹"},
		},
		{
			name:      "full-width VS and period",
			title:     "2024/10/05 樂天桃猿 ＶＳ 中信兄弟．",
			wantDate:  "2024-10-05",
			wantTeams: [2]string{"樂天桃猿", "中信兄弟"},
		},
		{
			name:      "noise between date and teams",
			title:     "2025/05/02｜中信兄弟 vs 富邦悍將",
			wantDate:  "2025-05-02",
			wantTeams: [2]string{"中信兄弟", "富邦悍將"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := New().Match(parse(t, titlePage(tt.title)))
			require.True(t, ok)
			assert.Equal(t, tt.wantDate, res.Record.Date)
			assert.Equal(t, tt.wantTeams, res.Record.Teams)
		})
	}
}

func TestMatch_BreadcrumbTakesPriority(t *testing.T) {
	html := `<html><head><title>中華職棒 文字轉播</title></head><body>
		<ul class="breadcrumb">
			<li><a href="/">首頁</a></li>
			<li><a href="/box">2025/04/01 中信兄弟 VS 統一7ELEVEn獅</a></li>
		</ul>
		<p>2025/03/30 樂天 - 富邦</p>
	</body></html>`

	res, ok := New().Match(parse(t, html))
	require.True(t, ok)
	assert.Equal(t, "breadcrumb", res.Strategy)
	assert.Equal(t, "2025-04-01", res.Record.Date)
	assert.Equal(t, [2]string{"中信兄弟", "統一7ELEVEn獅"}, res.Record.Teams)
}

func TestMatch_BreadcrumbBeatsMatchingTitle(t *testing.T) {
	html := `<html><head><title>2025/03/01 A隊 VS B隊</title></head><body>
		<nav aria-label="breadcrumb"><a href="#">2025/04/02 味全龍 vs. 台鋼雄鷹</a></nav>
	</body></html>`

	res, ok := New().Match(parse(t, html))
	require.True(t, ok)
	assert.Equal(t, "breadcrumb", res.Strategy)
	assert.Equal(t, [2]string{"味全龍", "台鋼雄鷹"}, res.Record.Teams)
}

func TestMatch_BreadcrumbWithUnicodeSpaces(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "nbsp separators with conflicting title",
			html: `<html><head><title>2025/03/01 A隊 VS B隊</title></head><body>
				<div class="breadcrumb"><a>2025/04/02&nbsp;味全龍&nbsp;VS&nbsp;台鋼雄鷹</a></div>
			</body></html>`,
		},
		{
			name: "full-width space separators",
			html: "<html><head><title>CPBL</title></head><body>" +
				"<div class=\"breadcrumb\"><a>2025/04/02\u3000味全龍\u3000VS\u3000台鋼雄鷹</a></div>" +
				"<p>2025/03/01 A隊 VS B隊</p></body></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := New().Match(parse(t, tt.html))
			require.True(t, ok)
			assert.Equal(t, "breadcrumb", res.Strategy)
			assert.Equal(t, "2025-04-02", res.Record.Date)
			assert.Equal(t, [2]string{"味全龍", "台鋼雄鷹"}, res.Record.Teams)
		})
	}
}

func TestBreadcrumb_SkipsNonMatchingAnchors(t *testing.T) {
	html := `<div class="breadcrumbs">
		<a>首頁</a>
		<a>VS 專區</a>
		<a>2025/04/01 A VS B VS C</a>
		<a>2025/04/03 樂天桃猿 VS 富邦悍將</a>
	</div>`

	raw, ok := Breadcrumb().Extract(parse(t, html))
	require.True(t, ok)
	assert.Equal(t, RawMatch{Date: "2025/04/03", Left: "樂天桃猿", Right: "富邦悍將"}, raw)
}

func TestBreadcrumb_RequiresSpacedSeparator(t *testing.T) {
	html := `<div class="breadcrumb"><a>2025/04/01 中信兄弟VS統一獅</a></div>`

	_, ok := Breadcrumb().Extract(parse(t, html))
	assert.False(t, ok)
}

func TestMatch_FallsBackToPageText(t *testing.T) {
	html := `<html><head><title>中華職棒大聯盟全球資訊網</title>
		<script>var d = "2020/01/01 X VS Y";</script></head>
		<body><div class="game"><span>2025/06/14</span>
		<span>統一7-ELEVEn獅</span> <em>VS</em> <span>樂天桃猿</span></div></body></html>`

	res, ok := New().Match(parse(t, html))
	require.True(t, ok)
	assert.Equal(t, "page-text", res.Strategy)
	assert.Equal(t, "2025-06-14", res.Record.Date)
	assert.Equal(t, [2]string{"統一7-ELEVEn獅", "樂天桃猿"}, res.Record.Teams)
}

func TestMatch_NoMatch(t *testing.T) {
	for _, html := range []string{
		``,
		`<html><head><title>找不到頁面</title></head><body>404</body></html>`,
		`<html><head><title>2025/04/01</title></head><body>尚無比賽</body></html>`,
	} {
		_, ok := New().Match(parse(t, html))
		assert.False(t, ok, html)
	}
}

func TestMatch_OrderIsRespected(t *testing.T) {
	calls := []string{}
	first := &stubStrategy{name: "first", calls: &calls}
	second := &stubStrategy{name: "second", calls: &calls, raw: RawMatch{Date: "2025/1/2", Left: "A", Right: "B"}, ok: true}
	third := &stubStrategy{name: "third", calls: &calls, ok: true}

	res, ok := New(first, second, third).Match(parse(t, ""))
	require.True(t, ok)
	assert.Equal(t, "second", res.Strategy)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestMatch_BadDateFallsThrough(t *testing.T) {
	calls := []string{}
	bad := &stubStrategy{name: "bad", calls: &calls, raw: RawMatch{Date: "2025/04", Left: "A", Right: "B"}, ok: true}
	blank := &stubStrategy{name: "blank", calls: &calls, raw: RawMatch{Date: "2025/04/01", Left: " ．", Right: "B"}, ok: true}
	good := &stubStrategy{name: "good", calls: &calls, raw: RawMatch{Date: "2025/04/01", Left: "A", Right: "B"}, ok: true}

	res, ok := New(bad, blank, good).Match(parse(t, ""))
	require.True(t, ok)
	assert.Equal(t, "good", res.Strategy)
	assert.Equal(t, []string{"bad", "blank", "good"}, calls)
}

func TestNew_DefaultOrder(t *testing.T) {
	assert.Equal(t, []string{"breadcrumb", "title", "page-text"}, New().Strategies())
}

type stubStrategy struct {
	name  string
	raw   RawMatch
	ok    bool
	calls *[]string
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(*goquery.Document) (RawMatch, bool) {
	*s.calls = append(*s.calls, s.name)
	return s.raw, s.ok
}

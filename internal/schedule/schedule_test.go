package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

const scheduleURL = "https://www.cpbl.com.tw/schedule/index?year=2025&month=04&kindCode=A"

func TestCollect_DeduplicatesLinks(t *testing.T) {
	html := `<table>
		<tr><td><a href="/box/live?year=2025&KindCode=A&gameSno=12">中信兄弟 vs 樂天桃猿</a></td></tr>
		<tr><td><div><a href="/box/live?year=2025&kindCode=A&gameSno=12"><img src="x.png"></a></div></td></tr>
		<tr><td><span><a class="btn" href="https://www.cpbl.com.tw/box/live?gameSno=12&year=2025&KindCode=a">文字轉播</a></span></td></tr>
	</table>`

	keys, err := Collect(html, scheduleURL, 2025, "A")
	require.NoError(t, err)
	assert.Equal(t, []game.Key{{Year: 2025, Kind: "A", Sno: 12}}, keys)
}

func TestCollect_SortedAndFiltered(t *testing.T) {
	html := `
		<a href="/box/live?year=2025&KindCode=A&gameSno=30">30</a>
		<a href="../box/live?gameSno=4">relative, no year or kind</a>
		<a href="/box/index?GAMESNO=7&KINDCODE=g">upper-case names</a>
		<a href="/box/live?year=2025&KindCode=A">no game number</a>
		<a href="/box/live?gameSno=abc">non-numeric</a>
		<a href="/box/live?gameSno=5&year=twenty">bad year</a>
		<a href="/schedule/index?gameSno=99">not a box link</a>
		<a>no href</a>
		<a href="/box/live?year=2024&KindCode=A&gameSno=300">last season</a>
	`

	keys, err := Collect(html, scheduleURL, 2025, "a")
	require.NoError(t, err)
	assert.Equal(t, []game.Key{
		{Year: 2024, Kind: "A", Sno: 300},
		{Year: 2025, Kind: "A", Sno: 4},
		{Year: 2025, Kind: "A", Sno: 30},
		{Year: 2025, Kind: "G", Sno: 7},
	}, keys)
}

func TestCollect_EmptyPage(t *testing.T) {
	keys, err := Collect(`<html><body>本月無賽程</body></html>`, scheduleURL, 2025, "A")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCollect_BadBaseURL(t *testing.T) {
	_, err := Collect(`<a href="/box/live?gameSno=1">1</a>`, "://bad", 2025, "A")
	assert.Error(t, err)
}

package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

func sourceAdapter(t *testing.T, id string, now time.Time) Adapter {
	t.Helper()
	src, ok := Lookup(id)
	require.True(t, ok)
	a, err := New(src, testDeps(t, now))
	require.NoError(t, err)
	return a
}

func TestKBoardDefaultExtract(t *testing.T) {
	t.Parallel()

	html := `
<div id="kboard-default-list"><div class="kboard-list"><table><tbody>
 <tr class="kboard-list-notice">
  <td class="kboard-list-title"><div class="cut_strings"><a href="/?page_id=516&amp;uid=93">졸업전시 안내</a></div></td>
  <td class="kboard-list-date">2025.08.12</td>
 </tr>
 <tr>
  <td class="kboard-list-title"><div class="cut_strings"><a href="/?page_id=516&amp;uid=92">공방 사용 수칙</a></div></td>
  <td class="kboard-list-date">2025.08.10</td>
 </tr>
</tbody></table></div></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "design_metalwork_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 2)
	require.Equal(t, "[공지] 졸업전시 안내", got[0].Title)
	require.Equal(t, "http://mcraft.kookmin.ac.kr/?page_id=516&uid=93", got[0].Link)
	require.Equal(t, time.Date(2025, 8, 12, 0, 0, 0, 0, notice.Seoul), got[0].Published)
}

func TestKBoardCategoryFoldedIntoTitle(t *testing.T) {
	t.Parallel()

	html := `
<div class="kboard-list"><table><tbody>
 <tr>
  <td class="kboard-list-title">
   <a href="/news/?uid=55"><div class="kboard-default-cut-strings"><span class="category1">[전시]</span>신입생 오리엔테이션</div></a>
  </td>
  <td class="kboard-list-date">25.08.14</td>
 </tr>
</tbody></table></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "design_ceramics_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 1)
	require.Equal(t, "[전시] 신입생 오리엔테이션", got[0].Title)
	require.Equal(t, "https://kmuceramics.com/news/?uid=55", got[0].Link)
	require.Equal(t, time.Date(2025, 8, 14, 0, 0, 0, 0, notice.Seoul), got[0].Published)
}

func TestArtsListExtract(t *testing.T) {
	t.Parallel()

	html := `
<div class="list-tbody">
 <ul>
  <li class="notice">공지</li>
  <li class="subject"><a href="./?mode=view&amp;no=31">실기실 안전교육</a></li>
  <li class="date">2025-08-25</li>
 </ul>
 <ul>
  <li class="subject"><a href="./?mode=view&amp;no=30">장학 신청</a></li>
  <li class="date">2025.08.24</li>
 </ul>
</div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "arts_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 2)
	require.Equal(t, "[공지] 실기실 안전교육", got[0].Title)
	require.Equal(t, "https://art.kookmin.ac.kr/community/notice/?mode=view&no=31", got[0].Link)
	require.Equal(t, "장학 신청", got[1].Title)
	require.Equal(t, time.Date(2025, 8, 24, 0, 0, 0, 0, notice.Seoul), got[1].Published)
}

func TestAutoListMainAndAsideRows(t *testing.T) {
	t.Parallel()

	html := `
<div class="aside-list-area"><ul>
 <li class="aside-list"><a href="view.php?no=9"><span>2025.08.01</span><strong>등록금 납부 안내</strong></a></li>
</ul></div>
<div class="list-type01 list-l"><ul>
 <li><a href="view.php?no=10"><strong class="list01-tit">현장실습 모집</strong><span class="list01-date">2025.08.23</span></a></li>
</ul></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "automativeengineering_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 2)
	require.Equal(t, "현장실습 모집", got[0].Title)
	require.Equal(t, "https://auto.kookmin.ac.kr/board/notice/view.php?no=10", got[0].Link)
	require.Equal(t, "[공지] 등록금 납부 안내", got[1].Title)
	require.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, notice.Seoul), got[1].Published)
}

func TestLincListExtract(t *testing.T) {
	t.Parallel()

	html := `
<div class="board_list"><div class="content_wrap">
 <li><span class="icon_notice">공지</span><a href="?gc=605XOAS&amp;sca=notice&amp;no=3"><span class="tit0">산학 프로젝트 설명회</span></a><span class="date">2025-08-18</span></li>
 <li><a href="?gc=605XOAS&amp;no=2"><span class="tit0">캡스톤 지원</span></a><span class="date">2025-08-16</span></li>
 <li><a href="/main/view?gc=605XOAS&amp;no=1"><span class="tit0">가족회사 모집</span></a><span class="date">2025-08-14</span></li>
</div></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "linc_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 3)
	require.Equal(t, "[공지] 산학 프로젝트 설명회", got[0].Title)
	require.Equal(t, "https://linc.kookmin.ac.kr/main/menu?gc=605XOAS&sca=notice&no=3", got[0].Link)
	require.Equal(t, "https://linc.kookmin.ac.kr/main/view?gc=605XOAS&no=1", got[2].Link)
}

func TestArchiListExtract(t *testing.T) {
	t.Parallel()

	html := `
<ul class="board-list-type01">
 <li><a href="?md=v&amp;seqidx=120"><span class="borad-list-tit">설계 스튜디오 배정</span><span class="board-list-date">2025-08-21</span></a></li>
 <li><a href="?md=v&amp;seqidx=119"><span class="borad-list-tit"></span><span class="board-list-date">2025-08-20</span></a></li>
</ul>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "architecture_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 1)
	require.Equal(t, "설계 스튜디오 배정", got[0].Title)
	require.Equal(t, "https://archi.kookmin.ac.kr/life/notice/?md=v&seqidx=120", got[0].Link)
}

func TestChemPHPSkipsHeaderRow(t *testing.T) {
	t.Parallel()

	html := `
<div id="ezsBBS"><table>
 <tr><td>번호</td><td>제목</td><td>날짜</td></tr>
 <tr>
  <td><ul><li><a class="Board" href="menu_1.php?db=notice&amp;id=44">실험실 안전교육 일정</a></li></ul></td>
  <td class="txtc txtN">44</td><td class="txtc txtN">2025-08-11</td><td class="txtc txtN">73</td>
 </tr>
</table></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "sciencetechnology_chemistry_academic", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 1)
	require.Equal(t, "실험실 안전교육 일정", got[0].Title)
	require.Equal(t, "http://chem.kookmin.ac.kr/sub6/menu_1.php?db=notice&id=44", got[0].Link)
	require.Equal(t, time.Date(2025, 8, 11, 0, 0, 0, 0, notice.Seoul), got[0].Published)
}

func TestForumExtract(t *testing.T) {
	t.Parallel()

	html := `
<div class="board_list"><ul>
 <li>
  <a href="#none" onclick="global.write('58873', './view.do');">
   <span class="ctg_name"><em>제121회</em></span>
   <p class="title">대한민국 외교의 길을 묻다</p>
   <p class="desc">홍길동 전 대사</p>
   <div class="board_etc"><span>일시 및 기간: 2025.04.29 (18:45~20:15)</span><span>본부관 301호</span></div>
  </a>
 </li>
</ul></div>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "university_bukakpoliticalforum", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 1)
	require.Equal(t, "[제121회] [홍길동 전 대사] 대한민국 외교의 길을 묻다", got[0].Title)
	require.Equal(t, "https://www.kookmin.ac.kr/user/kmuNews/specBbs/bugAgForum/view.do?dataSeq=58873", got[0].Link)
	require.Equal(t, time.Date(2025, 4, 29, 0, 0, 0, 0, notice.Seoul), got[0].Published)
}

func TestLibraryExtract(t *testing.T) {
	t.Parallel()

	html := `
<table class="ikc-bulletins"><tbody>
 <tr class="ng-star-inserted">
  <td class="ikc-bulletins-index"><span>1024</span></td>
  <td class="ikc-bulletins-title"><span>도서관 하계 단축 운영 안내</span></td>
  <td class="ikc-bulletins-properties"><ul><li><span>도서관</span></li><li><span>8월 19일</span></li><li><span>552</span></li></ul></td>
 </tr>
 <tr class="ng-star-inserted">
  <td class="ikc-bulletins-index"><span></span></td>
  <td class="ikc-bulletins-title"><span>머리글</span></td>
 </tr>
</tbody></table>`

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	a := sourceAdapter(t, "library_general", now)

	got := extractAll(t, a, parseDoc(t, html))
	require.Len(t, got, 1)
	require.Equal(t, "도서관 하계 단축 운영 안내", got[0].Title)
	require.Equal(t, "https://lib.kookmin.ac.kr/library-guide/notice#1024", got[0].Link)
	require.Equal(t, time.Date(2025, 8, 19, 0, 0, 0, 0, notice.Seoul), got[0].Published)
}

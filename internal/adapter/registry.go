package adapter

import "fmt"

// Family names. The CMS variants differ only in where the board hides
// its date column and how pinned rows are rendered.
const (
	familyCSList        = "cs-list"
	familyCMS           = "cms-board"
	familyCMSTd4        = "cms-board-td4"
	familyCMSTd5        = "cms-board-td5"
	familyCMSLast       = "cms-board-last"
	familyCMSPenult     = "cms-board-penult"
	familyCMSArticle    = "cms-board-article"
	familyCMSPinnedTop  = "cms-board-pinned-first"
	familyKBoardDefault = "kboard-default"
	familyKBoardTable   = "kboard-table"
	familyBoardList     = "board-list"
	familyForum         = "forum"
	familyArchiList     = "archi-list"
	familyAutoList      = "auto-list"
	familyArtsList      = "arts-list"
	familyLincList      = "linc-list"
	familyChemPHP       = "chem-php"
	familyLibrary       = "library"
)

var families = map[string]func(Source, Deps) Adapter{
	familyCSList:       newCSList,
	familyCMS:          newCMSBoard(cmsOptions{}),
	familyCMSTd4:       newCMSBoard(cmsOptions{dateCell: 4}),
	familyCMSTd5:       newCMSBoard(cmsOptions{dateCell: 5}),
	familyCMSLast:      newCMSBoard(cmsOptions{dateCell: -1}),
	familyCMSPenult:    newCMSBoard(cmsOptions{dateCell: -2}),
	familyCMSArticle:   newCMSBoard(cmsOptions{rebuildArticleLink: true, dateCell: 6}),
	familyCMSPinnedTop: newCMSBoard(cmsOptions{dateCell: 4, pinnedFirst: true}),
	familyKBoardDefault: newKBoard(kboardOptions{
		rowSelector:   "#kboard-default-list .kboard-list tbody tr",
		titleSelector: ".kboard-list-title div.cut_strings a",
	}),
	familyKBoardTable: newKBoard(kboardOptions{
		rowSelector:   "div.kboard-list table tbody tr",
		titleSelector: "td.kboard-list-title a",
		withCategory:  true,
	}),
	familyBoardList: newBoardList,
	familyForum:     newForum,
	familyArchiList: newArchiList,
	familyAutoList:  newAutoList,
	familyArtsList:  newArtsList,
	familyLincList:  newLincList,
	familyChemPHP:   newChemPHP,
	familyLibrary:   newLibrary,
}

// catalog lists every notice board the service scrapes.
var catalog = []Source{
	{ID: "university_academic", Name: "대학 학사공지", URL: "https://cs.kookmin.ac.kr/news/kookmin/academic/", Mode: ModeHTTP, Family: familyCSList},
	{ID: "university_scholarship", Name: "대학 장학공지", URL: "https://cs.kookmin.ac.kr/news/kookmin/scholarship/", Mode: ModeHTTP, Family: familyCSList},
	{ID: "university_speciallecture", Name: "대학 특강공지", URL: "https://cs.kookmin.ac.kr/news/kookmin/special_lecture/", Mode: ModeHTTP, Family: familyCSList},
	{ID: "university_contestevent", Name: "대학 공모행사공지", URL: "https://www.kookmin.ac.kr/user/kmuNews/notice/9/index.do", Mode: ModeHTTP, Family: familyBoardList},
	{ID: "university_bukakpoliticalforum", Name: "북악정치포럼", URL: "https://www.kookmin.ac.kr/user/kmuNews/specBbs/bugAgForum/index.do", Mode: ModeHTTP, Family: familyForum},

	{ID: "softwarecentered_academic", Name: "SW중심대학사업단 학사공지", URL: "https://software.kookmin.ac.kr/software/bulletin/notice.do", Mode: ModeHTTP, Family: familyCMSArticle},
	{ID: "socialscience_academic", Name: "사회과학대학 학사공지", URL: "https://social.kookmin.ac.kr/social/menu/social_notice.do", Mode: ModeHTTP, Family: familyCMSTd4},
	{ID: "socialscience_publicadministration_academic", Name: "행정학과 학사공지", URL: "http://cms.kookmin.ac.kr/paap/notice/notice.do", Mode: ModeHTTP, Family: familyCMSPenult},
	{ID: "socialscience_education_academic", Name: "교육학과 학사공지", URL: "https://cms.kookmin.ac.kr/kmuedu/community/notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "socialscience_politicalscience_academic", Name: "정치외교학과 학사공지", URL: "https://polisci.kookmin.ac.kr/polisci/etc-board/board02.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "socialscience_sociology_academic", Name: "사회학과 학사공지", URL: "https://kmusoc.kookmin.ac.kr/kmusoc/etc-board/major_notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "socialscience_communication_media_academic", Name: "미디어전공 학사공지", URL: "https://kmumedia.kookmin.ac.kr/kmumedia/community/major-notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "socialscience_communication_advertising_academic", Name: "광고홍보학전공 학사공지", URL: "https://adpr.kookmin.ac.kr/adpr/menu/undergraduate-notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "creativeengineering_mechanical_academic", Name: "기계공학부 학사공지", URL: "http://cms.kookmin.ac.kr/mech/bbs/notice.do", Mode: ModeHTTP, Family: familyCMSLast},
	{ID: "creativeengineering_civil_academic", Name: "건설시스템공학부 학사공지", URL: "https://cms.kookmin.ac.kr/cee/bbs/notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "creativeengineering_advancedmaterials_academic", Name: "신소재공학부 학사공지", URL: "https://cms.kookmin.ac.kr/mse/bbs/notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "sciencetechnology_security_academic", Name: "정보보안암호수학과 학사공지", URL: "https://cns.kookmin.ac.kr/cns/notice/academic-notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "design_industrial_academic", Name: "공업디자인학과 학사공지", URL: "https://id.kookmin.ac.kr/id/intro/notice.do", Mode: ModeHTTP, Family: familyCMSPenult},
	{ID: "design_automotive_academic", Name: "자동차·운송디자인학과 학사공지", URL: "https://mobility.kookmin.ac.kr/mobility/etc-board/employment-information.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "design_visual_academic", Name: "시각디자인학과 학사공지", URL: "https://vcd.kookmin.ac.kr/vcd/etc-board/vcdnotice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "law_academic", Name: "법과대학 학사공지", URL: "https://law.kookmin.ac.kr/law/etc-board/notice01.do", Mode: ModeHTTP, Family: familyCMSPenult},
	{ID: "physicaleducation_academic", Name: "체육대학 학사공지", URL: "https://sport.kookmin.ac.kr/sports/notice/notice01.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "globalhumanities_eurasian_academic", Name: "러시아유라시아학과 학사공지", URL: "https://cms.kookmin.ac.kr/Russian-EurasianStudies/community/department-notice.do", Mode: ModeHTTP, Family: familyCMSPinnedTop},
	{ID: "climatechange_academic", Name: "기후변화대응사업단 학사공지", URL: "https://cms.kookmin.ac.kr/climatechange/community/notice.do", Mode: ModeHTTP, Family: familyCMSTd5},
	{ID: "coss_academic", Name: "미래자동차사업단 학사공지", URL: "https://coss.kookmin.ac.kr/fvedu/community/notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "futuremobility_academic", Name: "미래모빌리티학과 학사공지", URL: "https://cms.kookmin.ac.kr/futuremobility/board/notice.do", Mode: ModeHTTP, Family: familyCMS},
	{ID: "nccoss_general", Name: "차세대통신사업단 학사공지", URL: "https://nccoss.kookmin.ac.kr/NCCOSS/community/notice.do", Mode: ModeHTTP, Family: familyCMS},

	{ID: "design_metalwork_academic", Name: "금속공예학과 학사공지", URL: "http://mcraft.kookmin.ac.kr/?page_id=516", Mode: ModeHTTP, Family: familyKBoardDefault},
	{ID: "design_ceramics_academic", Name: "도자공예학과 학사공지", URL: "https://kmuceramics.com/news/", Mode: ModeHTTP, Family: familyKBoardTable},

	{ID: "architecture_academic", Name: "건축대학 학사공지", URL: "https://archi.kookmin.ac.kr/life/notice/", Mode: ModeHTTP, Family: familyArchiList},
	{ID: "automativeengineering_academic", Name: "자동차융합대학 학사공지", URL: "https://auto.kookmin.ac.kr/board/notice/?&pn=0", Mode: ModeHTTP, Family: familyAutoList},
	{ID: "arts_academic", Name: "예술대학 학사공지", URL: "https://art.kookmin.ac.kr/community/notice/", Mode: ModeHTTP, Family: familyArtsList},
	{ID: "linc_academic", Name: "LINC 3.0 사업단 학사공지", URL: "https://linc.kookmin.ac.kr/main/menu?gc=605XOAS", Mode: ModeHTTP, Family: familyLincList},
	{ID: "sciencetechnology_chemistry_academic", Name: "응용화학부 학사공지", URL: "http://chem.kookmin.ac.kr/sub6/menu1.php", Mode: ModeHTTP, Family: familyChemPHP},

	{ID: "library_general", Name: "성곡도서관 일반공지", URL: "https://lib.kookmin.ac.kr/library-guide/notice", Mode: ModeHeadless, WaitSelector: "table.ikc-bulletins", Family: familyLibrary},

	{ID: "computerscience_academic_rss", Name: "소융대 학사공지", URL: "https://cs.kookmin.ac.kr/news/notice/rss", Mode: ModeRSS},
	{ID: "businessadministration_academic_rss", Name: "경영대 학사공지", URL: "https://biz.kookmin.ac.kr/community/notice/rss", Mode: ModeRSS},
	{ID: "creativeengineering_electrical_academic_rss", Name: "전자공학부 학사공지", URL: "https://ee.kookmin.ac.kr/community/board/notice/rss", Mode: ModeRSS},
	{ID: "economiccommerce_academic_rss", Name: "경상대학 학사공지", URL: "https://kyungsang.kookmin.ac.kr/community/board/notice/rss", Mode: ModeRSS},
	{ID: "creativeengineering_academic_rss", Name: "창의공과대학 학사공지", URL: "https://engineering.kookmin.ac.kr/board/engineering_notice/rss", Mode: ModeRSS},
	{ID: "culture_academic_rss", Name: "교양대학 학사공지", URL: "https://culture.kookmin.ac.kr/community/notice/rss", Mode: ModeRSS},
	{ID: "teaching_academic_rss", Name: "교직과정부 학사공지", URL: "https://teaching.kookmin.ac.kr/introduce/notice/rss", Mode: ModeRSS},
	{ID: "dormitory_general_rss", Name: "생활관 일반공지", URL: "https://dormitory.kookmin.ac.kr/notice/notice/rss", Mode: ModeRSS},
	{ID: "globalhumanities_academic_rss", Name: "글로벌인문지역대학 학사공지", URL: "https://cha.kookmin.ac.kr/community/college/notice/rss", Mode: ModeRSS},
	{ID: "globalhumanities_korean_academic_rss", Name: "한국어문학부 학사공지", URL: "https://cha.kookmin.ac.kr/korea/korea_notice/rss", Mode: ModeRSS},
	{ID: "globalhumanities_english_academic_rss", Name: "영어영문학부 학사공지", URL: "https://cha.kookmin.ac.kr/english/english_notice/rss", Mode: ModeRSS},
	{ID: "globalhumanities_chinese_academic_rss", Name: "중국어문학부 학사공지", URL: "https://cha.kookmin.ac.kr/china/china_notice/rss", Mode: ModeRSS},
	{ID: "globalhumanities_koreanhistory_academic_rss", Name: "한국역사학과 학사공지", URL: "https://cha.kookmin.ac.kr/history/history_notice/rss", Mode: ModeRSS},
}

// Catalog returns a copy of the source table in registration order.
func Catalog() []Source {
	out := make([]Source, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a source by id.
func Lookup(id string) (Source, bool) {
	for _, src := range catalog {
		if src.ID == id {
			return src, true
		}
	}
	return Source{}, false
}

// New builds the adapter for an HTML source.
func New(src Source, deps Deps) (Adapter, error) {
	if src.Mode == ModeRSS {
		return nil, fmt.Errorf("source %s is a feed, not a scraped board", src.ID)
	}
	build, ok := families[src.Family]
	if !ok {
		return nil, fmt.Errorf("source %s: unknown board family %q", src.ID, src.Family)
	}
	return build(src, deps), nil
}

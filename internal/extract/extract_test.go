package extract_test

import (
	"testing"

	"tubemap/internal/extract"
)

func TestParseBracketedNameAndRegion(t *testing.T) {
	desc := extract.Parse("[남포면옥] 서울 중구 다동 냉면 맛집, 꼭 가보세요!")
	if !desc.Pass {
		t.Fatalf("expected pass, got %#v", desc)
	}
	if desc.StoreName != "남포면옥" {
		t.Errorf("store name = %q, want 남포면옥", desc.StoreName)
	}
	if desc.RegionHint != "서울 중구" {
		t.Errorf("region hint = %q, want 서울 중구", desc.RegionHint)
	}
}

func TestParseShortTextAlwaysFails(t *testing.T) {
	cases := []string{
		"",
		"[가게] 서울 중구",
		"짧은 설명",
	}
	for _, text := range cases {
		if desc := extract.Parse(text); desc.Pass {
			t.Errorf("Parse(%q) passed, want fail for text under 20 runes", text)
		}
	}
}

func TestParseRequiresBothSignals(t *testing.T) {
	onlyName := extract.Parse("[남포면옥] 냉면이 정말 맛있는 집입니다. 평양냉면의 정석이에요.")
	if onlyName.Pass {
		t.Fatalf("expected fail without region hint, got %#v", onlyName)
	}

	onlyRegion := extract.Parse("서울 중구 다동 근처를 산책하다가 발견한 곳인데 이름은 기억나지 않아요.")
	if onlyRegion.Pass {
		t.Fatalf("expected fail without store name, got %#v", onlyRegion)
	}
}

func TestParseLabelAndQuotePatterns(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"store label", "오늘의 맛집 탐방입니다.\n상호: 온기족발\n위치는 부산 해운대구 우동입니다.", "온기족발"},
		{"double quote", "\"을지로골뱅이\"에 다녀왔어요. 서울 중구 을지로3가 골목 안쪽입니다.", "을지로골뱅이"},
		{"branch suffix", "오늘은 성수동 갈비 투어. 경기 수원시 영통구에 있는 본수원갈비 본점 방문기입니다.", "본수원갈비"},
		{"hashtag", "부산 여행 브이로그입니다. 부산 중구 남포동 시장 구경\n#꼬랑촌할매집 #부산맛집", "꼬랑촌할매집"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := extract.Parse(tc.text)
			if !desc.Pass {
				t.Fatalf("expected pass, got %#v", desc)
			}
			if desc.StoreName != tc.want {
				t.Errorf("store name = %q, want %q", desc.StoreName, tc.want)
			}
		})
	}
}

func TestParseFirstLineWins(t *testing.T) {
	text := "[첫번째집] 먼저 나온 가게\n[두번째집] 나중에 나온 가게\n서울 마포구 연남동에 있습니다."
	desc := extract.Parse(text)
	if desc.StoreName != "첫번째집" {
		t.Errorf("store name = %q, want first line's candidate", desc.StoreName)
	}
}

func TestCleanSearchTerm(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"남포면옥", "남포면옥"},
		{"남포면옥 ★본점★", "남포면옥 본점"},
		{"🔥을지로3가🔥  골뱅이!!", "을지로3가 골뱅이"},
		{"  spaced   out  ", "spaced out"},
		{"♥♥♥", ""},
	}
	for _, tc := range cases {
		if got := extract.CleanSearchTerm(tc.in); got != tc.want {
			t.Errorf("CleanSearchTerm(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

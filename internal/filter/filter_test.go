package filter_test

import (
	"strings"
	"testing"

	"tubemap/internal/config"
	"tubemap/internal/filter"
	"tubemap/internal/testsupport"
)

func newFilter(t *testing.T) *filter.Filter {
	t.Helper()
	return filter.New(config.Default().Filter, testsupport.MustLexicon(t), nil)
}

func TestEvaluateVetoOnTitle(t *testing.T) {
	f := newFilter(t)

	score := f.Evaluate("오늘의 집밥 레시피 만들기", "서울 맛집 방문 후기가 아닙니다")
	if score.Valid {
		t.Fatal("vetoed title must never be valid")
	}
	if score.Reason != "SKIP_KEYWORD: 레시피" {
		t.Errorf("reason = %q, want SKIP_KEYWORD: 레시피", score.Reason)
	}
}

func TestEvaluateVetoIgnoresDescription(t *testing.T) {
	f := newFilter(t)

	// Veto keywords in the description alone do not reject.
	score := f.Evaluate("서울 냉면 맛집 방문", "집에서 레시피 따라하기는 어렵다")
	if !score.Valid {
		t.Fatalf("expected valid, got %#v", score)
	}
}

func TestEvaluateScoreBoundaries(t *testing.T) {
	f := newFilter(t)

	cases := []struct {
		name      string
		title     string
		desc      string
		wantScore int
		wantValid bool
	}{
		{"region plus food", "서울 냉면 특집", "평양식입니다", 55, true},
		{"food plus visit", "치킨 내돈내산 후기", "바삭한 튀김 옷", 50, true},
		{"food alone", "오늘은 치킨", "바삭한 튀김 옷", 25, false},
		{"nothing", "오늘의 브이로그", "하늘 사진 몇 장", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := f.Evaluate(tc.title, tc.desc)
			if score.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", score.Score, tc.wantScore)
			}
			if score.Valid != tc.wantValid {
				t.Errorf("valid = %v, want %v", score.Valid, tc.wantValid)
			}
		})
	}
}

func TestEvaluateLocalitySuffixCountsAsRegion(t *testing.T) {
	f := newFilter(t)

	// 문래동 is not in the region keyword list but ends in a locality suffix.
	score := f.Evaluate("문래동 곱창 내돈내산", "")
	if score.Score != 80 {
		t.Fatalf("score = %d, want 80 (region+food+visit)", score.Score)
	}
	if !score.Valid {
		t.Fatal("expected valid")
	}
}

func TestEvaluateBelowThresholdReason(t *testing.T) {
	f := newFilter(t)

	score := f.Evaluate("오늘은 치킨", "바삭한 튀김 옷")
	if score.Valid {
		t.Fatal("expected invalid")
	}
	if !strings.Contains(score.Reason, "below threshold") {
		t.Errorf("reason = %q, want below-threshold explanation", score.Reason)
	}
}

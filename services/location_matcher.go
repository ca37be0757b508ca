package services

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	matchThreshold   = 0.8
	suggestThreshold = 0.5
)

// LocationMatcher so khớp địa điểm không phân biệt dấu, hoa thường và cho phép gõ sai nhẹ
type LocationMatcher struct {
	cm        *closestmatch.ClosestMatch
	locations []string
}

func NewLocationMatcher(locations []string) *LocationMatcher {
	seen := make(map[string]bool)
	var unique []string
	for _, loc := range locations {
		n := NormalizeLocation(loc)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}

	m := &LocationMatcher{locations: unique}
	if len(unique) > 0 {
		m.cm = closestmatch.New(unique, []int{2, 3})
	}
	return m
}

// NormalizeLocation bỏ dấu, chuyển chữ thường và bỏ khoảng trắng thừa
func NormalizeLocation(input string) string {
	input = strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
	return strings.Join(strings.Fields(input), " ")
}

// Matches cho biết location có khớp với truy vấn không
func (m *LocationMatcher) Matches(query, location string) bool {
	q := NormalizeLocation(query)
	if q == "" {
		return true
	}
	loc := NormalizeLocation(location)
	if strings.Contains(loc, q) {
		return true
	}
	if similarity(q, loc) >= matchThreshold {
		return true
	}
	for _, word := range strings.Fields(loc) {
		if similarity(q, word) >= matchThreshold {
			return true
		}
	}
	return false
}

// Suggest trả về địa điểm gần nhất với truy vấn, rỗng nếu không đủ giống
func (m *LocationMatcher) Suggest(query string) string {
	if m.cm == nil {
		return ""
	}
	q := NormalizeLocation(query)
	if q == "" {
		return ""
	}
	best := m.cm.Closest(q)
	if best == "" || best == q || similarity(q, best) < suggestThreshold {
		return ""
	}
	return best
}

// similarity tính độ tương đồng giữa hai chuỗi theo khoảng cách levenshtein
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1.0 - float64(distance)/float64(maxLen)
}

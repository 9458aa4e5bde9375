package engine

import (
	"strings"
	"unicode"
)

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

func hasDuplicates[T comparable](values []T) bool {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// pointsOf sums each choice's points against every choice in the batch.
// A choice against itself scores by the table like any other pair.
func pointsOf[T interface{ PointsAgainst(T) int }](choices []T) []int {
	points := make([]int, len(choices))
	for i, a := range choices {
		for _, b := range choices {
			points[i] += a.PointsAgainst(b)
		}
	}
	return points
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

package core

import (
	"sort"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// UniqueStrings returns the non-empty trimmed values of ss without duplicates, keeping the first occurrence order.
func UniqueStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	seen := make(map[string]bool, len(ss))
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, s)
	}
	return res
}

// StringInSlice reports whether s is one of ss.
func StringInSlice(s string, ss []string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// AnyStringInSlice reports whether any of vals is in ss.
func AnyStringInSlice(vals, ss []string) bool {
	if len(vals) == 0 || len(ss) == 0 {
		return false
	}
	sorted := append([]string(nil), ss...)
	sort.Strings(sorted)
	for _, v := range vals {
		if i := sort.SearchStrings(sorted, v); i < len(sorted) && sorted[i] == v {
			return true
		}
	}
	return false
}

// RemoveStrings returns ss without any of the values in rm.
func RemoveStrings(ss, rm []string) []string {
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		if !StringInSlice(s, rm) {
			res = append(res, s)
		}
	}
	return res
}

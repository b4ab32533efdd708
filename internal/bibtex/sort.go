// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

var yearRe = regexp.MustCompile(`[0-9]{4}`)

var monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// Year extracts the first four-digit number of the year field.
func Year(rec types.Record) (int, bool) {
	m := yearRe.FindString(rec.Get(types.FieldYear))
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	return y, err == nil
}

// Month returns the zero-based month of the month field, which may be a
// name, an abbreviation, or a number from 1 to 12.
func Month(rec types.Record) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(rec.Get(types.FieldMonth)))
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= 12 {
			return n - 1, true
		}
		return 0, false
	}
	for i, p := range monthPrefixes {
		if strings.Contains(v, p) {
			return i, true
		}
	}
	return 0, false
}

// dateScore orders records as year*100 + month. Records without a year
// score -1; a missing month counts as January.
func dateScore(rec types.Record) int {
	y, ok := Year(rec)
	if !ok {
		return -1
	}
	m, _ := Month(rec)
	return y*100 + m
}

// SortReverseChronological sorts records newest first in place. Records
// without a year keep their relative order at the end.
func SortReverseChronological(records []types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return dateScore(records[i]) > dateScore(records[j])
	})
}

package entities

import (
	"regexp"
	"strings"
)

// The treatments column stores the selection as a single text value,
// joined with ", ". Splitting tolerates varying whitespace after commas
// so rows written by hand still parse.
const treatmentSeparator = ", "

var treatmentSplitPattern = regexp.MustCompile(`,\s*`)

// JoinTreatments serializes a treatment selection for the treatments column.
func JoinTreatments(treatments []string) string {
	return strings.Join(treatments, treatmentSeparator)
}

// SplitTreatments parses the treatments column back into the selection.
// An empty or blank column yields nil.
func SplitTreatments(column string) []string {
	column = strings.TrimSpace(column)
	if column == "" {
		return nil
	}
	return treatmentSplitPattern.Split(column, -1)
}

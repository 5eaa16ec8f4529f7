package generator

import (
	"regexp"
	"strconv"

	"github.com/chriserin/ftskel/internal/ordered"
)

// Variables holds the values pulled out of step text, keyed key1..keyN then num1..numN.
type Variables = ordered.Map[any]

var (
	quotedPattern  = regexp.MustCompile(`"(.*?)"`)
	numeralPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// ExtractVariables collects every double-quoted literal as keyN and every
// standalone decimal numeral as numN, both 1-indexed in order of appearance.
// No escapes are honored and nothing is deduplicated.
func ExtractVariables(step string) Variables {
	vars := ordered.New[any]()
	for i, m := range quotedPattern.FindAllStringSubmatch(step, -1) {
		vars.Set("key"+strconv.Itoa(i+1), m[1])
	}
	for i, m := range numeralPattern.FindAllString(step, -1) {
		vars.Set("num"+strconv.Itoa(i+1), numeral(m))
	}
	return vars
}

// numeral converts a matched numeral. Values too large for float64 stay as text.
func numeral(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

// mergeVariables folds the variables of every step into one map, later steps winning.
func mergeVariables(steps []string) Variables {
	merged := ordered.New[any]()
	for _, step := range steps {
		merged.Merge(ExtractVariables(step))
	}
	return merged
}

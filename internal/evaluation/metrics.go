package evaluation

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Fixed metric patterns. Units come from the rule bundle and are appended as an extra alternative.
const (
	percentPattern    = `\d+(?:\.\d+)?\s*%`
	currencyPattern   = `(?:[$₹€£]|\brs\.?|\binr|\busd)\s*\d[\d,]*(?:\.\d+)?\s*(?:k|m|bn?|cr|lakhs?|crores?|million|billion)?\b`
	multiplierPattern = `\b\d+(?:\.\d+)?\s*x\b`
)

// MetricDetector finds quantified impact statements in text
type MetricDetector struct {
	re *regexp.Regexp
}

var (
	detectorCache   = make(map[string]*MetricDetector)
	detectorCacheMu sync.RWMutex
)

// NewMetricDetector builds a detector for the given unit vocabulary.
// Detectors are cached per vocabulary since bundles rarely change.
func NewMetricDetector(units []string) *MetricDetector {
	cleaned := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.ToLower(strings.TrimSpace(u))
		if u != "" {
			cleaned = append(cleaned, unitPattern(u))
		}
	}
	// longest first so "milliseconds" wins over "m"
	sort.Slice(cleaned, func(i, j int) bool {
		if len(cleaned[i]) != len(cleaned[j]) {
			return len(cleaned[i]) > len(cleaned[j])
		}
		return cleaned[i] < cleaned[j]
	})
	key := strings.Join(cleaned, "|")

	detectorCacheMu.RLock()
	d, ok := detectorCache[key]
	detectorCacheMu.RUnlock()
	if ok {
		return d
	}

	alternatives := []string{percentPattern, currencyPattern, multiplierPattern}
	if key != "" {
		alternatives = append(alternatives, `\b\d[\d,]*(?:\.\d+)?\+?\s*(?:`+key+`)\b`)
	}
	d = &MetricDetector{re: regexp.MustCompile(`(?i)(?:` + strings.Join(alternatives, "|") + `)`)}

	detectorCacheMu.Lock()
	detectorCache[key] = d
	detectorCacheMu.Unlock()
	return d
}

// unitPattern quotes a unit and makes a plural "s" optional so "1 hour" matches "hours"
func unitPattern(unit string) string {
	if len(unit) > 3 && strings.HasSuffix(unit, "s") && !strings.HasSuffix(unit, "ss") {
		return regexp.QuoteMeta(unit[:len(unit)-1]) + "s?"
	}
	return regexp.QuoteMeta(unit)
}

// Find returns every metric found in text
func (d *MetricDetector) Find(text string) []string {
	return d.re.FindAllString(text, -1)
}

// Count returns the number of metrics found in text
func (d *MetricDetector) Count(text string) int {
	return len(d.re.FindAllStringIndex(text, -1))
}

// HasMetric reports whether text contains at least one metric
func (d *MetricDetector) HasMetric(text string) bool {
	return d.re.MatchString(text)
}

package services

import (
	"fmt"
	"strings"
)

// Rule-based cost baselines, in INR. These seed the cost prompt so the
// model anchors on a defensible figure instead of free-associating, and
// they survive in the structured estimate independent of the response.
type costRule struct {
	label    string
	baseline float64
	keywords []string
}

var costRules = []costRule{
	{"property dispute", 150000, []string{"property", "land", "eviction", "tenancy", "partition", "real estate"}},
	{"commercial dispute", 120000, []string{"contract", "breach", "recovery", "company", "arbitration", "commercial"}},
	{"criminal matter", 100000, []string{"criminal", "bail", "fir", "chargesheet", "prosecution"}},
	{"family matter", 75000, []string{"divorce", "custody", "alimony", "maintenance", "matrimonial"}},
	{"cheque dishonour", 50000, []string{"cheque", "dishonour", "dishonor", "section 138"}},
	{"consumer complaint", 30000, []string{"consumer", "refund", "deficiency", "defective"}},
}

// defaultCostBaseline covers queries matching no rule.
const (
	defaultCostLabel    = "general civil matter"
	defaultCostBaseline = 50000
)

// costBaseline classifies the query by keyword and returns the matter
// label and baseline cost. First matching rule wins; the rules are
// ordered by decreasing baseline so mixed queries take the costlier
// classification.
func costBaseline(query string) (string, float64) {
	lower := strings.ToLower(query)
	for _, rule := range costRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label, rule.baseline
			}
		}
	}
	return defaultCostLabel, defaultCostBaseline
}

// costPreamble renders the baseline as a prompt section.
func costPreamble(label string, baseline float64) string {
	return fmt.Sprintf(
		"Rule-based baseline: a %s in India typically starts around ₹%.0f in total costs.",
		label, baseline)
}

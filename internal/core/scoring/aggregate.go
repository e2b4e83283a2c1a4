package scoring

import (
	"slices"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

const dominantVectorCount = 3

// vectorCounter counts exposure vectors and remembers first-encounter order.
type vectorCounter struct {
	order  []domain.ExposureLevel
	counts map[domain.ExposureLevel]int
}

func newVectorCounter() *vectorCounter {
	return &vectorCounter{counts: make(map[domain.ExposureLevel]int)}
}

func (c *vectorCounter) add(level domain.ExposureLevel) {
	if _, seen := c.counts[level]; !seen {
		c.order = append(c.order, level)
	}
	c.counts[level]++
}

// top returns the n most frequent vectors; ties keep encounter order.
func (c *vectorCounter) top(n int) []domain.ExposureLevel {
	ranked := slices.Clone(c.order)
	slices.SortStableFunc(ranked, func(a, b domain.ExposureLevel) int {
		return c.counts[b] - c.counts[a]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (c *vectorCounter) distribution() map[string]int {
	out := make(map[string]int, len(c.counts))
	for level, count := range c.counts {
		out[string(level)] = count
	}
	return out
}

// SummarizeCategory aggregates scored items of one category. Vectors get one vote per item.
func SummarizeCategory(category domain.OnetCategory, items []domain.ScoredItem) domain.CategorySummary {
	if len(items) == 0 {
		return domain.CategorySummary{
			Category:                   category,
			DominantExposureVectors:    []domain.ExposureLevel{},
			ExposureVectorDistribution: map[string]int{},
			Items:                      []domain.ScoredItem{},
		}
	}

	var sumLow, sumHigh float64
	counter := newVectorCounter()
	for _, item := range items {
		sumLow += item.TimeSavedLowPct
		sumHigh += item.TimeSavedHighPct
		for _, level := range item.ExposureLevels {
			counter.add(level)
		}
	}
	n := float64(len(items))

	return domain.CategorySummary{
		Category:                   category,
		ItemCount:                  len(items),
		AvgTimeSavedLowPct:         domain.Round1(sumLow / n),
		AvgTimeSavedHighPct:        domain.Round1(sumHigh / n),
		DominantExposureVectors:    counter.top(dominantVectorCount),
		ExposureVectorDistribution: counter.distribution(),
		Items:                      items,
	}
}

// BuildAutomationAlert computes the weighted occupation composite. Dominant
// vectors get one vote per summary for each vector in that summary's top three.
func BuildAutomationAlert(socCode, title string, summaries []domain.CategorySummary, deltas []domain.ScoreDelta, now time.Time) domain.AutomationAlert {
	var weightedLow, weightedHigh, totalWeight float64
	counter := newVectorCounter()
	for _, cs := range summaries {
		w := domain.CategoryWeight(cs.Category)
		weightedLow += cs.AvgTimeSavedLowPct * w
		weightedHigh += cs.AvgTimeSavedHighPct * w
		totalWeight += w
		for _, level := range cs.DominantExposureVectors {
			counter.add(level)
		}
	}
	if totalWeight > 0 {
		weightedLow /= totalWeight
		weightedHigh /= totalWeight
	}

	if summaries == nil {
		summaries = []domain.CategorySummary{}
	}
	if deltas == nil {
		deltas = []domain.ScoreDelta{}
	}

	alert := domain.AutomationAlert{
		SOCCode:                 socCode,
		OccupationTitle:         title,
		EvaluatedAt:             now.UTC(),
		OverallTimeSavedLowPct:  domain.Round1(weightedLow),
		OverallTimeSavedHighPct: domain.Round1(weightedHigh),
		DominantExposureVectors: counter.top(dominantVectorCount),
		CategorySummaries:       summaries,
		Deltas:                  deltas,
		MethodologyVersion:      domain.MethodologyVersion,
		DiscountFactorsApplied:  domain.DefaultDiscountFactors(),
	}
	alert.OverallAutomationRiskLabel = domain.RiskLabel(alert.MidpointPct())
	return alert
}

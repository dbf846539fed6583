package analysis

// VO2Max is a single fitness estimate over the whole dataset, not per-date.
type VO2Max struct {
	Value          float64 // ml/kg/min, one decimal place
	Classification string
	Percentile     string
}

// vo2Bucket maps an upper bound (exclusive) to a classification. The last
// entry is open-ended.
var vo2Buckets = []struct {
	max        float64
	class      string
	percentile string
}{
	{36, "Poor", "bottom 15%"},
	{42, "Fair", "15th-35th percentile"},
	{46, "Average", "35th-60th percentile"},
	{50, "Good", "60th-75th percentile"},
	{56, "Excellent", "75th-90th percentile"},
	{0, "Superior", "top 10%"},
}

// EstimateVO2Max derives a fitness estimate from the Uth-Sørensen ratio of
// overall max heart rate to median resting heart rate across all daily
// summaries. Returns nil when no heart-rate data exists.
func EstimateVO2Max(summaries map[string]*DailyHRSummary) *VO2Max {
	if len(summaries) == 0 {
		return nil
	}

	overallMax := 0.0
	restingValues := make([]float64, 0, len(summaries))
	for _, sum := range summaries {
		if float64(sum.Max) > overallMax {
			overallMax = float64(sum.Max)
		}
		restingValues = append(restingValues, float64(sum.Resting))
	}

	medianResting := median(restingValues)
	if medianResting <= 0 {
		return nil
	}

	value := round1(15.3 * overallMax / medianResting)
	class, percentile := classifyVO2Max(value)
	return &VO2Max{Value: value, Classification: class, Percentile: percentile}
}

func classifyVO2Max(value float64) (class, percentile string) {
	for _, b := range vo2Buckets[:len(vo2Buckets)-1] {
		if value < b.max {
			return b.class, b.percentile
		}
	}
	last := vo2Buckets[len(vo2Buckets)-1]
	return last.class, last.percentile
}

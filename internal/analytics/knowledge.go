package analytics

import "github.com/pulsehealth/pulsehealth/pkg/types"

// patternProfile is the static knowledge-base entry for one usage pattern:
// fixed confidence plus canned characteristics and recommendations. The
// table is content only — the decision logic lives in usage.go so either
// side can change or be tested independently.
type patternProfile struct {
	confidence      float64
	characteristics []string
	recommendations []string
}

var patternProfiles = map[types.UsagePatternType]patternProfile{
	types.PatternGaming: {
		confidence: 0.80,
		characteristics: []string{
			"sustained high GPU load",
			"elevated CPU load during sessions",
			"bursty thermal profile",
		},
		recommendations: []string{
			"keep GPU drivers current",
			"verify case airflow and fan curves before long sessions",
			"move the page file off the game drive",
		},
	},
	types.PatternDevelopment: {
		confidence: 0.80,
		characteristics: []string{
			"high CPU load from builds and indexing",
			"large memory working set",
			"heavy small-file disk traffic",
		},
		recommendations: []string{
			"exclude build output directories from antivirus scanning",
			"add memory before upgrading the CPU",
			"keep source trees on the fastest drive",
		},
	},
	types.PatternContentCreation: {
		confidence: 0.75,
		characteristics: []string{
			"very large memory working set",
			"sustained GPU or disk throughput during renders",
			"long periods of full-machine load",
		},
		recommendations: []string{
			"use a dedicated scratch drive for media caches",
			"schedule exports overnight to avoid thermal stacking",
			"maximize installed memory",
		},
	},
	types.PatternOffice: {
		confidence: 0.85,
		characteristics: []string{
			"low average CPU and memory load",
			"idle GPU",
			"interactive, short-burst usage",
		},
		recommendations: []string{
			"enable aggressive power saving",
			"an SSD upgrade gives the largest perceived speedup",
			"reduce startup programs",
		},
	},
	types.PatternServer: {
		confidence: 0.70,
		characteristics: []string{
			"steady, low-variance CPU load around the clock",
			"long uptime between reboots",
			"load independent of time of day",
		},
		recommendations: []string{
			"schedule maintenance reboots for patch uptake",
			"monitor disk health indicators closely",
			"consider ECC memory for long-running workloads",
		},
	},
	types.PatternGeneralUse: {
		confidence: 0.50,
		characteristics: []string{
			"mixed workload with no dominant signature",
		},
		recommendations: []string{
			"keep the operating system and drivers updated",
			"re-run classification after more history accumulates",
			"remove unused startup programs",
		},
	},
}

// lookupPattern materializes a UsagePattern from the knowledge table.
// Slices are copied so callers cannot mutate the table.
func lookupPattern(t types.UsagePatternType) types.UsagePattern {
	p := patternProfiles[t]
	return types.UsagePattern{
		Type:            t,
		Confidence:      p.confidence,
		Characteristics: append([]string(nil), p.characteristics...),
		Recommendations: append([]string(nil), p.recommendations...),
	}
}

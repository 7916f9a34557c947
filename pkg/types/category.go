package types

// Category is a named metric dimension. Scalar scores recorded under a
// category denote severity: higher = worse health.
//
// The set below is closed for classification purposes; any other string is
// carried through the pipeline untouched (summarized, detected, ranked) but
// never participates in usage-pattern branching.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryMemory  Category = "memory"
	CategoryDisk    Category = "disk"
	CategoryGPU     Category = "gpu"
	CategoryNetwork Category = "network"
	CategoryThermal Category = "thermal"
	CategorySystem  Category = "system"
)

// Categories lists the known categories in canonical order.
var Categories = []Category{
	CategoryCPU,
	CategoryMemory,
	CategoryDisk,
	CategoryGPU,
	CategoryNetwork,
	CategoryThermal,
	CategorySystem,
}

// Known reports whether c is one of the canonical categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

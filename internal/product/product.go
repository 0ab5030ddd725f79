package product

// Product is the catalog view of a scanned code. Found is false when the
// catalog has no entry; callers then fall back to a generic record.
type Product struct {
	Code      string
	Name      string
	Category  string
	Nutrition map[string]float64
	ImageURL  string
	Found     bool
}

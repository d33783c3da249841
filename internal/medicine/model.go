package medicine

type Medicine struct {
	ID           int64
	Name         string
	Manufacturer string
	Composition  string
	Price        float64
	SearchTag    string
}

type Substitute struct {
	ID           int64
	MedicineID   int64
	Name         string
	Manufacturer string
	Composition  string
	Price        float64
}

// Lookup is the answer to "what can replace this medicine": the matched
// original plus every known substitute, cheapest alternatives included.
type Lookup struct {
	Medicine    Medicine
	Substitutes []Substitute
}

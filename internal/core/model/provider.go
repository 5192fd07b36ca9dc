package model

// Relation is a kind of node that can be joined onto a provider lookup.
type Relation string

const (
	RelationProducts         Relation = "products"
	RelationLifeScienceFirms Relation = "life_science_firms"
)

// KnownRelations is the closed vocabulary accepted in the `type` filter.
var KnownRelations = []Relation{RelationProducts, RelationLifeScienceFirms}

// FilterSet is the set of relations a caller asked to join.
type FilterSet map[Relation]struct{}

// ParseRelations builds a FilterSet from raw query values.
// Values outside KnownRelations are ignored.
func ParseRelations(values []string) FilterSet {
	fs := FilterSet{}
	for _, v := range values {
		for _, known := range KnownRelations {
			if Relation(v) == known {
				fs[known] = struct{}{}
			}
		}
	}
	return fs
}

func NewFilterSet(relations ...Relation) FilterSet {
	fs := FilterSet{}
	for _, r := range relations {
		fs[r] = struct{}{}
	}
	return fs
}

func (fs FilterSet) Has(r Relation) bool {
	_, ok := fs[r]
	return ok
}

// Shape names the query template a filter set resolves to. Used as a metric label.
func (fs FilterSet) Shape() string {
	switch {
	case fs.Has(RelationProducts) && fs.Has(RelationLifeScienceFirms):
		return "products_and_firms"
	case fs.Has(RelationProducts):
		return "products"
	case fs.Has(RelationLifeScienceFirms):
		return "firms"
	default:
		return "none"
	}
}

type ResultRow struct {
	DisplayName         string `json:"display_name"`
	ProductName         string `json:"product_name"`
	LifeScienceFirmName string `json:"life_science_firm_name"`
}

// ResultRowV1 is the row shape of the single-filter contract, which has no firm field.
type ResultRowV1 struct {
	DisplayName string `json:"display_name"`
	ProductName string `json:"product_name"`
}

// Page is a skip/limit window over the database's match order.
type Page struct {
	Skip  int
	Limit int
}

package catalog

import (
	"strconv"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// Product is a single entry of the static insurance catalog. The catalog is
// read-only input to the advisory core; prices are in whole VND.
type Product struct {
	// ID is the stable catalog identifier
	ID string

	// Name is the display name
	Name string

	// Description is the one-paragraph marketing description
	Description string

	// BasePrice is the undiscounted premium in VND
	BasePrice int64

	// Coverage describes the covered amount or scope
	Coverage string

	// Duration describes the coverage period
	Duration string

	// BestFor summarizes the situations the product is marketed at
	BestFor string
}

// Product catalog identifiers
const (
	TravelDomestic      = "travel_domestic"
	TravelInternational = "travel_international"
	MotorExtension      = "motor_extension"
	FamilyHealth        = "family_health"
	Accident            = "accident"
	LifeSavings         = "life_savings"
)

// products is the built-in catalog in stable display order.
var products = []Product{
	{
		ID:          TravelDomestic,
		Name:        "Domestic Travel Insurance",
		Description: "Comprehensive coverage for travel within Vietnam. Covers medical emergencies, trip cancellation, lost baggage, and 24/7 assistance.",
		BasePrice:   150000,
		Coverage:    "50,000,000 VND",
		Duration:    "Per trip (up to 15 days)",
		BestFor:     "Weekend trips, Tet travel to hometown, domestic vacations",
	},
	{
		ID:          TravelInternational,
		Name:        "International Travel Insurance",
		Description: "Full protection for overseas travel. Includes medical coverage up to 100 million VND, emergency evacuation, and trip interruption.",
		BasePrice:   500000,
		Coverage:    "100,000,000 VND",
		Duration:    "Annual coverage",
		BestFor:     "ASEAN travel, long-distance flights, adventure trips",
	},
	{
		ID:          MotorExtension,
		Name:        "Motor Insurance Highway Extension",
		Description: "Extends your motor insurance for long-distance travel. Covers highway accidents, passenger protection, and roadside assistance.",
		BasePrice:   250000,
		Coverage:    "Extended distance + passengers",
		Duration:    "30 days",
		BestFor:     "Tet journey home, long road trips, highway travel",
	},
	{
		ID:          FamilyHealth,
		Name:        "Family Health Package",
		Description: "Complete health coverage for entire family. Includes annual checkups, hospitalization, outpatient care, and dental.",
		BasePrice:   3500000,
		Coverage:    "Up to 500,000,000 VND",
		Duration:    "Annual",
		BestFor:     "Families with children, comprehensive protection, peace of mind",
	},
	{
		ID:          Accident,
		Name:        "Personal Accident Insurance",
		Description: "Protection against accidents resulting in injury or death. Covers medical expenses, disability benefits, and death benefits.",
		BasePrice:   300000,
		Coverage:    "200,000,000 VND",
		Duration:    "Annual",
		BestFor:     "Active lifestyle, motorbike riders, additional protection",
	},
	{
		ID:          LifeSavings,
		Name:        "Life + Savings Insurance",
		Description: "Dual benefit policy combining life protection with savings. Guaranteed returns plus insurance coverage for family.",
		BasePrice:   5000000,
		Coverage:    "1,000,000,000 VND + Returns",
		Duration:    "Annual premium",
		BestFor:     "Long-term planning, wealth building, family security",
	},
}

// All returns the full catalog in stable order. The returned slice is a copy;
// callers may not mutate the catalog.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Get returns the product with the given id.
func Get(id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, errors.Wrap(errors.ErrUnknownProduct, "catalog lookup %q", id)
}

// MustGet returns the product with the given id and panics when the id is not
// in the catalog. Only for use with the package's own product constants.
func MustGet(id string) Product {
	p, err := Get(id)
	if err != nil {
		panic(err)
	}
	return p
}

// FormatVND renders an amount in whole VND with thousands separators,
// e.g. 3500000 -> "3,500,000".
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if negative {
		return "-" + string(out)
	}
	return string(out)
}

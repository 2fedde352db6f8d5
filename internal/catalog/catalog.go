package catalog

import (
	"github.com/anodeen/HeadShot/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	MinTeamSize = 1
	MaxTeamSize = 50

	// Team orders above one seat get a 10% bulk discount, truncated toward zero.
	bulkDiscountFactor = "0.9"
)

// Package describes one purchasable headshot bundle.
type Package struct {
	Name          string `json:"name"`
	HeadshotCount int    `json:"headshotCount"`
	PriceCents    int64  `json:"priceCents"`
	Delivery      string `json:"delivery"`
}

// BrandingPreset is a fixed crop preset offered on the marketing surface.
type BrandingPreset struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var packages = map[enums.Plan]Package{
	enums.PlanBasic:        {Name: "Basic", HeadshotCount: 40, PriceCents: 2900, Delivery: "2–3 hr"},
	enums.PlanProfessional: {Name: "Professional", HeadshotCount: 100, PriceCents: 4900, Delivery: "1–2 hr"},
	enums.PlanExecutive:    {Name: "Executive", HeadshotCount: 200, PriceCents: 7900, Delivery: "Priority"},
}

var brandingPresets = []BrandingPreset{
	{ID: "linkedin", Label: "LinkedIn profile", Width: 400, Height: 400},
	{ID: "email", Label: "Email signature", Width: 320, Height: 320},
	{ID: "team", Label: "Team page card", Width: 800, Height: 600},
}

// Packages returns the purchasable catalog keyed by plan identifier.
func Packages() map[enums.Plan]Package {
	out := make(map[enums.Plan]Package, len(packages))
	for k, v := range packages {
		out[k] = v
	}
	return out
}

// LookupPackage returns the package for a plan, reporting whether it exists.
func LookupPackage(plan enums.Plan) (Package, bool) {
	pkg, ok := packages[plan]
	return pkg, ok
}

// BrandingPresets returns the fixed crop presets.
func BrandingPresets() []BrandingPreset {
	out := make([]BrandingPreset, len(brandingPresets))
	copy(out, brandingPresets)
	return out
}

// OrderAmountCents computes the server-side price for a plan and team size.
// Single-seat orders pay the base price; larger teams pay
// floor(base * teamSize * 0.9). Callers must validate plan and team size first.
func OrderAmountCents(plan enums.Plan, teamSize int) int64 {
	base := packages[plan].PriceCents
	if teamSize <= 1 {
		return base
	}
	gross := decimal.NewFromInt(base).Mul(decimal.NewFromInt(int64(teamSize)))
	discounted := gross.Mul(decimal.RequireFromString(bulkDiscountFactor))
	return discounted.Floor().IntPart()
}

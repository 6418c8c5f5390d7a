package treeform

import (
	"math"

	"github.com/UnknownOlympus/treemap/internal/models"
)

const inchesPerFoot = 12

// Patch is the set of tree attributes a submission provides. Nil fields are
// left untouched when the patch is applied.
type Patch struct {
	AddressStreet   *string
	GeocodedAddress *string
	AddressCity     *string
	AddressZip      *string

	PlotWidthFeet    *int
	PlotWidthInches  *int
	PlotLengthFeet   *int
	PlotLengthInches *int

	PlotType                   *string
	PowerlineConflictPotential *string
	Height                     *float64
	CanopyHeight               *int
	DBH                        *float64
	SidewalkDamage             *string
	Condition                  *string
	CanopyCondition            *string
}

// PatchFromCleaned selects the present values of c. A street address also
// seeds the geocoded address unless one was given explicitly, and a trunk
// circumference is converted to a diameter.
func PatchFromCleaned(c *Cleaned) Patch {
	p := Patch{
		AddressCity:                nonEmpty(c.City),
		AddressZip:                 nonEmpty(c.Zip),
		PlotWidthFeet:              c.PlotWidth,
		PlotWidthInches:            c.PlotWidthIn,
		PlotLengthFeet:             c.PlotLength,
		PlotLengthInches:           c.PlotLengthIn,
		PlotType:                   nonEmpty(c.PlotType),
		PowerlineConflictPotential: nonEmpty(c.PowerLines),
		SidewalkDamage:             nonEmpty(c.SidewalkDamage),
		Condition:                  nonEmpty(c.Condition),
		CanopyCondition:            nonEmpty(c.CanopyCondition),
	}

	if street := nonEmpty(c.Street); street != nil {
		p.AddressStreet = street
		p.GeocodedAddress = street
	}
	if geocoded := nonEmpty(c.GeocodeAddress); geocoded != nil {
		p.GeocodedAddress = geocoded
	}

	if present(c.Height) {
		p.Height = c.Height
	}
	if c.CanopyHeight != nil && *c.CanopyHeight != 0 {
		p.CanopyHeight = c.CanopyHeight
	}
	if present(c.DBH) {
		dbh := *c.DBH
		if c.DBHType == DBHCircumference {
			dbh /= math.Pi
		}
		p.DBH = &dbh
	}

	return p
}

// Apply merges the patch onto tree.
func (p Patch) Apply(tree *models.Tree) {
	if p.AddressStreet != nil {
		tree.AddressStreet = *p.AddressStreet
	}
	if p.GeocodedAddress != nil {
		tree.GeocodedAddress = *p.GeocodedAddress
	}
	setIfPresent(&tree.AddressCity, p.AddressCity)
	setIfPresent(&tree.AddressZip, p.AddressZip)

	tree.PlotWidth = feetAndInches(tree.PlotWidth, p.PlotWidthFeet, p.PlotWidthInches)
	tree.PlotLength = feetAndInches(tree.PlotLength, p.PlotLengthFeet, p.PlotLengthInches)

	setIfPresent(&tree.PlotType, p.PlotType)
	setIfPresent(&tree.PowerlineConflictPotential, p.PowerlineConflictPotential)
	setIfPresent(&tree.Height, p.Height)
	setIfPresent(&tree.CanopyHeight, p.CanopyHeight)
	setIfPresent(&tree.DBH, p.DBH)
	setIfPresent(&tree.SidewalkDamage, p.SidewalkDamage)
	setIfPresent(&tree.Condition, p.Condition)
	setIfPresent(&tree.CanopyCondition, p.CanopyCondition)
}

// feetAndInches replaces current with the whole feet when given, then adds the
// inches on top of whatever value is set at that point.
func feetAndInches(current *float64, feet, inches *int) *float64 {
	if feet != nil {
		v := float64(*feet)
		current = &v
	}
	if inches != nil {
		var base float64
		if current != nil {
			base = *current
		}
		v := base + float64(*inches)/inchesPerFoot
		current = &v
	}

	return current
}

func setIfPresent[T any](dst **T, v *T) {
	if v != nil {
		val := *v
		*dst = &val
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

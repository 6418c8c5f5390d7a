package treeform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/UnknownOlympus/treemap/internal/geometry"
)

// Field length limits.
const (
	maxAddressLen  = 200
	maxGeocodeLen  = 255
	maxLocationLen = 200
	maxChoiceLen   = 50
)

// Field error messages.
const (
	msgRequired    = "This field is required."
	msgNumber      = "Enter a number."
	msgWholeNumber = "Enter a whole number."
	msgZip         = "Enter a zip code in the format XXXXX or XXXXX-XXXX."
	msgChoice      = "Select a valid choice."
	msgLocation    = "Enter a map location in the format <lat>,<lon>."
)

var zipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// Plot size choices offered by the entry form; 99 stands for "15+".
var (
	plotFeetChoices   = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true, 11: true, 12: true, 13: true, 14: true, 15: true, 99: true}
	plotInchesChoices = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true, 11: true}
)

// Parse types every field of in. It returns either the cleaned values or a
// FieldErrors listing every field that could not be typed.
func Parse(in Input) (*Cleaned, error) {
	p := parser{errs: FieldErrors{}}
	out := &Cleaned{
		Street:             p.text("edit_address_street", in.Street, maxAddressLen, true),
		GeocodeAddress:     p.text("geocode_address", in.GeocodeAddress, maxGeocodeLen, false),
		City:               p.text("edit_address_city", in.City, maxAddressLen, false),
		Zip:                p.zip("edit_address_zip", in.Zip),
		Lat:                p.float("lat", in.Lat),
		Lon:                p.float("lon", in.Lon),
		InitialMapLocation: p.location("initial_map_location", in.InitialMapLocation),
		SpeciesSymbol:      strings.TrimSpace(in.SpeciesID),
		DBH:                p.float("dbh", in.DBH),
		DBHType:            DBHType(p.choice("dbh_type", in.DBHType, string(DBHDiameter), string(DBHCircumference))),
		Height:             p.float("height", in.Height),
		CanopyHeight:       p.integer("canopy_height", in.CanopyHeight),
		PlotWidth:          p.intChoice("plot_width", in.PlotWidth, plotFeetChoices),
		PlotWidthIn:        p.intChoice("plot_width_in", in.PlotWidthIn, plotInchesChoices),
		PlotLength:         p.intChoice("plot_length", in.PlotLength, plotFeetChoices),
		PlotLengthIn:       p.intChoice("plot_length_in", in.PlotLengthIn, plotInchesChoices),
		PlotType:           p.text("plot_type", in.PlotType, maxChoiceLen, false),
		PowerLines:         p.text("power_lines", in.PowerLines, maxChoiceLen, false),
		SidewalkDamage:     p.text("sidewalk_damage", in.SidewalkDamage, maxChoiceLen, false),
		Condition:          p.text("condition", in.Condition, maxChoiceLen, false),
		CanopyCondition:    p.text("canopy_condition", in.CanopyCondition, maxChoiceLen, false),
		Target:             Target(p.choice("target", in.Target, string(TargetAddSame), string(TargetAdd), string(TargetEdit))),
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if out.Target == "" {
		out.Target = TargetEdit
	}

	return out, nil
}

// parser accumulates field errors while typing values.
type parser struct {
	errs FieldErrors
}

func (p *parser) text(field, raw string, maxLen int, required bool) string {
	v := strings.TrimSpace(raw)
	if v == "" && required {
		p.errs[field] = msgRequired
		return ""
	}
	if utf8.RuneCountInString(v) > maxLen {
		p.errs[field] = fmt.Sprintf("Ensure this value has at most %d characters (it has %d).",
			maxLen, utf8.RuneCountInString(v))
		return ""
	}

	return v
}

func (p *parser) zip(field, raw string) string {
	v := strings.TrimSpace(raw)
	if v != "" && !zipPattern.MatchString(v) {
		p.errs[field] = msgZip
		return ""
	}

	return v
}

func (p *parser) float(field, raw string) *float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		p.errs[field] = msgNumber
		return nil
	}

	return &f
}

func (p *parser) integer(field, raw string) *int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs[field] = msgWholeNumber
		return nil
	}

	return &n
}

func (p *parser) choice(field, raw string, allowed ...string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	p.errs[field] = msgChoice

	return ""
}

func (p *parser) intChoice(field, raw string, allowed map[int]bool) *int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !allowed[n] {
		p.errs[field] = msgChoice
		return nil
	}

	return &n
}

func (p *parser) location(field, raw string) string {
	v := p.text(field, raw, maxLocationLen, false)
	if v == "" {
		return ""
	}
	if _, err := geometry.ParseLatLon(v); err != nil {
		p.errs[field] = msgLocation
		return ""
	}

	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

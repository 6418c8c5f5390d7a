// Package treeform turns a raw tree-entry submission into validated, typed
// values and the patch that is merged onto a new tree record.
package treeform

// Input is a tree-entry submission exactly as posted. Every field is kept as
// text; Parse does the typing.
type Input struct {
	Street             string `form:"edit_address_street"`
	GeocodeAddress     string `form:"geocode_address"`
	City               string `form:"edit_address_city"`
	Zip                string `form:"edit_address_zip"`
	Lat                string `form:"lat"`
	Lon                string `form:"lon"`
	InitialMapLocation string `form:"initial_map_location"`
	SpeciesName        string `form:"species_name"` // display text of the species picker; species_id is what links
	SpeciesID          string `form:"species_id"`
	DBH                string `form:"dbh"`
	DBHType            string `form:"dbh_type"`
	Height             string `form:"height"`
	CanopyHeight       string `form:"canopy_height"`
	PlotWidth          string `form:"plot_width"`
	PlotWidthIn        string `form:"plot_width_in"`
	PlotLength         string `form:"plot_length"`
	PlotLengthIn       string `form:"plot_length_in"`
	PlotType           string `form:"plot_type"`
	PowerLines         string `form:"power_lines"`
	SidewalkDamage     string `form:"sidewalk_damage"`
	Condition          string `form:"condition"`
	CanopyCondition    string `form:"canopy_condition"`
	Target             string `form:"target"`
}

// DBHType tells whether the trunk measurement is a diameter or a circumference.
type DBHType string

// Trunk measurement kinds.
const (
	DBHDiameter      DBHType = "diameter"
	DBHCircumference DBHType = "circumference"
)

// Target is where the submitter wants to go after a successful save.
type Target string

// Follow-up targets offered by the entry form.
const (
	TargetAddSame Target = "addsame" // add another tree with the same details
	TargetAdd     Target = "add"     // add another tree with new details
	TargetEdit    Target = "edit"    // done
)

// Cleaned holds typed submission values. Nil pointers and empty strings mean
// the field was left blank.
type Cleaned struct {
	Street             string
	GeocodeAddress     string
	City               string
	Zip                string
	Lat                *float64
	Lon                *float64
	InitialMapLocation string
	SpeciesSymbol      string
	DBH                *float64
	DBHType            DBHType
	Height             *float64
	CanopyHeight       *int
	PlotWidth          *int
	PlotWidthIn        *int
	PlotLength         *int
	PlotLengthIn       *int
	PlotType           string
	PowerLines         string
	SidewalkDamage     string
	Condition          string
	CanopyCondition    string
	Target             Target
}

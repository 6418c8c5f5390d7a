package treeform_test

import (
	"strings"
	"testing"

	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() treeform.Input {
	return treeform.Input{
		Street:             "1500 Market St",
		City:               "Philadelphia",
		Zip:                "19102",
		Lat:                "39.9526",
		Lon:                "-75.1652",
		InitialMapLocation: "39.95,-75.16",
		SpeciesID:          "ACRU",
		DBH:                "12.5",
		DBHType:            "diameter",
		Height:             "40",
		CanopyHeight:       "30",
		PlotWidth:          "3",
		PlotWidthIn:        "6",
		PlotType:           "1",
		PowerLines:         "2",
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("success - typed values", func(t *testing.T) {
		t.Parallel()
		c, err := treeform.Parse(validInput())

		require.NoError(t, err)
		assert.Equal(t, "1500 Market St", c.Street)
		require.NotNil(t, c.Lat)
		assert.InDelta(t, 39.9526, *c.Lat, 1e-12)
		require.NotNil(t, c.CanopyHeight)
		assert.Equal(t, 30, *c.CanopyHeight)
		require.NotNil(t, c.PlotWidthIn)
		assert.Equal(t, 6, *c.PlotWidthIn)
		assert.Nil(t, c.PlotLength)
		assert.Equal(t, treeform.DBHDiameter, c.DBHType)
		assert.Equal(t, "ACRU", c.SpeciesSymbol)
		assert.Equal(t, treeform.TargetEdit, c.Target)
	})

	t.Run("success - blank coordinates are left absent", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Lat, in.Lon = "", "  "

		c, err := treeform.Parse(in)

		require.NoError(t, err)
		assert.Nil(t, c.Lat)
		assert.Nil(t, c.Lon)
	})

	t.Run("success - species name is display only", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.SpeciesName = "Not A Real Tree " + strings.Repeat("x", 300)

		c, err := treeform.Parse(in)
		require.NoError(t, err)
		plain, err := treeform.Parse(validInput())
		require.NoError(t, err)

		assert.Equal(t, "ACRU", c.SpeciesSymbol)
		assert.Equal(t, plain, c)
	})

	t.Run("success - values are trimmed", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Street = "  1500 Market St \n"
		in.Target = " addsame "

		c, err := treeform.Parse(in)

		require.NoError(t, err)
		assert.Equal(t, "1500 Market St", c.Street)
		assert.Equal(t, treeform.TargetAddSame, c.Target)
	})

	t.Run("error - every bad field is reported", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Street = ""
		in.Zip = "1910"
		in.Lat = "north"
		in.CanopyHeight = "30.5"
		in.DBHType = "radius"
		in.PlotWidth = "16"
		in.PlotLengthIn = "12"
		in.InitialMapLocation = "39.95"
		in.City = strings.Repeat("x", 201)
		in.Target = "elsewhere"

		_, err := treeform.Parse(in)

		var fieldErrs treeform.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "This field is required.", fieldErrs["edit_address_street"])
		assert.Contains(t, fieldErrs, "edit_address_zip")
		assert.Equal(t, "Enter a number.", fieldErrs["lat"])
		assert.Equal(t, "Enter a whole number.", fieldErrs["canopy_height"])
		assert.Equal(t, "Select a valid choice.", fieldErrs["dbh_type"])
		assert.Equal(t, "Select a valid choice.", fieldErrs["plot_width"])
		assert.Equal(t, "Select a valid choice.", fieldErrs["plot_length_in"])
		assert.Contains(t, fieldErrs, "initial_map_location")
		assert.Contains(t, fieldErrs["edit_address_city"], "at most 200 characters")
		assert.Contains(t, fieldErrs, "target")
		assert.Len(t, fieldErrs, 10)
	})

	t.Run("success - 15+ plot width choice", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.PlotWidth = "99"

		c, err := treeform.Parse(in)

		require.NoError(t, err)
		assert.Equal(t, 99, *c.PlotWidth)
	})

	t.Run("error - non-finite numbers", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Height = "NaN"
		in.DBH = "+Inf"

		_, err := treeform.Parse(in)

		var fieldErrs treeform.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "height")
		assert.Contains(t, fieldErrs, "dbh")
	})
}

func TestFieldErrorsMessage(t *testing.T) {
	t.Parallel()
	err := treeform.FieldErrors{"lon": "Enter a number.", "lat": "Enter a number."}

	assert.Equal(t, "invalid form fields: lat: Enter a number.; lon: Enter a number.", err.Error())
}

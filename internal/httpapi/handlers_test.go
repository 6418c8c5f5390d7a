package httpapi_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/UnknownOlympus/treemap/internal/geocoding"
	"github.com/UnknownOlympus/treemap/internal/httpapi"
	"github.com/UnknownOlympus/treemap/internal/models"
	"github.com/UnknownOlympus/treemap/internal/service"
	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/UnknownOlympus/treemap/test/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postTree(router http.Handler, form url.Values, editor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/trees", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if editor != "" {
		req.Header.Set(httpapi.HeaderRemoteUser, editor)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddTreeHandler(t *testing.T) {
	form := url.Values{
		"edit_address_street": {"1500 Market St"},
		"lat":                 {"39.9526"},
		"lon":                 {"-75.1652"},
		"species_id":          {"ACRU"},
		"target":              {"add"},
	}
	bound := treeform.Input{
		Street:    "1500 Market St",
		Lat:       "39.9526",
		Lon:       "-75.1652",
		SpeciesID: "ACRU",
		Target:    "add",
	}

	t.Run("error - missing user header", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))

		rec := postTree(router, form, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success - created", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))
		trees.On("AddTree", mock.Anything, bound, "alice").
			Return(&models.Tree{ID: 42}, treeform.TargetAdd, nil).Once()

		rec := postTree(router, form, "alice")

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decode(t, rec)
		assert.InDelta(t, 42, body["id"], 0)
		assert.Equal(t, "add", body["target"])
	})

	t.Run("error - validation failure", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))
		vErr := &treeform.ValidationError{Kind: treeform.KindCanopyExceedsHeight, Message: "Canopy height cannot be larger than tree height."}
		trees.On("AddTree", mock.Anything, bound, "alice").Return(nil, treeform.Target(""), vErr).Once()

		rec := postTree(router, form, "alice")

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "canopy_exceeds_height", body["kind"])
		assert.Equal(t, vErr.Message, body["error"])
	})

	t.Run("error - field errors", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))
		fieldErrs := treeform.FieldErrors{"height": "Enter a number."}
		trees.On("AddTree", mock.Anything, bound, "alice").Return(nil, treeform.Target(""), fieldErrs).Once()

		rec := postTree(router, form, "alice")

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, map[string]any{"height": "Enter a number."}, body["fields"])
	})

	t.Run("error - unknown editor", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))
		err := fmt.Errorf("%w: %q", service.ErrUnknownEditor, "mallory")
		trees.On("AddTree", mock.Anything, bound, "mallory").Return(nil, treeform.Target(""), err).Once()

		rec := postTree(router, form, "mallory")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("error - internal failure is not leaked", func(t *testing.T) {
		trees := mocks.NewTreeAdder(t)
		router := httpapi.NewRouter(slog.Default(), trees, mocks.NewLocator(t))
		trees.On("AddTree", mock.Anything, bound, "alice").Return(nil, treeform.Target(""), assert.AnError).Once()

		rec := postTree(router, form, "alice")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestGeocodeHandler(t *testing.T) {
	get := func(router http.Handler, address string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/geocode?address="+url.QueryEscape(address), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("success - location returned", func(t *testing.T) {
		locator := mocks.NewLocator(t)
		router := httpapi.NewRouter(slog.Default(), mocks.NewTreeAdder(t), locator)
		locator.On("Locate", mock.Anything, "1500 Market St").Return(&service.Location{
			Latitude: 39.9526, Longitude: -75.1652, InitialMapLocation: "39.9526,-75.1652",
		}, nil).Once()

		rec := get(router, "1500 Market St")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.InDelta(t, 39.9526, body["latitude"], 1e-12)
		assert.InDelta(t, -75.1652, body["longitude"], 1e-12)
		assert.Equal(t, "39.9526,-75.1652", body["initial_map_location"])
	})

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"error - blank address", service.ErrEmptyAddress, http.StatusBadRequest},
		{"error - no match", fmt.Errorf("failed to geocode address: %w", geocoding.ErrNoMatch), http.StatusNotFound},
		{"error - provider failure", assert.AnError, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			locator := mocks.NewLocator(t)
			router := httpapi.NewRouter(slog.Default(), mocks.NewTreeAdder(t), locator)
			locator.On("Locate", mock.Anything, "somewhere").Return(nil, tc.err).Once()

			rec := get(router, "somewhere")

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

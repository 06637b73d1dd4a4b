package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBodyLimitsSize(t *testing.T) {
	var small struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"title":"Lunch"}`))
	require.NoError(t, decodeBody(httptest.NewRecorder(), req, &small))
	assert.Equal(t, "Lunch", small.Title)

	huge := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(huge))
	var big struct {
		Title string `json:"title"`
	}
	err := decodeBody(httptest.NewRecorder(), req, &big)
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestParseFilterRejectsBadDates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/expenses?category=Food&startDate=2025-01-01&endDate=nope", nil)
	_, err := parseFilter(req, "category")
	require.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/expenses?category=Food&endDate=2025-01-31T10:00", nil)
	filter, err := parseFilter(req, "category")
	require.NoError(t, err)
	assert.Equal(t, "Food", filter.Class)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, 10, filter.EndDate.Hour())
}

package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestSearcher(t *testing.T, status int, body string) (*AlphaVantageSearcher, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "SYMBOL_SEARCH", r.URL.Query().Get("function"))
		assert.Equal(t, "key", r.URL.Query().Get("apikey"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	s := NewAlphaVantageSearcher("key", "", 60, time.Second)
	s.BaseURL = srv.URL
	return s, &calls
}

func TestAlphaVantageSearcher_ProviderOrder(t *testing.T) {
	s, calls := newTestSearcher(t, http.StatusOK, `{"bestMatches":[
		{"1. symbol":"TSCO.LON","2. name":"Tesco PLC","4. region":"United Kingdom"},
		{"1. symbol":"TSCDF","2. name":"Tesco plc","4. region":"United States"}
	]}`)

	got, err := s.SearchSymbols(context.Background(), "tesco")
	require.NoError(t, err)
	assert.Equal(t, []model.TickerSuggestion{
		{Symbol: "TSCO.LON", Name: "Tesco PLC", Region: "United Kingdom"},
		{Symbol: "TSCDF", Name: "Tesco plc", Region: "United States"},
	}, got)
	assert.Equal(t, 1, *calls)
}

func TestAlphaVantageSearcher_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apperr.Kind
	}{
		{"note", http.StatusOK, `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute"}`, apperr.KindRateLimited},
		{"information", http.StatusOK, `{"Information":"daily rate limit reached"}`, apperr.KindRateLimited},
		{"429", http.StatusTooManyRequests, ``, apperr.KindRateLimited},
		{"error message", http.StatusOK, `{"Error Message":"Invalid API call"}`, apperr.KindInternal},
		{"server error", http.StatusInternalServerError, `down`, apperr.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSearcher(t, tt.status, tt.body)
			_, err := s.SearchSymbols(context.Background(), "ibm")
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestAlphaVantageSearcher_LocalAllowance(t *testing.T) {
	s, calls := newTestSearcher(t, http.StatusOK, `{"bestMatches":[]}`)
	s.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := s.SearchSymbols(context.Background(), "a")
	require.NoError(t, err)
	_, err = s.SearchSymbols(context.Background(), "ap")
	require.Error(t, err)
	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
	assert.Equal(t, 1, *calls, "throttled call never reaches the provider")
}

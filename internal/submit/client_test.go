package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maquinex/import-service/internal/types"
)

func sampleRecords() []types.ParsedRow {
	return []types.ParsedRow{
		{
			Model:        types.StringPtr("PC200-8"),
			Serial:       types.StringPtr("C12345"),
			Tipo:         types.StringPtr("COMPRA_DIRECTA"),
			PurchaseType: types.StringPtr("COMPRA_DIRECTA"),
			Extra:        map[string]string{"invoice_number": "INV-001"},
		},
		{
			Model:        types.StringPtr("320D2"),
			Tipo:         types.StringPtr("SUBASTA"),
			PurchaseType: types.StringPtr("SUBASTA"),
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Internal-API-Key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		json.NewEncoder(w).Encode(types.UploadResult{
			Success:        true,
			Inserted:       2,
			TotalProcessed: 2,
		})
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, "secret")
	result, err := s.Submit(context.Background(), sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, "/api/purchases/bulk-upload", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Inserted)
	assert.False(t, result.HasObservations())

	records, ok := gotBody["records"].([]any)
	require.True(t, ok, "request body must carry a records array")
	require.Len(t, records, 2)

	// Extra fields are flattened into the record object.
	first, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INV-001", first["invoice_number"])
	assert.Equal(t, "COMPRA_DIRECTA", first["purchase_type"])
}

func TestSubmitObservationsAreNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.UploadResult{
			Success:        true,
			Inserted:       1,
			Duplicates:     1,
			TotalProcessed: 2,
			Errors:         []string{"registro 2: duplicado por serial"},
		})
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, "")
	result, err := s.Submit(context.Background(), sampleRecords())
	require.NoError(t, err, "server-side observations are relayed, not failed")
	assert.True(t, result.HasObservations())
	assert.Equal(t, 1, result.Duplicates)
}

func TestSubmitNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, "")
	_, err := s.Submit(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
	assert.Contains(t, err.Error(), "database unavailable")
}

// Exactly one POST per Submit call: a failure must not trigger a replay that
// would inflate the server's duplicate counts.
func TestSubmitDoesNotRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, "")
	_, err := s.Submit(context.Background(), sampleRecords())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSubmitNoAPIKeyHeaderWhenUnset(t *testing.T) {
	var hasHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasHeader = r.Header["X-Internal-Api-Key"]
		json.NewEncoder(w).Encode(types.UploadResult{Success: true})
	}))
	defer server.Close()

	s := NewSubmitter(server.URL, "")
	_, err := s.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, hasHeader)
}

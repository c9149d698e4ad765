package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homematch/preferences/internal/profile"
	storetest "github.com/homematch/preferences/store/test"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	testStore := storetest.NewTestingStore(context.Background(), t)
	testProfile := &profile.Profile{Mode: "dev", Driver: "sqlite"}

	e := echo.New()
	NewAPIV1Service(testProfile, testStore).Register(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUpsertThenGet(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, int32(1500), created.MaxBudget)
	assert.Equal(t, int32(40), created.MinSize)
	assert.Equal(t, "downtown", created.PreferredLocation)
	assert.Equal(t, int32(2), created.NumRooms)
	assert.NotZero(t, created.CreatedTs)

	rec = doRequest(e, http.MethodGet, "/u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)
}

func TestUpsertReplacesExisting(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var first Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":2000,"minSize":55,"preferredLocation":"uptown","numRooms":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var second Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedTs, second.CreatedTs)
	assert.Equal(t, int32(2000), second.MaxBudget)
	assert.Equal(t, "uptown", second.PreferredLocation)
}

func TestUpsertValidation(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing userId", `{"maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`},
		{"non-positive budget", `{"userId":"u1","maxBudget":0,"minSize":40,"preferredLocation":"downtown","numRooms":2}`},
		{"non-positive size", `{"userId":"u1","maxBudget":1500,"minSize":-1,"preferredLocation":"downtown","numRooms":2}`},
		{"missing location", `{"userId":"u1","maxBudget":1500,"minSize":40,"numRooms":2}`},
		{"non-positive rooms", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":0}`},
		{"malformed json", `{"userId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestGetUnknownUser(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchChangesOnlySuppliedFields(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodPatch, "/u1", `{"maxBudget":3500}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int32(3500), updated.MaxBudget)
	assert.Equal(t, int32(40), updated.MinSize)
	assert.Equal(t, "downtown", updated.PreferredLocation)
	assert.Equal(t, int32(2), updated.NumRooms)
}

func TestPatchValidation(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("empty body", func(t *testing.T) {
		rec := doRequest(e, http.MethodPatch, "/u1", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive value", func(t *testing.T) {
		rec := doRequest(e, http.MethodPatch, "/u1", `{"numRooms":-2}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPatchUnknownUser(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPatch, "/missing", `{"maxBudget":3500}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteThenGet(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/", `{"userId":"u1","maxBudget":1500,"minSize":40,"preferredLocation":"downtown","numRooms":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAfterUpserts(t *testing.T) {
	e := newTestServer(t)

	const n = 4
	for i := 0; i < n; i++ {
		body := fmt.Sprintf(`{"userId":"user-%d","maxBudget":1000,"minSize":30,"preferredLocation":"riverside","numRooms":1}`, i)
		rec := doRequest(e, http.MethodPost, "/", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []Preference
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, n)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamae10/webhook-relay/internal/domain"
)

func TestErrorUsesAppErrorCode(t *testing.T) {
	rec := httptest.NewRecorder()
	code := Error(rec, domain.ErrBadRequest("bad input"))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"bad input"}`, rec.Body.String())
}

func TestErrorHidesUnexpectedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	code := Error(rec, errors.New("db exploded"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"success":false,"message":"internal webhook error"}`, rec.Body.String())
}

func TestProductsList(t *testing.T) {
	rec := httptest.NewRecorder()
	NewProductsHandler().List(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		DefaultDays int                                 `json:"defaultDays"`
		Products    map[domain.Provider][]domain.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.DefaultDays, body.DefaultDays)
	assert.Equal(t, []domain.Product{
		{ID: "mamae10-anual", Days: 365},
		{ID: "mamae10-mensal", Days: 30},
		{ID: "mamae10-trimestral", Days: 90},
	}, body.Products[domain.ProviderKiwify])
	assert.Len(t, body.Products, 2)
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler("1.2.3", map[domain.Provider]string{domain.ProviderCakto: "s"})
	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, map[string]interface{}{"cakto": true, "kiwify": false}, body["signatureVerification"])
}

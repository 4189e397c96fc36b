package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitdesk/internal/database"
	"benefitdesk/internal/handler"
	"benefitdesk/internal/model"
	"benefitdesk/internal/service"
	"benefitdesk/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db, ":memory:"))

	st := store.New(db)
	resolverSvc := service.NewResolverService(st)
	ledgerSvc := service.NewLedgerService(st)

	r := chi.NewRouter()
	r.Post("/api/customers/check", handler.CheckCustomerHandler(resolverSvc))
	r.Get("/api/benefits", handler.ListBenefitsHandler(resolverSvc))
	r.Get("/api/benefits/{code}", handler.GetBenefitHandler(resolverSvc))
	r.Post("/api/claims", handler.RecordClaimHandler(ledgerSvc))
	r.Get("/api/claims", handler.ListClaimsHandler(ledgerSvc))
	r.Delete("/api/claims/{id}", handler.DeleteClaimHandler(ledgerSvc))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, st
}

func seedCatalog(t *testing.T, st *store.Store) {
	ctx := context.Background()
	_, err := st.UpsertCustomer(ctx, model.Customer{CardCode: "C100", Name: "Asha", AmountPaid: 2000, Status: "active"})
	require.NoError(t, err)
	for _, code := range []string{"262k-01", "262k-02", "263k-01"} {
		_, err := st.UpsertBenefit(ctx, model.Benefit{Code: code, VesselType: "steel"})
		require.NoError(t, err)
	}
}

func TestCheckCustomerHandler(t *testing.T) {
	srv, st := newTestServer(t)
	seedCatalog(t, st)

	resp, err := http.Post(srv.URL+"/api/customers/check", "application/json",
		strings.NewReader(`{"card_code":"C100"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entitlement service.Entitlement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entitlement))
	assert.Equal(t, "262k", entitlement.TierPrefix)
	require.Len(t, entitlement.Benefits, 2)
	assert.Equal(t, "262k-01", entitlement.Benefits[0].Code)
	assert.Equal(t, "262k-02", entitlement.Benefits[1].Code)
}

func TestCheckCustomerHandler_UnknownCustomer(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/customers/check", "application/json",
		strings.NewReader(`{"card_code":"NOPE"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckCustomerHandler_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/customers/check", "application/json",
		strings.NewReader(`{"card_code":"   "}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBenefitHandler(t *testing.T) {
	srv, st := newTestServer(t)
	seedCatalog(t, st)

	resp, err := http.Get(srv.URL + "/api/benefits/262k-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b model.Benefit
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, "262k-01", b.Code)

	resp, err = http.Get(srv.URL + "/api/benefits/no-such-code")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListBenefitsHandler_PrefixFilter(t *testing.T) {
	srv, st := newTestServer(t)
	seedCatalog(t, st)

	resp, err := http.Get(srv.URL + "/api/benefits?prefix=263k")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var benefits []model.Benefit
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&benefits))
	require.Len(t, benefits, 1)
	assert.Equal(t, "263k-01", benefits[0].Code)
}

func TestListBenefitsHandler_EmptyCatalog(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/benefits")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClaimLifecycle(t *testing.T) {
	srv, st := newTestServer(t)
	seedCatalog(t, st)

	resp, err := http.Post(srv.URL+"/api/claims", "application/json",
		strings.NewReader(`{"phone":"9999999999","card_code":"C100","benefit_code":"262k-01"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Submission model.Submission `json:"submission"`
		Benefit    model.Benefit    `json:"benefit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.Submission.ID)
	assert.Equal(t, "262k-01", created.Benefit.Code)

	resp, err = http.Get(srv.URL + "/api/claims")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var claims []model.Submission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&claims))
	require.Len(t, claims, 1)
	assert.Equal(t, created.Submission.ID, claims[0].ID)

	req, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/claims/%d", srv.URL, created.Submission.ID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Removed bool `json:"removed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.True(t, deleted.Removed)

	resp, err = http.Get(srv.URL + "/api/claims")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRecordClaimHandler_UnknownBenefit(t *testing.T) {
	srv, st := newTestServer(t)
	seedCatalog(t, st)

	resp, err := http.Post(srv.URL+"/api/claims", "application/json",
		strings.NewReader(`{"phone":"9999999999","card_code":"C100","benefit_code":"999z-99"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/claims")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "failed claim must not be recorded")
}

func TestDeleteClaimHandler_AbsentID(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/claims/424242", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Removed bool `json:"removed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.False(t, deleted.Removed)
}

func TestDeleteClaimHandler_InvalidID(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/claims/not-a-number", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

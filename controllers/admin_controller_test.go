package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	customMiddleware "github.com/naturebridge/store_backend/middleware"
	"github.com/naturebridge/store_backend/models"
)

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

type stubWorkflow struct {
	commission *models.Commission
	err        error
	notes      string
}

func (s *stubWorkflow) Approve(ctx context.Context, id, adminID primitive.ObjectID) (*models.Commission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.commission, nil
}

func (s *stubWorkflow) Reject(ctx context.Context, id, adminID primitive.ObjectID, notes string) (*models.Commission, error) {
	s.notes = notes
	if s.err != nil {
		return nil, s.err
	}
	return s.commission, nil
}

func (s *stubWorkflow) MarkPaid(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.commission, nil
}

func newAdminContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &requestValidator{validator: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	adminID := primitive.NewObjectID()
	c.Set("user", &jwt.Token{Claims: &customMiddleware.JwtCustomClaims{
		UserID: adminID.Hex(),
		Role:   "admin",
	}})

	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestApproveCommissionSuccess(t *testing.T) {
	commission := &models.Commission{
		ID:               primitive.NewObjectID(),
		PartnerID:        primitive.NewObjectID(),
		Status:           models.CommissionStatusApproved,
		CommissionAmount: 120.50,
	}
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{commission: commission})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(commission.ID.Hex())

	require.NoError(t, ac.ApproveCommission(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Commission approved successfully", decodeResponse(t, rec).Message)
}

func TestApproveCommissionAlreadyProcessed(t *testing.T) {
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{err: models.ErrCommissionProcessed})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	require.NoError(t, ac.ApproveCommission(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Commission already processed", decodeResponse(t, rec).Message)
}

func TestApproveCommissionNotFound(t *testing.T) {
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{err: models.ErrCommissionNotFound})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/approve", "")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	require.NoError(t, ac.ApproveCommission(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Commission not found", decodeResponse(t, rec).Message)
}

func TestApproveCommissionInvalidID(t *testing.T) {
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/approve", "")
	c.SetParamNames("id")
	c.SetParamValues("not-an-object-id")

	require.NoError(t, ac.ApproveCommission(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectCommissionRequiresNotes(t *testing.T) {
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/reject", `{"notes":""}`)
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	require.NoError(t, ac.RejectCommission(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Rejection notes are required", decodeResponse(t, rec).Message)
}

func TestRejectCommissionPassesNotes(t *testing.T) {
	commission := &models.Commission{
		ID:               primitive.NewObjectID(),
		PartnerID:        primitive.NewObjectID(),
		Status:           models.CommissionStatusRejected,
		CommissionAmount: 99,
		Notes:            "duplicate order",
	}
	workflow := &stubWorkflow{commission: commission}
	ac := NewAdminControllerWithWorkflow(nil, nil, workflow)

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/reject", `{"notes":"duplicate order"}`)
	c.SetParamNames("id")
	c.SetParamValues(commission.ID.Hex())

	require.NoError(t, ac.RejectCommission(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "duplicate order", workflow.notes)
}

func TestMarkCommissionPaidRequiresApproval(t *testing.T) {
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{err: models.ErrCommissionNotApproved})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/paid", "")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	require.NoError(t, ac.MarkCommissionPaid(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Commission must be approved first", decodeResponse(t, rec).Message)
}

func TestMarkCommissionPaidSuccess(t *testing.T) {
	commission := &models.Commission{
		ID:               primitive.NewObjectID(),
		PartnerID:        primitive.NewObjectID(),
		Status:           models.CommissionStatusPaid,
		CommissionAmount: 120.50,
	}
	ac := NewAdminControllerWithWorkflow(nil, nil, &stubWorkflow{commission: commission})

	c, rec := newAdminContext(t, http.MethodPut, "/api/admin/commissions/:id/paid", "")
	c.SetParamNames("id")
	c.SetParamValues(commission.ID.Hex())

	require.NoError(t, ac.MarkCommissionPaid(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Commission marked as paid", decodeResponse(t, rec).Message)
}

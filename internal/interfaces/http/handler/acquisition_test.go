package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfms/backend/internal/domain/acquisition"
)

func createPurchaseRequest(t *testing.T, engine *gin.Engine, number, amount string) acquisition.PurchaseRequest {
	t.Helper()

	w, env := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests", map[string]any{
		"request_number": number,
		"description":    "Topographic survey services",
		"requestor":      "jdoe",
		"amount":         amount,
		"funding_code":   "96X3123-B2000-B2100",
		"cost_center":    "CC-ENG",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var pr acquisition.PurchaseRequest
	decodeData(t, env, &pr)
	return pr
}

func certify(t *testing.T, engine *gin.Engine, pr acquisition.PurchaseRequest) {
	t.Helper()
	w, env := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests/"+pr.ID.String()+"/certify", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Success bool `json:"success"`
	}
	decodeData(t, env, &result)
	require.True(t, result.Success)
}

func TestAcquisitionHandler_PurchaseRequests(t *testing.T) {
	engine := newTestRouter(t)
	installTestTree(t, engine)

	pr := createPurchaseRequest(t, engine, "PR-2026-0001", "85000")
	assert.Equal(t, acquisition.PRStatusPendingCertification, pr.Status)

	t.Run("rejects a duplicate request number", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests", map[string]any{
			"request_number": "PR-2026-0001",
			"description":    "Duplicate",
			"requestor":      "jdoe",
			"amount":         "100",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)
	})

	t.Run("certifies funds and posts the commitment", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests/"+pr.ID.String()+"/certify", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			Success       bool   `json:"success"`
			TransactionID string `json:"transaction_id"`
			NodeCode      string `json:"node_code"`
		}
		decodeData(t, env, &result)
		assert.True(t, result.Success)
		assert.Equal(t, "B2100", result.NodeCode)
		assert.NotEmpty(t, result.TransactionID)
	})

	t.Run("repeated certification is an invalid state", func(t *testing.T) {
		w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests/"+pr.ID.String()+"/certify", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("certification failure is reported, not errored", func(t *testing.T) {
		big := createPurchaseRequest(t, engine, "PR-2026-0002", "900000")
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/purchase-requests/"+big.ID.String()+"/certify", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		decodeData(t, env, &result)
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "Anti-Deficiency Act violation")
	})

	t.Run("lists by status", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodGet, "/api/v1/purchase-requests?status=FUNDS_CERTIFIED", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var prs []acquisition.PurchaseRequest
		decodeData(t, env, &prs)
		require.Len(t, prs, 1)
		assert.Equal(t, "PR-2026-0001", prs[0].RequestNumber)
	})
}

func TestAcquisitionHandler_SolicitationLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	installTestTree(t, engine)

	pr := createPurchaseRequest(t, engine, "PR-2026-0010", "85000")
	certify(t, engine, pr)

	w, env := doRequest(t, engine, http.MethodPost, "/api/v1/solicitations", map[string]any{
		"solicitation_number": "SOL-2026-0010",
		"title":               "Survey services RFQ",
		"purchase_request_id": pr.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sol acquisition.Solicitation
	decodeData(t, env, &sol)
	assert.Equal(t, acquisition.SolStatusRequirementRefinement, sol.Status)

	advance := func(target string) (*httptest.ResponseRecorder, envelope) {
		return doRequest(t, engine, http.MethodPost, "/api/v1/solicitations/"+sol.ID.String()+"/advance",
			map[string]any{"target": target})
	}

	t.Run("advances phase by phase", func(t *testing.T) {
		w, _ := advance("MARKET_RESEARCH")
		require.Equal(t, http.StatusOK, w.Code)
		w, _ = advance("ACTIVE_SOLICITATION")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refuses to skip phases", func(t *testing.T) {
		w, _ := advance("READY_FOR_AWARD")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("records vendor quotes while active", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/solicitations/"+sol.ID.String()+"/quotes",
			map[string]any{"vendor_name": "Acme Survey LLC", "amount": "83500", "notes": "14 day delivery"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated acquisition.Solicitation
		decodeData(t, env, &updated)
		require.Len(t, updated.Quotes, 1)
		assert.Equal(t, "Acme Survey LLC", updated.Quotes[0].VendorName)
	})
}

func TestAcquisitionHandler_ContractLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	installTestTree(t, engine)

	pr := createPurchaseRequest(t, engine, "PR-2026-0020", "85000")
	certify(t, engine, pr)

	w, env := doRequest(t, engine, http.MethodPost, "/api/v1/contracts", map[string]any{
		"purchase_request_id": pr.ID.String(),
		"contract_number":     "W912EK-26-C-0001",
		"vendor_name":         "Acme Survey LLC",
		"amount":              "83500",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var award struct {
		Contract      acquisition.Contract `json:"contract"`
		TransactionID string               `json:"transaction_id"`
	}
	decodeData(t, env, &award)
	assert.Equal(t, acquisition.ContractStatusActive, award.Contract.Status)
	assert.NotEmpty(t, award.TransactionID)

	contractID := award.Contract.ID.String()

	t.Run("purchase request is converted by award", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodGet, "/api/v1/purchase-requests/"+pr.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var reloaded acquisition.PurchaseRequest
		decodeData(t, env, &reloaded)
		assert.Equal(t, acquisition.PRStatusConverted, reloaded.Status)
	})

	t.Run("executes a deobligating modification", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/contracts/"+contractID+"/modifications",
			map[string]any{"description": "Descope optional task 2", "amount_delta": "-13500"})
		require.Equal(t, http.StatusCreated, w.Code)

		var result struct {
			Contract     acquisition.Contract             `json:"contract"`
			Modification acquisition.ContractModification `json:"modification"`
		}
		decodeData(t, env, &result)
		assert.Equal(t, "P00001", result.Modification.Number)
		assert.Equal(t, "70000", result.Contract.Value.String())
	})

	t.Run("closes out the contract", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodPost, "/api/v1/contracts/"+contractID+"/closeout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var closed acquisition.Contract
		decodeData(t, env, &closed)
		assert.Equal(t, acquisition.ContractStatusClosed, closed.Status)
	})

	t.Run("modification after closeout is refused", func(t *testing.T) {
		w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/contracts/"+contractID+"/modifications",
			map[string]any{"description": "Too late", "amount_delta": "100"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown contract id is a 404", func(t *testing.T) {
		w, env := doRequest(t, engine, http.MethodGet, "/api/v1/contracts/00000000-0000-0000-0000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
	})
}

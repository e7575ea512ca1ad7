package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validTransactionPayload(merchantID string) map[string]interface{} {
	return map[string]interface{}{
		"transactionHash": "0xabc123",
		"merchantId":      merchantID,
		"chainId":         "ethereum",
		"contractAddress": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"gasUsed":         21000.0,
		"transactionFee":  0.021,
		"status":          "success",
		"transactionType": "transfer",
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	merchantID := uuid.New().String()

	w := env.do(t, http.MethodPost, "/api/v1/transactions", validTransactionPayload(merchantID))
	requireStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	require.Equal(t, merchantID, body["merchantId"])
	require.Equal(t, "success", body["status"])
	require.NotEmpty(t, body["id"])

	// row is retrievable afterwards
	w = env.do(t, http.MethodGet, "/api/v1/transactions/"+body["id"].(string), nil)
	requireStatus(t, w, http.StatusOK)
}

func TestTransactionHandler_CreateRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing required fields", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"transactionHash": "0xabc",
		})
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("malformed merchant id", func(t *testing.T) {
		payload := validTransactionPayload("not-a-uuid")
		w := env.do(t, http.MethodPost, "/api/v1/transactions", payload)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown status", func(t *testing.T) {
		payload := validTransactionPayload(uuid.New().String())
		payload["status"] = "exploded"
		w := env.do(t, http.MethodPost, "/api/v1/transactions", payload)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("malformed evm address", func(t *testing.T) {
		payload := validTransactionPayload(uuid.New().String())
		payload["contractAddress"] = "0xnothex"
		w := env.do(t, http.MethodPost, "/api/v1/transactions", payload)
		requireStatus(t, w, http.StatusBadRequest)
	})
}

func TestTransactionHandler_GetNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/transactions/"+uuid.New().String(), nil)
	requireStatus(t, w, http.StatusNotFound)

	w = env.do(t, http.MethodGet, "/api/v1/transactions/not-a-uuid", nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestTransactionHandler_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	merchantA := uuid.New().String()
	merchantB := uuid.New().String()

	for i, m := range []string{merchantA, merchantA, merchantB} {
		payload := validTransactionPayload(m)
		payload["transactionHash"] = fmt.Sprintf("0xhash%d", i)
		if i == 2 {
			payload["status"] = "failed"
			payload["errorMessage"] = "out of gas"
		}
		w := env.do(t, http.MethodPost, "/api/v1/transactions", payload)
		requireStatus(t, w, http.StatusCreated)
	}

	w := env.do(t, http.MethodGet, "/api/v1/transactions?merchantId="+merchantA, nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	require.Len(t, body["transactions"], 2)

	w = env.do(t, http.MethodGet, "/api/v1/transactions?status=failed", nil)
	requireStatus(t, w, http.StatusOK)
	body = decodeBody(t, w)
	require.Len(t, body["transactions"], 1)

	w = env.do(t, http.MethodGet, "/api/v1/transactions?status=bogus", nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestTransactionHandler_ListPagination(t *testing.T) {
	env := newTestEnv(t)
	merchantID := uuid.New().String()

	for i := 0; i < 5; i++ {
		payload := validTransactionPayload(merchantID)
		payload["transactionHash"] = fmt.Sprintf("0xpage%d", i)
		w := env.do(t, http.MethodPost, "/api/v1/transactions", payload)
		requireStatus(t, w, http.StatusCreated)
	}

	w := env.do(t, http.MethodGet, "/api/v1/transactions?page=2&limit=2", nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	require.Len(t, body["transactions"], 2)

	meta, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 5, meta["totalCount"])
	require.EqualValues(t, 2, meta["page"])
	require.EqualValues(t, 3, meta["totalPages"])
}

package orderstore_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"deliverytracking/internal/adapters/out/orderstore"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-admin-token"

func orderJSON(id kernel.UUID) map[string]any {
	return map[string]any{
		"id":     id.String(),
		"type":   "normal",
		"status": "delivering",
		"user": map[string]any{
			"id":    "42",
			"name":  "Maria Santos",
			"phone": "+639171234567",
			"email": "maria@example.com",
		},
		"delivery_location": map[string]any{
			"address":   "Rizal Elementary School, Manila",
			"latitude":  "14.5995000",
			"longitude": "120.9842000",
		},
		"driver_location": nil,
		"items": []map[string]any{
			{"id": "item-1", "name": "5-gallon water", "quantity": 3, "unitPrice": 3500},
		},
	}
}

func TestClient_GetOrder_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/delivery", r.URL.Path)
		assert.Equal(t, orderID.String(), r.URL.Query().Get("orderId"))
		assert.Equal(t, "normal", r.URL.Query().Get("orderType"))
		assert.Equal(t, testToken, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{"order": orderJSON(orderID)})
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	aggregate, err := client.GetOrder(t.Context(), orderID, order.TypeNormal)

	require.NoError(t, err)
	assert.True(t, orderID.IsEqual(aggregate.ID()))
	assert.Equal(t, order.StatusDelivering, aggregate.Status())
	assert.Equal(t, "Maria Santos", aggregate.Customer().Name)
	assert.Equal(t, "Rizal Elementary School, Manila", aggregate.DeliveryAddress())
	require.NotNil(t, aggregate.DeliveryLocation())
	assert.Nil(t, aggregate.DriverLocation())
	require.Len(t, aggregate.Items(), 1)
	assert.Equal(t, "5-gallon water", aggregate.Items()[0].Name)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte(`{"message": "Order not found"}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	_, err := client.GetOrder(t.Context(), kernel.NewUUID(), order.TypeNormal)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_GetOrder_CorruptDestination_ReturnsMissingDestination(t *testing.T) {
	orderID := kernel.NewUUID()
	payload := orderJSON(orderID)
	payload["delivery_location"] = map[string]any{
		"address":   "Rizal Elementary School, Manila",
		"latitude":  "not-a-number",
		"longitude": "120.9842000",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]any{"order": payload})
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	_, err := client.GetOrder(t.Context(), orderID, order.TypeNormal)

	require.ErrorIs(t, err, errs.ErrMissingDestination)
}

func TestClient_GetOrder_ServerDown_ReturnsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	_, err := client.GetOrder(t.Context(), kernel.NewUUID(), order.TypeNormal)

	require.ErrorIs(t, err, errs.ErrNetworkFailure)
}

func TestClient_PushDriverLocation_SendsCoordinatePayload(t *testing.T) {
	orderID := kernel.NewUUID()

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "update-location", r.URL.Query().Get("action"))
		assert.Equal(t, orderID.String(), r.URL.Query().Get("orderId"))
		assert.Equal(t, "normal", r.URL.Query().Get("orderType"))
		assert.Equal(t, testToken, r.Header.Get("Authorization"))

		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)

		_, err = w.Write([]byte(`{"message": "Location updated"}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	position, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	err = client.PushDriverLocation(t.Context(), orderID, order.TypeNormal, position)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"latitude":  "14.5990000",
		"longitude": "120.9840000",
	}, received)
}

func TestClient_PushDriverLocation_OrderGone_ReturnsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte(`{"message": "Order not found"}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	position, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	err = client.PushDriverLocation(t.Context(), kernel.NewUUID(), order.TypeNormal, position)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_UpdateStatus_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "update-status", r.URL.Query().Get("action"))
		assert.Equal(t, orderID.String(), r.URL.Query().Get("orderId"))
		assert.Equal(t, "normal", r.URL.Query().Get("orderType"))

		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)

		_, err = w.Write([]byte(`{"message": "Status updated", "newStatus": "delivered"}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	err := client.UpdateStatus(t.Context(), orderID, order.TypeNormal, order.StatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "delivered"}, received)
}

func TestClient_UpdateStatus_Rejected_ReturnsInvalidStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, err := w.Write([]byte(`{"message": "Invalid status provided."}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	err := client.UpdateStatus(t.Context(), kernel.NewUUID(), order.TypeNormal, order.StatusDelivered)

	require.ErrorIs(t, err, errs.ErrInvalidStatus)
	assert.Contains(t, err.Error(), "Invalid status provided.")
}

func TestClient_UpdateStatus_ServerError_ReturnsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, err := w.Write([]byte(`{"message": "Failed to update order status"}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := orderstore.NewClient(server.URL, testToken, slog.Default())
	err := client.UpdateStatus(t.Context(), kernel.NewUUID(), order.TypeNormal, order.StatusDelivered)

	require.ErrorIs(t, err, errs.ErrNetworkFailure)
}

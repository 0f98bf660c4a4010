// Package orderstore implements the remote order store client.
// The store speaks JSON over HTTP: one GET endpoint returns the full order,
// one POST endpoint multiplexes mutations through an action query parameter.
// Error responses carry a {"message": "..."} body regardless of status code.
package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"
)

// DefaultTimeout bounds every store call. Expiry surfaces as a
// NetworkFailureError; nothing retries on its own.
const DefaultTimeout = 10 * time.Second

const (
	actionUpdateLocation = "update-location"
	actionUpdateStatus   = "update-status"
)

// Client talks to the remote order store. It forwards an opaque admin token
// with every request without inspecting it.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a store client for the given base URL.
// authToken is sent verbatim in the Authorization header.
func NewClient(baseURL, authToken string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.With("component", "orderstore"),
	}
}

// orderPayload is the wire shape of an order. Locations nest under
// delivery_location / driver_location with string coordinates; a present but
// unparseable pair is a hard error, never a silent nil.
type orderPayload struct {
	ID               string                `json:"id"`
	Type             string                `json:"type"`
	Status           string                `json:"status"`
	User             userJSON              `json:"user"`
	DeliveryLocation *deliveryLocationJSON `json:"delivery_location"`
	DriverLocation   *locationJSON         `json:"driver_location"`
	Items            []itemJSON            `json:"items"`
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type deliveryLocationJSON struct {
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type locationJSON struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type itemJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type messageJSON struct {
	Message string `json:"message"`
}

// storeError carries the raw HTTP failure out of do() so each operation can
// apply its own mapping.
type storeError struct {
	statusCode int
	message    string
}

func (e *storeError) Error() string {
	return fmt.Sprintf("status %d: %s", e.statusCode, e.message)
}

// GetOrder fetches the full order from the store.
func (c *Client) GetOrder(ctx context.Context, id kernel.UUID, orderType order.Type) (*order.Order, error) {
	query := url.Values{}
	query.Set("orderId", id.String())
	query.Set("orderType", string(orderType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/delivery?"+query.Encode(), nil)
	if err != nil {
		return nil, errs.NewNetworkFailureError("get-order", err)
	}

	body, err := c.do(req, "get-order", id)
	if err != nil {
		return nil, mapStoreError(err, "get-order", id)
	}

	var envelope struct {
		Order orderPayload `json:"order"`
	}
	if err = json.Unmarshal(body, &envelope); err != nil {
		return nil, errs.NewNetworkFailureError("get-order", err)
	}

	return toDomain(envelope.Order, orderType)
}

// PushDriverLocation uploads the latest driver coordinate.
func (c *Client) PushDriverLocation(
	ctx context.Context,
	id kernel.UUID,
	orderType order.Type,
	coordinate kernel.Coordinate,
) error {
	payload := map[string]any{
		"latitude":  fmt.Sprintf("%.7f", coordinate.Latitude()),
		"longitude": fmt.Sprintf("%.7f", coordinate.Longitude()),
	}

	if _, err := c.post(ctx, actionUpdateLocation, id, orderType, payload); err != nil {
		return mapStoreError(err, actionUpdateLocation, id)
	}

	return nil
}

// UpdateStatus asks the store to move the order to status.
// A 400 from the store means the status value was rejected and maps to an
// InvalidStatusError carrying the offending value.
func (c *Client) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	orderType order.Type,
	status order.Status,
) error {
	payload := map[string]any{
		"status": string(status),
	}

	_, err := c.post(ctx, actionUpdateStatus, id, orderType, payload)
	if err == nil {
		return nil
	}

	var rejected *storeError
	if errors.As(err, &rejected) && rejected.statusCode == http.StatusBadRequest {
		return errs.NewInvalidStatusErrorWithCause(string(status), errors.New(rejected.message))
	}

	return mapStoreError(err, actionUpdateStatus, id)
}

// post sends a mutation. The order is addressed through the query string; the
// body carries only the action's own fields.
func (c *Client) post(
	ctx context.Context,
	action string,
	id kernel.UUID,
	orderType order.Type,
	payload map[string]any,
) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewNetworkFailureError(action, err)
	}

	query := url.Values{}
	query.Set("action", action)
	query.Set("orderId", id.String())
	query.Set("orderType", string(orderType))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/delivery?"+query.Encode(), bytes.NewReader(raw))
	if err != nil {
		return nil, errs.NewNetworkFailureError(action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, action, id)
}

// do executes the request. Transport failures become NetworkFailureErrors
// immediately; HTTP error statuses come back as *storeError for the caller to map.
func (c *Client) do(req *http.Request, op string, id kernel.UUID) ([]byte, error) {
	req.Header.Set("Authorization", c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("store request failed", "op", op, "orderId", id, "error", err)
		return nil, errs.NewNetworkFailureError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewNetworkFailureError(op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var msg messageJSON
	_ = json.Unmarshal(body, &msg)

	return nil, &storeError{statusCode: resp.StatusCode, message: msg.Message}
}

// mapStoreError applies the store's shared error contract: 404 means the order
// does not exist, every other HTTP error is a network failure. Errors that are
// already mapped pass through unchanged.
func mapStoreError(err error, op string, id kernel.UUID) error {
	var httpErr *storeError
	if !errors.As(err, &httpErr) {
		return err
	}

	if httpErr.statusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	return errs.NewNetworkFailureError(op, httpErr)
}

// toDomain rebuilds the aggregate from the wire payload. An unusable delivery
// location is reported as a missing destination so session start can surface
// it directly.
func toDomain(payload orderPayload, orderType order.Type) (*order.Order, error) {
	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return nil, err
	}

	var deliveryAddress string
	var deliveryLocation *kernel.Coordinate
	if payload.DeliveryLocation != nil {
		deliveryAddress = payload.DeliveryLocation.Address
		deliveryLocation, err = parseOptionalCoordinate(
			payload.DeliveryLocation.Latitude, payload.DeliveryLocation.Longitude)
		if err != nil {
			return nil, errs.NewMissingDestinationErrorWithCause(err)
		}
	}

	var driverLocation *kernel.Coordinate
	if payload.DriverLocation != nil {
		driverLocation, err = parseOptionalCoordinate(
			payload.DriverLocation.Latitude, payload.DriverLocation.Longitude)
		if err != nil {
			return nil, err
		}
	}

	items := make([]order.LineItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, order.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return order.RestoreOrder(
		id,
		orderType,
		order.Status(payload.Status),
		order.Customer{
			ID:    payload.User.ID,
			Name:  payload.User.Name,
			Phone: payload.User.Phone,
			Email: payload.User.Email,
		},
		deliveryAddress,
		deliveryLocation,
		driverLocation,
		items,
	)
}

// parseOptionalCoordinate handles the store's string coordinates. Both fields
// empty means the coordinate is simply absent. A present pair that fails to
// parse is corrupt data and errors out.
func parseOptionalCoordinate(lat, lon string) (*kernel.Coordinate, error) {
	if lat == "" && lon == "" {
		return nil, nil //nolint:nilnil //absence of a coordinate is a valid state
	}

	coordinate, err := kernel.ParseCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}

	return &coordinate, nil
}

// Package http exposes the order store's delivery API.
// One GET endpoint returns the full delivery view of an order; one POST
// endpoint multiplexes mutations through an action query parameter, mirroring
// what the driver clients expect. Every error response carries a
// {"message": "..."} body.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	updateStatusHandler   commands.UpdateOrderStatusCommandHandler
	updateLocationHandler commands.UpdateDriverLocationCommandHandler

	// Query handlers
	getDeliveryOrderHandler queries.GetDeliveryOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	updateLocationHandler commands.UpdateDriverLocationCommandHandler,
	getDeliveryOrderHandler queries.GetDeliveryOrderQueryHandler,
) *Server {
	return &Server{
		updateStatusHandler:     updateStatusHandler,
		updateLocationHandler:   updateLocationHandler,
		getDeliveryOrderHandler: getDeliveryOrderHandler,
	}
}

// RegisterRoutes mounts the delivery endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/delivery", s.GetDelivery)
	e.POST("/delivery", s.PostDelivery)
}

// Message is the uniform body of error responses.
type Message struct {
	Message string `json:"message"`
}

// LocationConfirmation echoes the stored driver position back to the caller.
type LocationConfirmation struct {
	Message     string           `json:"message"`
	NewLocation LocationResponse `json:"newLocation"`
}

// LocationResponse is a coordinate pair in the store's string encoding.
type LocationResponse struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// StatusConfirmation echoes the stored status back to the caller.
type StatusConfirmation struct {
	Message   string `json:"message"`
	NewStatus string `json:"newStatus"`
}

// OrderResponse is the wire shape of an order. Locations nest under
// delivery_location / driver_location with string coordinates and are null
// while the position is not known yet.
type OrderResponse struct {
	ID               string                    `json:"id"`
	Type             string                    `json:"type"`
	Status           string                    `json:"status"`
	User             UserResponse              `json:"user"`
	DeliveryLocation *DeliveryLocationResponse `json:"delivery_location"`
	DriverLocation   *LocationResponse         `json:"driver_location"`
	Items            []ItemResponse            `json:"items"`
}

// UserResponse carries the customer contact block of an order.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// DeliveryLocationResponse is the destination block: the address plus its
// coordinate in the store's string encoding.
type DeliveryLocationResponse struct {
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// ItemResponse is one line item; UnitPrice is in centavos.
type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// GetDelivery handles GET /delivery?orderId=...&orderType=... and returns the
// full delivery view of the order.
func (s *Server) GetDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order id"})
	}

	orderType, err := order.TypeFromString(ctx.QueryParam("orderType"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order type"})
	}

	query, err := queries.NewGetDeliveryOrderQuery(orderID, orderType)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid request"})
	}

	view, err := s.getDeliveryOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Message{Message: "Order not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, Message{Message: "Failed to retrieve order"})
	}

	return ctx.JSON(http.StatusOK, map[string]OrderResponse{"order": toOrderResponse(view)})
}

// PostDelivery handles POST /delivery?action=... and dispatches the mutation.
func (s *Server) PostDelivery(ctx echo.Context) error {
	switch ctx.QueryParam("action") {
	case "update-location":
		return s.updateLocation(ctx)
	case "update-status":
		return s.updateStatus(ctx)
	default:
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid action"})
	}
}

type updateLocationRequest struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// updateLocation addresses the order through the query string; the body
// carries only the coordinate pair.
func (s *Server) updateLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order id"})
	}

	orderType, err := order.TypeFromString(ctx.QueryParam("orderType"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order type"})
	}

	var req updateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid request body"})
	}

	coordinate, err := kernel.ParseCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid coordinates"})
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(orderID, orderType, coordinate)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid request"})
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Message{Message: "Order not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, Message{Message: "Failed to update driver location"})
	}

	latitude, longitude := coordinateStrings(&coordinate)
	return ctx.JSON(http.StatusOK, LocationConfirmation{
		Message:     "Location updated",
		NewLocation: LocationResponse{Latitude: latitude, Longitude: longitude},
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateStatus addresses the order through the query string; the body carries
// only the target status.
func (s *Server) updateStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order id"})
	}

	orderType, err := order.TypeFromString(ctx.QueryParam("orderType"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid order type"})
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid request body"})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, orderType, order.Status(req.Status))
	if err != nil {
		if errors.Is(err, errs.ErrInvalidStatus) {
			return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid status provided."})
		}
		return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid request"})
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Message{Message: "Order not found"})
		case errors.Is(err, errs.ErrInvalidStatus):
			return ctx.JSON(http.StatusBadRequest, Message{Message: "Invalid status provided."})
		default:
			return ctx.JSON(http.StatusInternalServerError, Message{Message: "Failed to update order status"})
		}
	}

	return ctx.JSON(http.StatusOK, StatusConfirmation{
		Message:   "Status updated",
		NewStatus: string(cmd.Status()),
	})
}

// toOrderResponse renders the delivery view in the wire shape the clients
// parse: nested location objects with string coordinates, null while unknown.
func toOrderResponse(view queries.GetDeliveryOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:     view.ID.String(),
		Type:   string(view.OrderType),
		Status: string(view.Status),
		User: UserResponse{
			ID:    view.CustomerID,
			Name:  view.CustomerName,
			Phone: view.CustomerPhone,
			Email: view.CustomerEmail,
		},
		Items: make([]ItemResponse, 0, len(view.Items)),
	}

	if view.DeliveryLocation != nil {
		latitude, longitude := coordinateStrings(view.DeliveryLocation)
		resp.DeliveryLocation = &DeliveryLocationResponse{
			Address:   view.DeliveryAddress,
			Latitude:  latitude,
			Longitude: longitude,
		}
	}
	if view.DriverLocation != nil {
		latitude, longitude := coordinateStrings(view.DriverLocation)
		resp.DriverLocation = &LocationResponse{Latitude: latitude, Longitude: longitude}
	}

	for _, item := range view.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return resp
}

func coordinateStrings(coordinate *kernel.Coordinate) (string, string) {
	if coordinate == nil {
		return "", ""
	}

	return fmt.Sprintf("%.7f", coordinate.Latitude()), fmt.Sprintf("%.7f", coordinate.Longitude())
}

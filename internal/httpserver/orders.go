package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "freshbasket/internal/service/order"
)

func placeOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.PlaceInput
		if !bindJSON(c, &in) {
			return
		}

		var requesterID *string
		if user, ok := currentUser(c); ok {
			requesterID = &user.ID
		}

		placed, err := svc.Place(c.Request.Context(), requesterID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		orders, err := svc.ListMine(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		o, err := svc.GetMine(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func trackOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Track(c.Request.Context(), c.Param("ref"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

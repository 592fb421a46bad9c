package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "freshbasket/internal/service/cart"
)

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		cart, err := svc.Get(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var in cartsvc.AddItemInput
		if !bindJSON(c, &in) {
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), user.ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func changeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var body struct {
			Quantity int `json:"quantity"`
		}
		if !bindJSON(c, &body) {
			return
		}
		cart, err := svc.ChangeQuantity(c.Request.Context(), user.ID, c.Param("lineId"), body.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		cart, err := svc.RemoveItem(c.Request.Context(), user.ID, c.Param("lineId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	deliverysvc "freshbasket/internal/service/delivery"
)

func courierQueueHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		bucket := deliverysvc.Bucket(c.DefaultQuery("bucket", string(deliverysvc.BucketNew)))
		orders, err := svc.Queue(c.Request.Context(), user, bucket)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func acceptOrderHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		o, err := svc.Accept(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func rejectOrderHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var body struct {
			Reason string `json:"reason"`
		}
		if !bindJSON(c, &body) {
			return
		}
		o, err := svc.Reject(c.Request.Context(), user, c.Param("id"), body.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func outForDeliveryHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		o, err := svc.MarkOutForDelivery(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func reachedHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		o, err := svc.MarkReached(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func collectCashHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var body struct {
			Amount1 float64 `json:"amount1"`
			Amount2 float64 `json:"amount2"`
		}
		if !bindJSON(c, &body) {
			return
		}
		o, err := svc.CollectCash(c.Request.Context(), user, c.Param("id"), body.Amount1, body.Amount2)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func deliveredHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		o, err := svc.MarkDelivered(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func assignOrderHandler(svc *deliverysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var body struct {
			DeliveryPersonID string `json:"delivery_person_id"`
		}
		if !bindJSON(c, &body) {
			return
		}
		if body.DeliveryPersonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_person_id required", "code": "validation_error"})
			return
		}
		o, err := svc.Assign(c.Request.Context(), user, c.Param("id"), body.DeliveryPersonID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	zonesvc "freshbasket/internal/service/zone"
)

func listZonesHandler(svc *zonesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		zones, err := svc.List(c.Request.Context(), user)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"zones": zones})
	}
}

func createZoneHandler(svc *zonesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var in zonesvc.CreateInput
		if !bindJSON(c, &in) {
			return
		}
		z, err := svc.Create(c.Request.Context(), user, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, z)
	}
}

func updateZoneHandler(svc *zonesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		var in zonesvc.UpdateInput
		if !bindJSON(c, &in) {
			return
		}
		z, err := svc.Update(c.Request.Context(), user, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, z)
	}
}

func approveZoneHandler(svc *zonesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := currentUser(c)
		z, err := svc.Approve(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, z)
	}
}

func checkZoneHandler(svc *zonesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Pincode string `json:"pincode"`
		}
		if !bindJSON(c, &body) {
			return
		}
		if body.Pincode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pincode required", "code": "validation_error"})
			return
		}
		res, err := svc.Check(c.Request.Context(), body.Pincode)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

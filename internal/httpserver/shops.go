package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freshbasket/internal/service/shoprouter"
)

func listShopsHandler(repo shopLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		shops, err := repo.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shops": shops})
	}
}

func nearestShopHandler(svc *shoprouter.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if !bindJSON(c, &body) {
			return
		}
		if body.Lat == nil || body.Lng == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng required", "code": "validation_error"})
			return
		}
		shop, err := svc.Nearest(c.Request.Context(), *body.Lat, *body.Lng)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shop)
	}
}

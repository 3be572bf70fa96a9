package main

import (
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func promoHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/promo/validate", func(ctx *gin.Context) {
			var body types.ValidatePromoRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			quote, err := utils.EvaluatePromo(body.Code, body.TotalAmount)
			if err != nil {
				var rejection *types.PromoRejectionError
				if errors.As(err, &rejection) {
					ctx.JSON(http.StatusOK, gin.H{"success": false, "message": rejection.Reason})
					return
				}
				log.Printf("Error validating promo: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
		})
	return g
}

package main

import (
	"bookit/src/types"
	"bookit/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func experienceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/experiences", func(ctx *gin.Context) {
			experiences, err := utils.ListExperiences()
			if err != nil {
				log.Printf("Error fetching experiences: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "data": []any{}})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": experiences, "count": len(experiences)})
		}).
		GET("/experiences/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			experience, err := utils.GetExperience(params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "data": nil})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": experience})
		})
	return g
}

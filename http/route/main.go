package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-resource-registry/http/controller"
	middlewares "github.com/tnqbao/gau-resource-registry/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1/registry")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		objectRoutes := apiRoutes.Group("/objects")
		{
			objectRoutes.POST("/", ctrl.CreateObject)
			objectRoutes.PUT("/", ctrl.UpdateObject)
			objectRoutes.GET("/", ctrl.ListObjects)
			objectRoutes.GET("/lookup", ctrl.LookupObject)
			objectRoutes.GET("/:urn", ctrl.GetObjectByURN)
			objectRoutes.GET("/:urn/events", ctrl.GetObjectEvents)
		}

		thingRoutes := apiRoutes.Group("/things")
		{
			thingRoutes.POST("/", ctrl.CreateThing)
			thingRoutes.PUT("/", ctrl.UpdateThing)
			thingRoutes.GET("/", ctrl.ListThings)
			thingRoutes.POST("/batch", ctrl.BatchGetThings)
			thingRoutes.GET("/:urn", ctrl.GetThingByURN)
			thingRoutes.GET("/:urn/events", ctrl.GetThingEvents)
			thingRoutes.DELETE("/", ctrl.DeleteThingsByType)
			thingRoutes.DELETE("/:urn", ctrl.DeleteThing)
		}
	}
	return r
}

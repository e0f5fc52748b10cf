package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-resource-registry/urn"
	"github.com/tnqbao/gau-resource-registry/utils"
)

// GetObjectEvents returns the persisted lifecycle events of an object,
// oldest first.
func (ctrl *Controller) GetObjectEvents(c *gin.Context) {
	ctx := c.Request.Context()
	if _, ok := ctrl.accountUrn(c); !ok {
		return
	}

	id, err := urn.Decode(c.Param("urn"))
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	events, err := ctrl.Repository.AuditEventRepo.FindByResource("object", id)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Audit] Failed to load events for object %s", id)
		utils.JSON500(c, "internal error")
		return
	}
	utils.JSON200(c, events)
}

// GetThingEvents returns the persisted lifecycle events of a thing,
// oldest first.
func (ctrl *Controller) GetThingEvents(c *gin.Context) {
	ctx := c.Request.Context()
	if _, ok := ctrl.tenantUrn(c); !ok {
		return
	}

	id, err := urn.Decode(c.Param("urn"))
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	events, err := ctrl.Repository.AuditEventRepo.FindByResource("thing", id)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Audit] Failed to load events for thing %s", id)
		utils.JSON500(c, "internal error")
		return
	}
	utils.JSON200(c, events)
}

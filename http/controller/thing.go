package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-resource-registry/service"
	"github.com/tnqbao/gau-resource-registry/service/dto"
	"github.com/tnqbao/gau-resource-registry/urn"
	"github.com/tnqbao/gau-resource-registry/utils"
)

// The authenticated principal's id doubles as the tenant partition for
// thing resources.
func (ctrl *Controller) tenantUrn(c *gin.Context) (string, bool) {
	accountID, err := utils.GetAccountIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: "+err.Error())
		return "", false
	}
	return urn.Encode(service.TenantURNPrefix, accountID), true
}

func (ctrl *Controller) CreateThing(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	var req dto.CreateThingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Thing.Create(ctx, tenantUrn, &req)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thing] Create failed for tenant %s", tenantUrn)
		ctrl.respondServiceError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Thing] Created thing %s for tenant %s", resp.Urn, tenantUrn)
	utils.JSON201(c, resp)
}

func (ctrl *Controller) UpdateThing(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	var req dto.UpdateThingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Thing.Update(ctx, tenantUrn, &req)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thing] Update failed for tenant %s", tenantUrn)
		ctrl.respondServiceError(c, err)
		return
	}
	if resp == nil {
		utils.JSON404(c, "Thing not found")
		return
	}

	utils.JSON200(c, resp)
}

func (ctrl *Controller) GetThingByURN(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	resp, err := ctrl.Service.Thing.FindByURN(ctx, tenantUrn, c.Param("urn"))
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}
	if resp == nil {
		utils.JSON404(c, "Thing not found")
		return
	}
	utils.JSON200(c, resp)
}

func (ctrl *Controller) ListThings(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	var filters dto.ThingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.JSON400(c, "Invalid filters: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Thing.FindByFilters(ctx, tenantUrn, &filters)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thing] Search failed for tenant %s", tenantUrn)
		ctrl.respondServiceError(c, err)
		return
	}
	utils.JSON200(c, resp)
}

// BatchGetThings resolves a list of thing URNs, omitting unparseable
// and nonexistent entries instead of failing the whole batch.
func (ctrl *Controller) BatchGetThings(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	var req struct {
		Urns []string `json:"urns" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Thing.FindByURNs(ctx, tenantUrn, req.Urns)
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}
	utils.JSON200(c, resp)
}

// DeleteThing removes a thing and returns the deleted records so the
// caller can confirm what was removed.
func (ctrl *Controller) DeleteThing(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	deleted, err := ctrl.Service.Thing.Delete(ctx, tenantUrn, c.Param("urn"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thing] Delete failed for tenant %s", tenantUrn)
		ctrl.respondServiceError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Thing] Deleted %d thing(s) for tenant %s", len(deleted), tenantUrn)
	utils.JSON200(c, deleted)
}

func (ctrl *Controller) DeleteThingsByType(c *gin.Context) {
	ctx := c.Request.Context()
	tenantUrn, ok := ctrl.tenantUrn(c)
	if !ok {
		return
	}

	thingType := c.Query("type")
	if thingType == "" {
		utils.JSON400(c, "type is required")
		return
	}

	deleted, err := ctrl.Service.Thing.DeleteByType(ctx, tenantUrn, thingType)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thing] Delete by type failed for tenant %s", tenantUrn)
		ctrl.respondServiceError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Thing] Deleted %d thing(s) of type %s for tenant %s", len(deleted), thingType, tenantUrn)
	utils.JSON200(c, deleted)
}

package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-resource-registry/service"
	"github.com/tnqbao/gau-resource-registry/service/dto"
	"github.com/tnqbao/gau-resource-registry/urn"
	"github.com/tnqbao/gau-resource-registry/utils"
)

func (ctrl *Controller) accountUrn(c *gin.Context) (string, bool) {
	accountID, err := utils.GetAccountIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: "+err.Error())
		return "", false
	}
	return urn.Encode(service.AccountURNPrefix, accountID), true
}

func (ctrl *Controller) CreateObject(c *gin.Context) {
	ctx := c.Request.Context()
	accountUrn, ok := ctrl.accountUrn(c)
	if !ok {
		return
	}

	var req dto.CreateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Object.Create(ctx, accountUrn, &req)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Create failed for account %s", accountUrn)
		ctrl.respondServiceError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Object] Created object %s for account %s", resp.Urn, accountUrn)
	utils.JSON201(c, resp)
}

func (ctrl *Controller) UpdateObject(c *gin.Context) {
	ctx := c.Request.Context()
	accountUrn, ok := ctrl.accountUrn(c)
	if !ok {
		return
	}

	var req dto.UpdateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request body: "+err.Error())
		return
	}
	if (req.Urn == nil || *req.Urn == "") && (req.ObjectID == nil || *req.ObjectID == "") {
		utils.JSON400(c, "urn or object_id is required")
		return
	}

	resp, err := ctrl.Service.Object.Update(ctx, accountUrn, &req)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Update failed for account %s", accountUrn)
		ctrl.respondServiceError(c, err)
		return
	}
	if resp == nil {
		utils.JSON404(c, "Object not found")
		return
	}

	utils.JSON200(c, resp)
}

// LookupObject resolves an object by exact external identifier, or by
// external identifier prefix when only object_id_prefix is given.
func (ctrl *Controller) LookupObject(c *gin.Context) {
	ctx := c.Request.Context()
	accountUrn, ok := ctrl.accountUrn(c)
	if !ok {
		return
	}

	if objectID := c.Query("object_id"); objectID != "" {
		resp, err := ctrl.Service.Object.FindByObjectID(ctx, accountUrn, objectID)
		if err != nil {
			ctrl.respondServiceError(c, err)
			return
		}
		if resp == nil {
			utils.JSON404(c, "Object not found")
			return
		}
		utils.JSON200(c, resp)
		return
	}

	prefix := c.Query("object_id_prefix")
	if prefix == "" {
		utils.JSON400(c, "object_id or object_id_prefix is required")
		return
	}
	resp, err := ctrl.Service.Object.FindByObjectIDPrefix(ctx, accountUrn, prefix)
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}
	utils.JSON200(c, resp)
}

func (ctrl *Controller) GetObjectByURN(c *gin.Context) {
	ctx := c.Request.Context()
	accountUrn, ok := ctrl.accountUrn(c)
	if !ok {
		return
	}

	resp, err := ctrl.Service.Object.FindByURN(ctx, accountUrn, c.Param("urn"))
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}
	if resp == nil {
		utils.JSON404(c, "Object not found")
		return
	}
	utils.JSON200(c, resp)
}

func (ctrl *Controller) ListObjects(c *gin.Context) {
	ctx := c.Request.Context()
	accountUrn, ok := ctrl.accountUrn(c)
	if !ok {
		return
	}

	var filters dto.ObjectFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.JSON400(c, "Invalid filters: "+err.Error())
		return
	}

	resp, err := ctrl.Service.Object.FindByFilters(ctx, accountUrn, &filters)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Object] Search failed for account %s", accountUrn)
		ctrl.respondServiceError(c, err)
		return
	}
	utils.JSON200(c, resp)
}

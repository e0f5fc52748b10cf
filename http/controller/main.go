package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-resource-registry/config"
	"github.com/tnqbao/gau-resource-registry/infra"
	"github.com/tnqbao/gau-resource-registry/repository"
	"github.com/tnqbao/gau-resource-registry/service"
	"github.com/tnqbao/gau-resource-registry/urn"
	"github.com/tnqbao/gau-resource-registry/utils"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Service    *service.Service
	Repository *repository.Repository
}

func NewController(config *config.Config, infra *infra.Infra, svc *service.Service, repo *repository.Repository) *Controller {
	if svc == nil {
		panic("Failed to initialize Service")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Service:    svc,
		Repository: repo,
	}
}

// respondServiceError maps the service error taxonomy onto HTTP status
// codes.
func (ctrl *Controller) respondServiceError(c *gin.Context, err error) {
	var violation *service.ConstraintViolationError
	switch {
	case errors.Is(err, urn.ErrInvalidIdentifier):
		utils.JSON400(c, err.Error())
	case errors.Is(err, service.ErrIdentifierConflict):
		utils.JSON409(c, err.Error(), nil)
	case errors.As(err, &violation):
		utils.JSON409(c, "constraint violation", violation.Violations)
	default:
		utils.JSON500(c, "internal error")
	}
}

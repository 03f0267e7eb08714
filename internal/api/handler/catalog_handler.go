package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// CatalogHandler serves the public plan listings and the admin catalog forms.
// Domain catalog types are returned as-is; they carry no sensitive fields.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type minecraftPlanRequest struct {
	Name      string `json:"name"       validate:"required"`
	Category  string `json:"category"   validate:"required"`
	RAMGb     int    `json:"ram_gb"     validate:"required,gt=0"`
	StorageGb int    `json:"storage_gb" validate:"required,gt=0"`
	CPUCores  int    `json:"cpu_cores"  validate:"required,gt=0"`
	Slots     int    `json:"slots"      validate:"required,gt=0"`
	Price     string `json:"price"      validate:"required"`
}

type vpsPlanRequest struct {
	Name        string `json:"name"         validate:"required"`
	Tier        string `json:"tier"         validate:"required"`
	RAMGb       int    `json:"ram_gb"       validate:"required,gt=0"`
	StorageGb   int    `json:"storage_gb"   validate:"required,gt=0"`
	CPUCores    int    `json:"cpu_cores"    validate:"required,gt=0"`
	BandwidthTb int    `json:"bandwidth_tb" validate:"required,gt=0"`
	Price       string `json:"price"        validate:"required"`
}

type tldRequest struct {
	Name         string `json:"name"          validate:"required"`
	RegisterCost string `json:"register_cost" validate:"required"`
	RenewCost    string `json:"renew_cost"    validate:"required"`
}

type domainFeatureRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
}

func (h *CatalogHandler) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// MinecraftPlans handles GET /v1/catalog/minecraft.
//
// @Summary      List Minecraft hosting plans
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.MinecraftPlan
// @Router       /v1/catalog/minecraft [get]
func (h *CatalogHandler) MinecraftPlans(c echo.Context) error {
	plans, err := h.service.MinecraftPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// SaveMinecraftPlan handles POST /v1/admin/catalog/minecraft and
// PUT /v1/admin/catalog/minecraft/:id.
//
// @Summary      Create or update a Minecraft plan
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minecraftPlanRequest  true  "Plan fields"
// @Success      200      {object}  domain.MinecraftPlan
// @Failure      400      {object}  errorResponse
// @Router       /v1/admin/catalog/minecraft [post]
func (h *CatalogHandler) SaveMinecraftPlan(c echo.Context) error {
	var req minecraftPlanRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	plan, err := h.service.SaveMinecraftPlan(c.Request().Context(), &domain.MinecraftPlan{
		ID:        c.Param("id"),
		Name:      req.Name,
		Category:  req.Category,
		RAMGb:     req.RAMGb,
		StorageGb: req.StorageGb,
		CPUCores:  req.CPUCores,
		Slots:     req.Slots,
		Price:     req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// DeleteMinecraftPlan handles DELETE /v1/admin/catalog/minecraft/:id.
//
// @Summary      Delete a Minecraft plan
// @Tags         admin-catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Plan id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/catalog/minecraft/{id} [delete]
func (h *CatalogHandler) DeleteMinecraftPlan(c echo.Context) error {
	if err := h.service.DeleteMinecraftPlan(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VPSPlans handles GET /v1/catalog/vps.
//
// @Summary      List VPS plans
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.VPSPlan
// @Router       /v1/catalog/vps [get]
func (h *CatalogHandler) VPSPlans(c echo.Context) error {
	plans, err := h.service.VPSPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// SaveVPSPlan handles POST /v1/admin/catalog/vps and
// PUT /v1/admin/catalog/vps/:id.
//
// @Summary      Create or update a VPS plan
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      vpsPlanRequest  true  "Plan fields"
// @Success      200      {object}  domain.VPSPlan
// @Failure      400      {object}  errorResponse
// @Router       /v1/admin/catalog/vps [post]
func (h *CatalogHandler) SaveVPSPlan(c echo.Context) error {
	var req vpsPlanRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	plan, err := h.service.SaveVPSPlan(c.Request().Context(), &domain.VPSPlan{
		ID:          c.Param("id"),
		Name:        req.Name,
		Tier:        req.Tier,
		RAMGb:       req.RAMGb,
		StorageGb:   req.StorageGb,
		CPUCores:    req.CPUCores,
		BandwidthTb: req.BandwidthTb,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// DeleteVPSPlan handles DELETE /v1/admin/catalog/vps/:id.
//
// @Summary      Delete a VPS plan
// @Tags         admin-catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Plan id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/catalog/vps/{id} [delete]
func (h *CatalogHandler) DeleteVPSPlan(c echo.Context) error {
	if err := h.service.DeleteVPSPlan(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TLDs handles GET /v1/catalog/tlds.
//
// @Summary      List domain extensions with pricing
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.TLD
// @Router       /v1/catalog/tlds [get]
func (h *CatalogHandler) TLDs(c echo.Context) error {
	tlds, err := h.service.TLDs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tlds)
}

// SaveTLD handles POST /v1/admin/catalog/tlds and PUT /v1/admin/catalog/tlds/:id.
//
// @Summary      Create or update a TLD
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      tldRequest  true  "TLD fields"
// @Success      200      {object}  domain.TLD
// @Failure      400      {object}  errorResponse
// @Router       /v1/admin/catalog/tlds [post]
func (h *CatalogHandler) SaveTLD(c echo.Context) error {
	var req tldRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	tld, err := h.service.SaveTLD(c.Request().Context(), &domain.TLD{
		ID:           c.Param("id"),
		Name:         req.Name,
		RegisterCost: req.RegisterCost,
		RenewCost:    req.RenewCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tld)
}

// DeleteTLD handles DELETE /v1/admin/catalog/tlds/:id.
//
// @Summary      Delete a TLD
// @Tags         admin-catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "TLD id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/catalog/tlds/{id} [delete]
func (h *CatalogHandler) DeleteTLD(c echo.Context) error {
	if err := h.service.DeleteTLD(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DomainFeatures handles GET /v1/catalog/domain-features.
//
// @Summary      List domain landing-page features
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.DomainFeature
// @Router       /v1/catalog/domain-features [get]
func (h *CatalogHandler) DomainFeatures(c echo.Context) error {
	features, err := h.service.DomainFeatures(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, features)
}

// SaveDomainFeature handles POST /v1/admin/catalog/domain-features and
// PUT /v1/admin/catalog/domain-features/:id.
//
// @Summary      Create or update a domain feature
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domainFeatureRequest  true  "Feature fields"
// @Success      200      {object}  domain.DomainFeature
// @Failure      400      {object}  errorResponse
// @Router       /v1/admin/catalog/domain-features [post]
func (h *CatalogHandler) SaveDomainFeature(c echo.Context) error {
	var req domainFeatureRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return err
	}

	feature, err := h.service.SaveDomainFeature(c.Request().Context(), &domain.DomainFeature{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feature)
}

// DeleteDomainFeature handles DELETE /v1/admin/catalog/domain-features/:id.
//
// @Summary      Delete a domain feature
// @Tags         admin-catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Feature id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/catalog/domain-features/{id} [delete]
func (h *CatalogHandler) DeleteDomainFeature(c echo.Context) error {
	if err := h.service.DeleteDomainFeature(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/payload"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
	"github.com/leafclutch/leafclutch-backend/pkg/guard"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewServiceMgr)
	Registers = append(Registers, NewServiceTechMgr)
	Registers = append(Registers, NewServiceOfferingMgr)
}

type ServiceMgr struct {
	name string
	db   *gorm.DB
}

func NewServiceMgr(conf *RegisterConfig) Manager {
	return &ServiceMgr{
		name: "admin/services",
		db:   conf.DB,
	}
}

func (mgr *ServiceMgr) GetName() string { return mgr.name }

func (mgr *ServiceMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListServices)
	g.GET(":id", mgr.GetService)
}

func (mgr *ServiceMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ServiceMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateService)
	g.PATCH(":id", mgr.UpdateService)
	g.DELETE(":id", mgr.DeleteService)
}

type (
	ServiceCreateReq struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		PhotoURL    *string `json:"photo_url"`
		OfferingIDs []uint  `json:"offering_ids"`
		TechIDs     []uint  `json:"tech_ids"`
	}

	ServiceUpdateReq struct {
		Title       *string                  `json:"title"`
		Description payload.Optional[string] `json:"description"`
		PhotoURL    payload.Optional[string] `json:"photo_url"`
		OfferingIDs *[]uint                  `json:"offering_ids"`
		TechIDs     *[]uint                  `json:"tech_ids"`
	}

	ServiceResp struct {
		ID          uint      `json:"id"`
		Title       string    `json:"title"`
		Description *string   `json:"description"`
		PhotoURL    *string   `json:"photo_url"`
		Offerings   []string  `json:"offerings"`
		Techs       []string  `json:"techs"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)

func serviceResponse(svc *model.Service) ServiceResp {
	return ServiceResp{
		ID:          svc.ID,
		Title:       svc.Title,
		Description: svc.Description,
		PhotoURL:    svc.PhotoURL,
		Offerings: lo.Map(svc.OfferingMaps, func(m model.ServiceOfferingMap, _ int) string {
			return m.Offering.Name
		}),
		Techs: lo.Map(svc.TechMaps, func(m model.ServiceTechMap, _ int) string {
			return m.Tech.Name
		}),
		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
	}
}

func (mgr *ServiceMgr) loadService(c *gin.Context, id uint) (*model.Service, error) {
	var svc model.Service
	err := mgr.db.WithContext(c).
		Preload("OfferingMaps.Offering").
		Preload("TechMaps.Tech").
		First(&svc, id).Error
	return &svc, err
}

func replaceServiceOfferings(tx *gorm.DB, serviceID uint, offeringIDs []uint) error {
	var count int64
	if err := tx.Model(&model.ServiceOffering{}).Where("id IN ?", offeringIDs).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(lo.Uniq(offeringIDs)) {
		return errBadRequest("One or more offering IDs are invalid")
	}
	if err := tx.Where("service_id = ?", serviceID).Delete(&model.ServiceOfferingMap{}).Error; err != nil {
		return err
	}
	for _, offeringID := range offeringIDs {
		row := model.ServiceOfferingMap{
			ServiceID:  serviceID,
			OfferingID: offeringID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceServiceTechs(tx *gorm.DB, serviceID uint, techIDs []uint) error {
	var count int64
	if err := tx.Model(&model.ServiceTech{}).Where("id IN ?", techIDs).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(lo.Uniq(techIDs)) {
		return errBadRequest("One or more tech IDs are invalid")
	}
	if err := tx.Where("service_id = ?", serviceID).Delete(&model.ServiceTechMap{}).Error; err != nil {
		return err
	}
	for _, techID := range techIDs {
		row := model.ServiceTechMap{
			ServiceID: serviceID,
			TechID:    techID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateService godoc
// @Summary Create a service linked to existing offerings and technologies
// @Tags Service
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body ServiceCreateReq true "service fields"
// @Success 201 {object} resputil.Response[ServiceResp] "created service"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown reference"
// @Router /admin/services [post]
func (mgr *ServiceMgr) CreateService(c *gin.Context) {
	var req ServiceCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	svc := model.Service{
		Title:       req.Title,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
		if err := replaceServiceOfferings(tx, svc.ID, req.OfferingIDs); err != nil {
			return err
		}
		return replaceServiceTechs(tx, svc.ID, req.TechIDs)
	})
	if err != nil {
		var br errBadRequest
		if errors.As(err, &br) {
			resputil.BadRequestError(c, br.Error())
		} else {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
		}
		return
	}

	created, err := mgr.loadService(c, svc.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, serviceResponse(created))
}

// ListServices godoc
// @Summary List all services with their offerings and tech stacks
// @Tags Service
// @Produce json
// @Success 200 {object} resputil.Response[[]ServiceResp] "services"
// @Router /admin/services [get]
func (mgr *ServiceMgr) ListServices(c *gin.Context) {
	var services []model.Service
	err := mgr.db.WithContext(c).
		Preload("OfferingMaps.Offering").
		Preload("TechMaps.Tech").
		Find(&services).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(services, func(svc model.Service, _ int) ServiceResp {
		return serviceResponse(&svc)
	}))
}

// GetService godoc
// @Summary Get one service
// @Tags Service
// @Produce json
// @Param id path int true "service id"
// @Success 200 {object} resputil.Response[ServiceResp] "service"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/services/{id} [get]
func (mgr *ServiceMgr) GetService(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	svc, err := mgr.loadService(c, req.ID)
	if err != nil {
		resputil.NotFoundError(c, "Service not found")
		return
	}
	resputil.Success(c, serviceResponse(svc))
}

// UpdateService godoc
// @Summary Partially update a service, link lists replaced wholesale when present
// @Tags Service
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "service id"
// @Param data body ServiceUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[ServiceResp] "updated service"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown reference"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/services/{id} [patch]
func (mgr *ServiceMgr) UpdateService(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req ServiceUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var svc model.Service
	if err := mgr.db.WithContext(c).First(&svc, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service not found")
		return
	}

	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description.Set {
		svc.Description = req.Description.Ptr()
	}
	if req.PhotoURL.Set {
		svc.PhotoURL = req.PhotoURL.Ptr()
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&svc).Error; err != nil {
			return err
		}
		if req.OfferingIDs != nil {
			if err := replaceServiceOfferings(tx, svc.ID, *req.OfferingIDs); err != nil {
				return err
			}
		}
		if req.TechIDs != nil {
			return replaceServiceTechs(tx, svc.ID, *req.TechIDs)
		}
		return nil
	})
	if err != nil {
		var br errBadRequest
		if errors.As(err, &br) {
			resputil.BadRequestError(c, br.Error())
		} else {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
		}
		return
	}

	updated, err := mgr.loadService(c, svc.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, serviceResponse(updated))
}

// DeleteService godoc
// @Summary Delete a service with its offering and tech links
// @Tags Service
// @Produce json
// @Security Bearer
// @Param id path int true "service id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/services/{id} [delete]
func (mgr *ServiceMgr) DeleteService(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var svc model.Service
	if err := mgr.db.WithContext(c).First(&svc, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service not found")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", svc.ID).Delete(&model.ServiceOfferingMap{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", svc.ID).Delete(&model.ServiceTechMap{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Service deleted successfully")
}

// ---------------------------------------------------------------------------
// Service techs

type ServiceTechMgr struct {
	name string
	db   *gorm.DB
}

func NewServiceTechMgr(conf *RegisterConfig) Manager {
	return &ServiceTechMgr{
		name: "admin/service-techs",
		db:   conf.DB,
	}
}

func (mgr *ServiceTechMgr) GetName() string { return mgr.name }

func (mgr *ServiceTechMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListTechs)
}

func (mgr *ServiceTechMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ServiceTechMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateTech)
	g.PUT(":id", mgr.UpdateTech)
	g.DELETE(":id", mgr.DeleteTech)
}

type (
	NamedCreateReq struct {
		Name string `json:"name" binding:"required"`
	}

	NamedResp struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
)

// CreateTech godoc
// @Summary Create a technology with a unique name
// @Tags ServiceTech
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body NamedCreateReq true "tech name"
// @Success 201 {object} resputil.Response[NamedResp] "created tech"
// @Failure 400 {object} resputil.Response[any] "duplicate name"
// @Router /admin/service-techs [post]
func (mgr *ServiceTechMgr) CreateTech(c *gin.Context) {
	var req NamedCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var count int64
	if err := mgr.db.WithContext(c).Model(&model.ServiceTech{}).
		Where("name = ?", req.Name).Count(&count).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if count > 0 {
		resputil.BadRequestError(c, "Service tech already exists")
		return
	}

	tech := model.ServiceTech{Name: req.Name}
	if err := mgr.db.WithContext(c).Create(&tech).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, NamedResp{ID: tech.ID, Name: tech.Name})
}

// ListTechs godoc
// @Summary List all technologies
// @Tags ServiceTech
// @Produce json
// @Success 200 {object} resputil.Response[[]NamedResp] "techs"
// @Router /admin/service-techs [get]
func (mgr *ServiceTechMgr) ListTechs(c *gin.Context) {
	var techs []model.ServiceTech
	if err := mgr.db.WithContext(c).Order("name ASC").Find(&techs).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(techs, func(t model.ServiceTech, _ int) NamedResp {
		return NamedResp{ID: t.ID, Name: t.Name}
	}))
}

// UpdateTech godoc
// @Summary Rename a technology
// @Tags ServiceTech
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "tech id"
// @Param data body NamedCreateReq true "new name"
// @Success 200 {object} resputil.Response[NamedResp] "updated tech"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/service-techs/{id} [put]
func (mgr *ServiceTechMgr) UpdateTech(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req NamedCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var tech model.ServiceTech
	if err := mgr.db.WithContext(c).First(&tech, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service tech not found")
		return
	}

	tech.Name = req.Name
	if err := mgr.db.WithContext(c).Save(&tech).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, NamedResp{ID: tech.ID, Name: tech.Name})
}

// DeleteTech godoc
// @Summary Delete a technology unless services or projects still use it
// @Tags ServiceTech
// @Produce json
// @Security Bearer
// @Param id path int true "tech id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 400 {object} resputil.Response[any] "still referenced"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/service-techs/{id} [delete]
func (mgr *ServiceTechMgr) DeleteTech(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var tech model.ServiceTech
	if err := mgr.db.WithContext(c).First(&tech, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service tech not found")
		return
	}

	var serviceMaps []model.ServiceTechMap
	if err := mgr.db.WithContext(c).Preload("Service").
		Where("tech_id = ?", tech.ID).Find(&serviceMaps).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := guard.CheckDeletable("service tech", "service", serviceMaps,
		func(m model.ServiceTechMap) string { return m.Service.Title }); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var projectMaps []model.ProjectTechMap
	if err := mgr.db.WithContext(c).Preload("Project").
		Where("tech_id = ?", tech.ID).Find(&projectMaps).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := guard.CheckDeletable("service tech", "project", projectMaps,
		func(m model.ProjectTechMap) string { return m.Project.Title }); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := mgr.db.WithContext(c).Delete(&tech).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Service tech deleted successfully")
}

// ---------------------------------------------------------------------------
// Service offerings

type ServiceOfferingMgr struct {
	name string
	db   *gorm.DB
}

func NewServiceOfferingMgr(conf *RegisterConfig) Manager {
	return &ServiceOfferingMgr{
		name: "admin/service-offerings",
		db:   conf.DB,
	}
}

func (mgr *ServiceOfferingMgr) GetName() string { return mgr.name }

func (mgr *ServiceOfferingMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListOfferings)
}

func (mgr *ServiceOfferingMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ServiceOfferingMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateOffering)
	g.PUT(":id", mgr.UpdateOffering)
	g.DELETE(":id", mgr.DeleteOffering)
}

// CreateOffering godoc
// @Summary Create an offering with a unique name
// @Tags ServiceOffering
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body NamedCreateReq true "offering name"
// @Success 201 {object} resputil.Response[NamedResp] "created offering"
// @Failure 400 {object} resputil.Response[any] "duplicate name"
// @Router /admin/service-offerings [post]
func (mgr *ServiceOfferingMgr) CreateOffering(c *gin.Context) {
	var req NamedCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var count int64
	if err := mgr.db.WithContext(c).Model(&model.ServiceOffering{}).
		Where("name = ?", req.Name).Count(&count).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if count > 0 {
		resputil.BadRequestError(c, "Service offering already exists")
		return
	}

	offering := model.ServiceOffering{Name: req.Name}
	if err := mgr.db.WithContext(c).Create(&offering).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, NamedResp{ID: offering.ID, Name: offering.Name})
}

// ListOfferings godoc
// @Summary List all offerings
// @Tags ServiceOffering
// @Produce json
// @Success 200 {object} resputil.Response[[]NamedResp] "offerings"
// @Router /admin/service-offerings [get]
func (mgr *ServiceOfferingMgr) ListOfferings(c *gin.Context) {
	var offerings []model.ServiceOffering
	if err := mgr.db.WithContext(c).Order("name ASC").Find(&offerings).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(offerings, func(o model.ServiceOffering, _ int) NamedResp {
		return NamedResp{ID: o.ID, Name: o.Name}
	}))
}

// UpdateOffering godoc
// @Summary Rename an offering
// @Tags ServiceOffering
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "offering id"
// @Param data body NamedCreateReq true "new name"
// @Success 200 {object} resputil.Response[NamedResp] "updated offering"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/service-offerings/{id} [put]
func (mgr *ServiceOfferingMgr) UpdateOffering(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req NamedCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var offering model.ServiceOffering
	if err := mgr.db.WithContext(c).First(&offering, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service offering not found")
		return
	}

	offering.Name = req.Name
	if err := mgr.db.WithContext(c).Save(&offering).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, NamedResp{ID: offering.ID, Name: offering.Name})
}

// DeleteOffering godoc
// @Summary Delete an offering unless services still use it
// @Tags ServiceOffering
// @Produce json
// @Security Bearer
// @Param id path int true "offering id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 400 {object} resputil.Response[any] "still referenced"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/service-offerings/{id} [delete]
func (mgr *ServiceOfferingMgr) DeleteOffering(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var offering model.ServiceOffering
	if err := mgr.db.WithContext(c).First(&offering, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Service offering not found")
		return
	}

	var maps []model.ServiceOfferingMap
	if err := mgr.db.WithContext(c).Preload("Service").
		Where("offering_id = ?", offering.ID).Find(&maps).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := guard.CheckDeletable("service offering", "service", maps,
		func(m model.ServiceOfferingMap) string { return m.Service.Title }); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := mgr.db.WithContext(c).Delete(&offering).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Service offering deleted successfully")
}

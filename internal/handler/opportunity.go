package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/payload"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewOpportunityMgr)
}

type OpportunityMgr struct {
	name string
	db   *gorm.DB
}

func NewOpportunityMgr(conf *RegisterConfig) Manager {
	return &OpportunityMgr{
		name: "api/admin/opportunities",
		db:   conf.DB,
	}
}

func (mgr *OpportunityMgr) GetName() string { return mgr.name }

func (mgr *OpportunityMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListOpportunities)
	g.GET(":id", mgr.GetOpportunity)
}

func (mgr *OpportunityMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *OpportunityMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateOpportunity)
	g.PATCH(":id", mgr.UpdateOpportunity)
	g.DELETE(":id", mgr.DeleteOpportunity)
}

type (
	JobDetailReq struct {
		EmploymentType *string `json:"employment_type"`
		SalaryRange    *string `json:"salary_range"`
	}

	InternshipDetailReq struct {
		DurationMonths *int    `json:"duration_months"`
		Stipend        *string `json:"stipend"`
	}

	OpportunityCreateReq struct {
		Title             string                `json:"title" binding:"required"`
		Description       *string               `json:"description"`
		Location          *string               `json:"location"`
		Type              model.OpportunityType `json:"type" binding:"required,oneof=JOB INTERNSHIP"`
		Requirements      []string              `json:"requirements"`
		JobDetails        *JobDetailReq         `json:"job_details"`
		InternshipDetails *InternshipDetailReq  `json:"internship_details"`
	}

	OpportunityUpdateReq struct {
		Title             *string                  `json:"title"`
		Description       payload.Optional[string] `json:"description"`
		Location          payload.Optional[string] `json:"location"`
		Requirements      *[]string                `json:"requirements"`
		JobDetails        *JobDetailReq            `json:"job_details"`
		InternshipDetails *InternshipDetailReq     `json:"internship_details"`
	}

	OpportunityListQuery struct {
		payload.PageReqQuery
		Type     *model.OpportunityType `form:"type" binding:"omitempty,oneof=JOB INTERNSHIP"`
		Location *string                `form:"location"`
		Search   *string                `form:"search"`
	}

	JobDetailResp struct {
		EmploymentType *string `json:"employment_type"`
		SalaryRange    *string `json:"salary_range"`
	}

	InternshipDetailResp struct {
		DurationMonths *int    `json:"duration_months"`
		Stipend        *string `json:"stipend"`
	}

	OpportunityResp struct {
		ID                uint                  `json:"id"`
		Title             string                `json:"title"`
		Description       *string               `json:"description"`
		Location          *string               `json:"location"`
		Type              model.OpportunityType `json:"type"`
		Requirements      []string              `json:"requirements"`
		JobDetails        *JobDetailResp        `json:"job_details"`
		InternshipDetails *InternshipDetailResp `json:"internship_details"`
		CreatedAt         time.Time             `json:"created_at"`
		UpdatedAt         time.Time             `json:"updated_at"`
	}
)

// validateOpportunityDetails rejects a detail payload that does not match the
// posting type before anything touches the database.
func validateOpportunityDetails(t model.OpportunityType, job *JobDetailReq, internship *InternshipDetailReq) error {
	switch t {
	case model.OpportunityJob:
		if internship != nil {
			return errBadRequest("internship_details not allowed for JOB opportunities")
		}
	case model.OpportunityInternship:
		if job != nil {
			return errBadRequest("job_details not allowed for INTERNSHIP opportunities")
		}
	default:
		return errBadRequest("Invalid opportunity type")
	}
	return nil
}

func opportunityResponse(op *model.Opportunity) OpportunityResp {
	resp := OpportunityResp{
		ID:          op.ID,
		Title:       op.Title,
		Description: op.Description,
		Location:    op.Location,
		Type:        op.Type,
		Requirements: lo.Map(op.Requirements, func(r model.OpportunityRequirement, _ int) string {
			return r.Text
		}),
		CreatedAt: op.CreatedAt,
		UpdatedAt: op.UpdatedAt,
	}
	if op.JobDetail != nil {
		resp.JobDetails = &JobDetailResp{
			EmploymentType: op.JobDetail.EmploymentType,
			SalaryRange:    op.JobDetail.SalaryRange,
		}
	}
	if op.InternshipDetail != nil {
		resp.InternshipDetails = &InternshipDetailResp{
			DurationMonths: op.InternshipDetail.DurationMonths,
			Stipend:        op.InternshipDetail.Stipend,
		}
	}
	return resp
}

func (mgr *OpportunityMgr) loadOpportunity(c *gin.Context, id uint) (*model.Opportunity, error) {
	var op model.Opportunity
	err := mgr.db.WithContext(c).
		Preload("JobDetail").
		Preload("InternshipDetail").
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&op, id).Error
	return &op, err
}

func replaceRequirements(tx *gorm.DB, opportunityID uint, texts []string) error {
	if err := tx.Where("opportunity_id = ?", opportunityID).Delete(&model.OpportunityRequirement{}).Error; err != nil {
		return err
	}
	for i, text := range texts {
		row := model.OpportunityRequirement{
			OpportunityID: opportunityID,
			Text:          text,
			Position:      i,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateOpportunity godoc
// @Summary Create a job or internship posting with its matching detail record
// @Tags Opportunity
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body OpportunityCreateReq true "opportunity fields"
// @Success 201 {object} resputil.Response[OpportunityResp] "created opportunity"
// @Failure 400 {object} resputil.Response[any] "validation error or mismatched details"
// @Router /api/admin/opportunities [post]
func (mgr *OpportunityMgr) CreateOpportunity(c *gin.Context) {
	var req OpportunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if err := validateOpportunityDetails(req.Type, req.JobDetails, req.InternshipDetails); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	op := model.Opportunity{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&op).Error; err != nil {
			return err
		}
		switch req.Type {
		case model.OpportunityJob:
			detail := model.JobDetail{OpportunityID: op.ID}
			if req.JobDetails != nil {
				detail.EmploymentType = req.JobDetails.EmploymentType
				detail.SalaryRange = req.JobDetails.SalaryRange
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		case model.OpportunityInternship:
			detail := model.InternshipDetail{OpportunityID: op.ID}
			if req.InternshipDetails != nil {
				detail.DurationMonths = req.InternshipDetails.DurationMonths
				detail.Stipend = req.InternshipDetails.Stipend
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return replaceRequirements(tx, op.ID, req.Requirements)
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	created, err := mgr.loadOpportunity(c, op.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, opportunityResponse(created))
}

// ListOpportunities godoc
// @Summary List postings, filterable by type, location and title, newest first
// @Tags Opportunity
// @Produce json
// @Param type query string false "JOB or INTERNSHIP"
// @Param location query string false "location substring"
// @Param search query string false "title substring"
// @Param page query int false "page number, starting at 1"
// @Param page_size query int false "page size, at most 100"
// @Success 200 {object} resputil.Response[payload.PageResp[OpportunityResp]] "postings"
// @Router /api/admin/opportunities [get]
func (mgr *OpportunityMgr) ListOpportunities(c *gin.Context) {
	var req OpportunityListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	req.Normalize()

	query := mgr.db.WithContext(c).Model(&model.Opportunity{})
	if req.Type != nil {
		query = query.Where("type = ?", *req.Type)
	}
	if req.Location != nil {
		query = query.Where("location ILIKE ?", "%"+*req.Location+"%")
	}
	if req.Search != nil {
		query = query.Where("title ILIKE ?", "%"+*req.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	var ops []model.Opportunity
	err := query.
		Preload("JobDetail").
		Preload("InternshipDetail").
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&ops).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, payload.PageResp[OpportunityResp]{
		Items: lo.Map(ops, func(op model.Opportunity, _ int) OpportunityResp {
			return opportunityResponse(&op)
		}),
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

// GetOpportunity godoc
// @Summary Get one posting
// @Tags Opportunity
// @Produce json
// @Param id path int true "opportunity id"
// @Success 200 {object} resputil.Response[OpportunityResp] "posting"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /api/admin/opportunities/{id} [get]
func (mgr *OpportunityMgr) GetOpportunity(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	op, err := mgr.loadOpportunity(c, req.ID)
	if err != nil {
		resputil.NotFoundError(c, "Opportunity not found")
		return
	}
	resputil.Success(c, opportunityResponse(op))
}

// UpdateOpportunity godoc
// @Summary Partially update a posting, its type is immutable
// @Tags Opportunity
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "opportunity id"
// @Param data body OpportunityUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[OpportunityResp] "updated posting"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /api/admin/opportunities/{id} [patch]
func (mgr *OpportunityMgr) UpdateOpportunity(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req OpportunityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	op, err := mgr.loadOpportunity(c, uri.ID)
	if err != nil {
		resputil.NotFoundError(c, "Opportunity not found")
		return
	}

	if req.Title != nil {
		op.Title = *req.Title
	}
	if req.Description.Set {
		op.Description = req.Description.Ptr()
	}
	if req.Location.Set {
		op.Location = req.Location.Ptr()
	}

	err = mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Opportunity{}).Where("id = ?", op.ID).Updates(map[string]any{
			"title":       op.Title,
			"description": op.Description,
			"location":    op.Location,
		}).Error; err != nil {
			return err
		}

		// Only the detail payload matching the posting type is applied.
		if op.Type == model.OpportunityJob && req.JobDetails != nil && op.JobDetail != nil {
			op.JobDetail.EmploymentType = req.JobDetails.EmploymentType
			op.JobDetail.SalaryRange = req.JobDetails.SalaryRange
			if err := tx.Save(op.JobDetail).Error; err != nil {
				return err
			}
		}
		if op.Type == model.OpportunityInternship && req.InternshipDetails != nil && op.InternshipDetail != nil {
			op.InternshipDetail.DurationMonths = req.InternshipDetails.DurationMonths
			op.InternshipDetail.Stipend = req.InternshipDetails.Stipend
			if err := tx.Save(op.InternshipDetail).Error; err != nil {
				return err
			}
		}

		if req.Requirements != nil {
			return replaceRequirements(tx, op.ID, *req.Requirements)
		}
		return nil
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	updated, err := mgr.loadOpportunity(c, op.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, opportunityResponse(updated))
}

// DeleteOpportunity godoc
// @Summary Delete a posting with its details and requirements
// @Tags Opportunity
// @Produce json
// @Security Bearer
// @Param id path int true "opportunity id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /api/admin/opportunities/{id} [delete]
func (mgr *OpportunityMgr) DeleteOpportunity(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var op model.Opportunity
	if err := mgr.db.WithContext(c).First(&op, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Opportunity not found")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("opportunity_id = ?", op.ID).Delete(&model.JobDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("opportunity_id = ?", op.ID).Delete(&model.InternshipDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("opportunity_id = ?", op.ID).Delete(&model.OpportunityRequirement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&op).Error
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Opportunity deleted successfully")
}

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
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name string
	db   *gorm.DB
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name: "admin/projects",
		db:   conf.DB,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListProjects)
	g.GET(":id", mgr.GetProject)
	g.GET(":id/feedbacks", mgr.ListFeedbacks)
}

func (mgr *ProjectMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateProject)
	g.PATCH(":id", mgr.UpdateProject)
	g.DELETE(":id", mgr.DeleteProject)
	g.POST(":id/feedbacks", mgr.CreateFeedback)
	g.DELETE(":id/feedbacks/:fid", mgr.DeleteFeedback)
}

type (
	ProjectCreateReq struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		PhotoURL    *string `json:"photo_url"`
		ProjectLink *string `json:"project_link"`
		TechIDs     []uint  `json:"tech_ids"`
	}

	ProjectUpdateReq struct {
		Title       *string                  `json:"title"`
		Description payload.Optional[string] `json:"description"`
		PhotoURL    payload.Optional[string] `json:"photo_url"`
		ProjectLink payload.Optional[string] `json:"project_link"`
		TechIDs     *[]uint                  `json:"tech_ids"`
	}

	FeedbackCreateReq struct {
		ClientName          string  `json:"client_name" binding:"required"`
		ClientPhoto         *string `json:"client_photo"`
		FeedbackDescription *string `json:"feedback_description"`
		Rating              int     `json:"rating" binding:"required,gte=1,lte=5"`
	}

	FeedbackResp struct {
		ID                  uint    `json:"id"`
		ClientName          string  `json:"client_name"`
		ClientPhoto         *string `json:"client_photo"`
		FeedbackDescription *string `json:"feedback_description"`
		Rating              int     `json:"rating"`
	}

	ProjectResp struct {
		ID          uint           `json:"id"`
		Title       string         `json:"title"`
		Description *string        `json:"description"`
		PhotoURL    *string        `json:"photo_url"`
		ProjectLink *string        `json:"project_link"`
		Techs       []string       `json:"techs"`
		Feedbacks   []FeedbackResp `json:"feedbacks"`
		CreatedAt   time.Time      `json:"created_at"`
		UpdatedAt   time.Time      `json:"updated_at"`
	}
)

func projectResponse(project *model.Project) ProjectResp {
	return ProjectResp{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		PhotoURL:    project.PhotoURL,
		ProjectLink: project.ProjectLink,
		Techs: lo.Map(project.TechMaps, func(m model.ProjectTechMap, _ int) string {
			return m.Tech.Name
		}),
		Feedbacks: lo.Map(project.Feedbacks, func(f model.ProjectFeedback, _ int) FeedbackResp {
			return FeedbackResp{
				ID:                  f.ID,
				ClientName:          f.ClientName,
				ClientPhoto:         f.ClientPhoto,
				FeedbackDescription: f.FeedbackDescription,
				Rating:              f.Rating,
			}
		}),
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

func (mgr *ProjectMgr) loadProject(c *gin.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := mgr.db.WithContext(c).
		Preload("TechMaps.Tech").
		Preload("Feedbacks").
		First(&project, id).Error
	return &project, err
}

// replaceProjectTechs verifies every tech id and rebuilds the join rows.
func replaceProjectTechs(tx *gorm.DB, projectID uint, techIDs []uint) error {
	var count int64
	if err := tx.Model(&model.ServiceTech{}).Where("id IN ?", techIDs).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(lo.Uniq(techIDs)) {
		return errBadRequest("One or more tech IDs are invalid")
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectTechMap{}).Error; err != nil {
		return err
	}
	for _, techID := range techIDs {
		row := model.ProjectTechMap{
			ProjectID: projectID,
			TechID:    techID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateProject godoc
// @Summary Create a project linked to existing technologies
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body ProjectCreateReq true "project fields"
// @Success 201 {object} resputil.Response[ProjectResp] "created project"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown tech"
// @Router /admin/projects [post]
func (mgr *ProjectMgr) CreateProject(c *gin.Context) {
	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	project := model.Project{
		Title:       req.Title,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		ProjectLink: req.ProjectLink,
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return replaceProjectTechs(tx, project.ID, req.TechIDs)
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

	created, err := mgr.loadProject(c, project.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, projectResponse(created))
}

// ListProjects godoc
// @Summary List all projects with techs and feedbacks
// @Tags Project
// @Produce json
// @Success 200 {object} resputil.Response[[]ProjectResp] "projects"
// @Router /admin/projects [get]
func (mgr *ProjectMgr) ListProjects(c *gin.Context) {
	var projects []model.Project
	err := mgr.db.WithContext(c).
		Preload("TechMaps.Tech").
		Preload("Feedbacks").
		Find(&projects).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(projects, func(p model.Project, _ int) ProjectResp {
		return projectResponse(&p)
	}))
}

// GetProject godoc
// @Summary Get one project
// @Tags Project
// @Produce json
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ProjectResp] "project"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/projects/{id} [get]
func (mgr *ProjectMgr) GetProject(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	project, err := mgr.loadProject(c, req.ID)
	if err != nil {
		resputil.NotFoundError(c, "Project not found")
		return
	}
	resputil.Success(c, projectResponse(project))
}

// UpdateProject godoc
// @Summary Partially update a project, tech list replaced wholesale when present
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body ProjectUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[ProjectResp] "updated project"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown tech"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/projects/{id} [patch]
func (mgr *ProjectMgr) UpdateProject(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var project model.Project
	if err := mgr.db.WithContext(c).First(&project, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Project not found")
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description.Set {
		project.Description = req.Description.Ptr()
	}
	if req.PhotoURL.Set {
		project.PhotoURL = req.PhotoURL.Ptr()
	}
	if req.ProjectLink.Set {
		project.ProjectLink = req.ProjectLink.Ptr()
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		if req.TechIDs != nil {
			return replaceProjectTechs(tx, project.ID, *req.TechIDs)
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

	updated, err := mgr.loadProject(c, project.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, projectResponse(updated))
}

// DeleteProject godoc
// @Summary Delete a project with its feedbacks and tech links
// @Tags Project
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/projects/{id} [delete]
func (mgr *ProjectMgr) DeleteProject(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var project model.Project
	if err := mgr.db.WithContext(c).First(&project, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Project not found")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectTechMap{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectFeedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Project deleted successfully")
}

// CreateFeedback godoc
// @Summary Attach a client feedback to a project
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body FeedbackCreateReq true "feedback fields"
// @Success 201 {object} resputil.Response[FeedbackResp] "created feedback"
// @Failure 404 {object} resputil.Response[any] "project not found"
// @Router /admin/projects/{id}/feedbacks [post]
func (mgr *ProjectMgr) CreateFeedback(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req FeedbackCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var project model.Project
	if err := mgr.db.WithContext(c).First(&project, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Project not found")
		return
	}

	feedback := model.ProjectFeedback{
		ProjectID:           project.ID,
		ClientName:          req.ClientName,
		ClientPhoto:         req.ClientPhoto,
		FeedbackDescription: req.FeedbackDescription,
		Rating:              req.Rating,
	}
	if err := mgr.db.WithContext(c).Create(&feedback).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, FeedbackResp{
		ID:                  feedback.ID,
		ClientName:          feedback.ClientName,
		ClientPhoto:         feedback.ClientPhoto,
		FeedbackDescription: feedback.FeedbackDescription,
		Rating:              feedback.Rating,
	})
}

// ListFeedbacks godoc
// @Summary List the feedbacks of a project
// @Tags Project
// @Produce json
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]FeedbackResp] "feedbacks"
// @Failure 404 {object} resputil.Response[any] "project not found"
// @Router /admin/projects/{id}/feedbacks [get]
func (mgr *ProjectMgr) ListFeedbacks(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var project model.Project
	if err := mgr.db.WithContext(c).First(&project, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Project not found")
		return
	}

	var feedbacks []model.ProjectFeedback
	if err := mgr.db.WithContext(c).Where("project_id = ?", project.ID).Find(&feedbacks).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(feedbacks, func(f model.ProjectFeedback, _ int) FeedbackResp {
		return FeedbackResp{
			ID:                  f.ID,
			ClientName:          f.ClientName,
			ClientPhoto:         f.ClientPhoto,
			FeedbackDescription: f.FeedbackDescription,
			Rating:              f.Rating,
		}
	}))
}

type feedbackURI struct {
	ID         uint `uri:"id" binding:"required"`
	FeedbackID uint `uri:"fid" binding:"required"`
}

// DeleteFeedback godoc
// @Summary Remove one feedback from a project
// @Tags Project
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param fid path int true "feedback id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/projects/{id}/feedbacks/{fid} [delete]
func (mgr *ProjectMgr) DeleteFeedback(c *gin.Context) {
	var uri feedbackURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var feedback model.ProjectFeedback
	err := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.FeedbackID, uri.ID).
		First(&feedback).Error
	if err != nil {
		resputil.NotFoundError(c, "Feedback not found")
		return
	}

	if err := mgr.db.WithContext(c).Delete(&feedback).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Feedback deleted successfully")
}

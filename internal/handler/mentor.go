package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/payload"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
	"github.com/leafclutch/leafclutch-backend/pkg/guard"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewMentorMgr)
}

type MentorMgr struct {
	name string
	db   *gorm.DB
}

func NewMentorMgr(conf *RegisterConfig) Manager {
	return &MentorMgr{
		name: "admin/mentors",
		db:   conf.DB,
	}
}

func (mgr *MentorMgr) GetName() string { return mgr.name }

func (mgr *MentorMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *MentorMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *MentorMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListMentors)
	g.POST("", mgr.CreateMentor)
	g.GET(":id", mgr.GetMentor)
	g.PUT(":id", mgr.UpdateMentor)
	g.DELETE(":id", mgr.DeleteMentor)
}

type (
	MentorCreateReq struct {
		Name           string  `json:"name" binding:"required"`
		PhotoURL       *string `json:"photo_url"`
		Specialization *string `json:"specialization"`
	}

	MentorUpdateReq struct {
		Name           *string                   `json:"name"`
		PhotoURL       payload.Optional[string]  `json:"photo_url"`
		Specialization payload.Optional[string]  `json:"specialization"`
	}

	MentorResp struct {
		ID             uint      `json:"id"`
		Name           string    `json:"name"`
		PhotoURL       *string   `json:"photo_url"`
		Specialization *string   `json:"specialization"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}
)

// normalizeMentorName is applied before every write and uniqueness check so
// that "  Ada " and "ada" are the same mentor.
func normalizeMentorName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func mentorResponse(mentor *model.Mentor) MentorResp {
	return MentorResp{
		ID:             mentor.ID,
		Name:           mentor.Name,
		PhotoURL:       mentor.PhotoURL,
		Specialization: mentor.Specialization,
		CreatedAt:      mentor.CreatedAt,
		UpdatedAt:      mentor.UpdatedAt,
	}
}

// ListMentors godoc
// @Summary List all mentors ordered by name
// @Tags Mentor
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]MentorResp] "mentors"
// @Router /admin/mentors [get]
func (mgr *MentorMgr) ListMentors(c *gin.Context) {
	var mentors []model.Mentor
	if err := mgr.db.WithContext(c).Order("name asc").Find(&mentors).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resp := make([]MentorResp, 0, len(mentors))
	for i := range mentors {
		resp = append(resp, mentorResponse(&mentors[i]))
	}
	resputil.Success(c, resp)
}

// CreateMentor godoc
// @Summary Create a mentor, name is normalized and must be unique
// @Tags Mentor
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body MentorCreateReq true "mentor fields"
// @Success 201 {object} resputil.Response[MentorResp] "created mentor"
// @Failure 400 {object} resputil.Response[any] "duplicate name"
// @Router /admin/mentors [post]
func (mgr *MentorMgr) CreateMentor(c *gin.Context) {
	var req MentorCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	name := normalizeMentorName(req.Name)

	// Application-level uniqueness check. Two concurrent creates can still
	// race between this check and the insert.
	var count int64
	if err := mgr.db.WithContext(c).Model(&model.Mentor{}).Where("name = ?", name).Count(&count).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if count > 0 {
		resputil.BadRequestError(c, "Mentor already exists")
		return
	}

	mentor := model.Mentor{
		Name:           name,
		PhotoURL:       req.PhotoURL,
		Specialization: req.Specialization,
	}
	if err := mgr.db.WithContext(c).Create(&mentor).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, mentorResponse(&mentor))
}

// GetMentor godoc
// @Summary Get one mentor by id
// @Tags Mentor
// @Produce json
// @Security Bearer
// @Param id path int true "mentor id"
// @Success 200 {object} resputil.Response[MentorResp] "mentor"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/mentors/{id} [get]
func (mgr *MentorMgr) GetMentor(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var mentor model.Mentor
	if err := mgr.db.WithContext(c).First(&mentor, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Mentor not found")
		return
	}
	resputil.Success(c, mentorResponse(&mentor))
}

// UpdateMentor godoc
// @Summary Partially update a mentor, explicit nulls clear fields
// @Tags Mentor
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "mentor id"
// @Param data body MentorUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[MentorResp] "updated mentor"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/mentors/{id} [put]
func (mgr *MentorMgr) UpdateMentor(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req MentorUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var mentor model.Mentor
	if err := mgr.db.WithContext(c).First(&mentor, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Mentor not found")
		return
	}

	if req.Name != nil && *req.Name != "" {
		mentor.Name = normalizeMentorName(*req.Name)
	}
	if req.PhotoURL.Set {
		mentor.PhotoURL = req.PhotoURL.Ptr()
	}
	if req.Specialization.Set {
		mentor.Specialization = req.Specialization.Ptr()
	}

	if err := mgr.db.WithContext(c).Save(&mentor).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, mentorResponse(&mentor))
}

// DeleteMentor godoc
// @Summary Delete a mentor not referenced by any training
// @Description Refused while TrainingMentor rows reference the mentor; the
// @Description error lists the blocking training titles.
// @Tags Mentor
// @Produce json
// @Security Bearer
// @Param id path int true "mentor id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 400 {object} resputil.Response[any] "still referenced"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/mentors/{id} [delete]
func (mgr *MentorMgr) DeleteMentor(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var mentor model.Mentor
	if err := mgr.db.WithContext(c).First(&mentor, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Mentor not found")
		return
	}

	var assignments []model.TrainingMentor
	if err := mgr.db.WithContext(c).Preload("Training").
		Where("mentor_id = ?", mentor.ID).Find(&assignments).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := guard.CheckDeletable("mentor", "training", assignments,
		func(tm model.TrainingMentor) string { return tm.Training.Title }); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := mgr.db.WithContext(c).Delete(&mentor).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Mentor deleted successfully")
}

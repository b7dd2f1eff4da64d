package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/payload"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewMemberMgr)
}

type MemberMgr struct {
	name string
	db   *gorm.DB
}

func NewMemberMgr(conf *RegisterConfig) Manager {
	return &MemberMgr{
		name: "admin/members",
		db:   conf.DB,
	}
}

func (mgr *MemberMgr) GetName() string { return mgr.name }

func (mgr *MemberMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListMembers)
	g.GET("/teams", mgr.ListTeamMembers)
	g.GET("/interns", mgr.ListInternMembers)
	g.GET("/team/:id", mgr.GetTeamMember)
	g.GET("/intern/:id", mgr.GetInternMember)
}

func (mgr *MemberMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *MemberMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateMember)
	g.GET(":id", mgr.GetMember)
	g.PATCH(":id", mgr.UpdateMember)
	g.DELETE(":id", mgr.DeleteMember)
}

type (
	MemberCreateReq struct {
		Name          string             `json:"name" binding:"required"`
		PhotoURL      *string            `json:"photo_url"`
		Position      *string            `json:"position"`
		StartDate     *string            `json:"start_date"` // YYYY-MM-DD
		EndDate       *string            `json:"end_date"`
		SocialMedia   *model.SocialMedia `json:"social_media"`
		ContactEmail  *string            `json:"contact_email" binding:"omitempty,email"`
		PersonalEmail *string            `json:"personal_email" binding:"omitempty,email"`
		ContactNumber *string            `json:"contact_number"`
		IsVisible     *bool              `json:"is_visible"`
		Role          model.MemberRole   `json:"role" binding:"required,oneof=TEAM INTERN"`
	}

	MemberUpdateReq struct {
		Name          *string                              `json:"name"`
		PhotoURL      payload.Optional[string]             `json:"photo_url"`
		Position      payload.Optional[string]             `json:"position"`
		StartDate     payload.Optional[string]             `json:"start_date"`
		EndDate       payload.Optional[string]             `json:"end_date"`
		SocialMedia   payload.Optional[model.SocialMedia]  `json:"social_media"`
		ContactEmail  payload.Optional[string]             `json:"contact_email"`
		PersonalEmail payload.Optional[string]             `json:"personal_email"`
		ContactNumber payload.Optional[string]             `json:"contact_number"`
		IsVisible     *bool                                `json:"is_visible"`
		Role          *model.MemberRole                    `json:"role" binding:"omitempty,oneof=TEAM INTERN"`
	}

	MemberResp struct {
		ID            uint               `json:"id"`
		Name          string             `json:"name"`
		PhotoURL      *string            `json:"photo_url"`
		Position      *string            `json:"position"`
		StartDate     *string            `json:"start_date"`
		EndDate       *string            `json:"end_date"`
		SocialMedia   *model.SocialMedia `json:"social_media"`
		ContactEmail  *string            `json:"contact_email"`
		PersonalEmail *string            `json:"personal_email"`
		ContactNumber *string            `json:"contact_number"`
		IsVisible     bool               `json:"is_visible"`
		Role          model.MemberRole   `json:"role"`
		CreatedAt     time.Time          `json:"created_at"`
		UpdatedAt     time.Time          `json:"updated_at"`
	}
)

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	return lo.ToPtr(value.Format(time.DateOnly))
}

func memberResponse(member *model.Member) MemberResp {
	var social *model.SocialMedia
	if member.SocialMedia != nil {
		social = lo.ToPtr(member.SocialMedia.Data())
	}
	return MemberResp{
		ID:            member.ID,
		Name:          member.Name,
		PhotoURL:      member.PhotoURL,
		Position:      member.Position,
		StartDate:     formatDate(member.StartDate),
		EndDate:       formatDate(member.EndDate),
		SocialMedia:   social,
		ContactEmail:  member.ContactEmail,
		PersonalEmail: member.PersonalEmail,
		ContactNumber: member.ContactNumber,
		IsVisible:     member.IsVisible,
		Role:          member.Role,
		CreatedAt:     member.CreatedAt,
		UpdatedAt:     member.UpdatedAt,
	}
}

// CreateMember godoc
// @Summary Create a team member or intern
// @Tags Member
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body MemberCreateReq true "member fields"
// @Success 201 {object} resputil.Response[MemberResp] "created member"
// @Failure 400 {object} resputil.Response[any] "validation error"
// @Router /admin/members [post]
func (mgr *MemberMgr) CreateMember(c *gin.Context) {
	var req MemberCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		resputil.BadRequestError(c, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		resputil.BadRequestError(c, "end_date must be YYYY-MM-DD")
		return
	}

	member := model.Member{
		Name:          req.Name,
		PhotoURL:      req.PhotoURL,
		Position:      req.Position,
		StartDate:     startDate,
		EndDate:       endDate,
		ContactEmail:  req.ContactEmail,
		PersonalEmail: req.PersonalEmail,
		ContactNumber: req.ContactNumber,
		IsVisible:     req.IsVisible == nil || *req.IsVisible,
		Role:          req.Role,
	}
	if req.SocialMedia != nil {
		member.SocialMedia = lo.ToPtr(datatypes.NewJSONType(*req.SocialMedia))
	}

	if err := mgr.db.WithContext(c).Create(&member).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, memberResponse(&member))
}

// ListMembers godoc
// @Summary List every member, visible or not
// @Tags Member
// @Produce json
// @Success 200 {object} resputil.Response[[]MemberResp] "members"
// @Router /admin/members [get]
func (mgr *MemberMgr) ListMembers(c *gin.Context) {
	var members []model.Member
	if err := mgr.db.WithContext(c).Find(&members).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(members, func(m model.Member, _ int) MemberResp {
		return memberResponse(&m)
	}))
}

func (mgr *MemberMgr) listByRole(c *gin.Context, role model.MemberRole) {
	var members []model.Member
	err := mgr.db.WithContext(c).
		Where("role = ? AND is_visible = ?", role, true).
		Find(&members).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(members, func(m model.Member, _ int) MemberResp {
		return memberResponse(&m)
	}))
}

// ListTeamMembers godoc
// @Summary List visible team members
// @Tags Member
// @Produce json
// @Success 200 {object} resputil.Response[[]MemberResp] "team members"
// @Router /admin/members/teams [get]
func (mgr *MemberMgr) ListTeamMembers(c *gin.Context) {
	mgr.listByRole(c, model.MemberRoleTeam)
}

// ListInternMembers godoc
// @Summary List visible interns
// @Tags Member
// @Produce json
// @Success 200 {object} resputil.Response[[]MemberResp] "interns"
// @Router /admin/members/interns [get]
func (mgr *MemberMgr) ListInternMembers(c *gin.Context) {
	mgr.listByRole(c, model.MemberRoleIntern)
}

func (mgr *MemberMgr) getByRole(c *gin.Context, role model.MemberRole, missing string) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.Member
	err := mgr.db.WithContext(c).
		Where("id = ? AND role = ? AND is_visible = ?", req.ID, role, true).
		First(&member).Error
	if err != nil {
		resputil.NotFoundError(c, missing)
		return
	}
	resputil.Success(c, memberResponse(&member))
}

// GetTeamMember godoc
// @Summary Get one visible team member
// @Tags Member
// @Produce json
// @Param id path int true "member id"
// @Success 200 {object} resputil.Response[MemberResp] "team member"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/members/team/{id} [get]
func (mgr *MemberMgr) GetTeamMember(c *gin.Context) {
	mgr.getByRole(c, model.MemberRoleTeam, "Team member not found")
}

// GetInternMember godoc
// @Summary Get one visible intern
// @Tags Member
// @Produce json
// @Param id path int true "member id"
// @Success 200 {object} resputil.Response[MemberResp] "intern"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/members/intern/{id} [get]
func (mgr *MemberMgr) GetInternMember(c *gin.Context) {
	mgr.getByRole(c, model.MemberRoleIntern, "Intern not found")
}

// GetMember godoc
// @Summary Get any member by id, visible or hidden
// @Tags Member
// @Produce json
// @Security Bearer
// @Param id path int true "member id"
// @Success 200 {object} resputil.Response[MemberResp] "member"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/members/{id} [get]
func (mgr *MemberMgr) GetMember(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.Member
	if err := mgr.db.WithContext(c).First(&member, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Member not found")
		return
	}
	resputil.Success(c, memberResponse(&member))
}

// UpdateMember godoc
// @Summary Partially update a member, explicit nulls clear fields
// @Tags Member
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "member id"
// @Param data body MemberUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[MemberResp] "updated member"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/members/{id} [patch]
func (mgr *MemberMgr) UpdateMember(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req MemberUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.Member
	if err := mgr.db.WithContext(c).First(&member, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Member not found")
		return
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.PhotoURL.Set {
		member.PhotoURL = req.PhotoURL.Ptr()
	}
	if req.Position.Set {
		member.Position = req.Position.Ptr()
	}
	if req.StartDate.Set {
		parsed, err := parseDate(req.StartDate.Ptr())
		if err != nil {
			resputil.BadRequestError(c, "start_date must be YYYY-MM-DD")
			return
		}
		member.StartDate = parsed
	}
	if req.EndDate.Set {
		parsed, err := parseDate(req.EndDate.Ptr())
		if err != nil {
			resputil.BadRequestError(c, "end_date must be YYYY-MM-DD")
			return
		}
		member.EndDate = parsed
	}
	if req.SocialMedia.Set {
		if req.SocialMedia.Null {
			member.SocialMedia = nil
		} else {
			member.SocialMedia = lo.ToPtr(datatypes.NewJSONType(req.SocialMedia.Value))
		}
	}
	if req.ContactEmail.Set {
		member.ContactEmail = req.ContactEmail.Ptr()
	}
	if req.PersonalEmail.Set {
		member.PersonalEmail = req.PersonalEmail.Ptr()
	}
	if req.ContactNumber.Set {
		member.ContactNumber = req.ContactNumber.Ptr()
	}
	if req.IsVisible != nil {
		member.IsVisible = *req.IsVisible
	}
	if req.Role != nil {
		member.Role = *req.Role
	}

	if err := mgr.db.WithContext(c).Save(&member).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, memberResponse(&member))
}

// DeleteMember godoc
// @Summary Delete a member
// @Tags Member
// @Produce json
// @Security Bearer
// @Param id path int true "member id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/members/{id} [delete]
func (mgr *MemberMgr) DeleteMember(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.Member
	if err := mgr.db.WithContext(c).First(&member, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Member not found")
		return
	}

	if err := mgr.db.WithContext(c).Delete(&member).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Member deleted successfully")
}

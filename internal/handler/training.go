package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/payload"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
	"github.com/leafclutch/leafclutch-backend/pkg/pricing"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTrainingMgr)
}

type TrainingMgr struct {
	name string
	db   *gorm.DB
}

func NewTrainingMgr(conf *RegisterConfig) Manager {
	return &TrainingMgr{
		name: "admin/trainings",
		db:   conf.DB,
	}
}

func (mgr *TrainingMgr) GetName() string { return mgr.name }

func (mgr *TrainingMgr) RegisterPublic(g *gin.RouterGroup) {
	g.GET("", mgr.ListTrainings)
	g.GET(":id", mgr.GetTraining)
}

func (mgr *TrainingMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *TrainingMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("", mgr.CreateTraining)
	g.PUT(":id", mgr.UpdateTraining)
	g.DELETE(":id", mgr.DeleteTraining)
}

type (
	TrainingCreateReq struct {
		Title         string              `json:"title" binding:"required"`
		Description   *string             `json:"description"`
		PhotoURL      *string             `json:"photo_url"`
		BasePrice     decimal.Decimal     `json:"base_price" binding:"required"`
		DiscountValue *decimal.Decimal    `json:"discount_value"`
		DiscountKind  *model.DiscountKind `json:"discount_type" binding:"omitempty,oneof=PERCENTAGE FLAT"`
		Benefits      []string            `json:"benefits"`
		MentorIDs     []uint              `json:"mentor_ids"`
	}

	TrainingUpdateReq struct {
		Title         *string                                  `json:"title"`
		Description   payload.Optional[string]                 `json:"description"`
		PhotoURL      payload.Optional[string]                 `json:"photo_url"`
		BasePrice     *decimal.Decimal                         `json:"base_price"`
		DiscountValue payload.Optional[decimal.Decimal]        `json:"discount_value"`
		DiscountKind  payload.Optional[model.DiscountKind]     `json:"discount_type"`
		Benefits      *[]string                                `json:"benefits"`
		MentorIDs     *[]uint                                  `json:"mentor_ids"`
	}

	TrainingResp struct {
		ID             uint             `json:"id"`
		Title          string           `json:"title"`
		Description    *string          `json:"description"`
		PhotoURL       *string          `json:"photo_url"`
		BasePrice      decimal.Decimal  `json:"base_price"`
		EffectivePrice decimal.Decimal  `json:"effective_price"`
		DiscountValue  *decimal.Decimal `json:"discount_value"`
		DiscountKind   *model.DiscountKind `json:"discount_type"`
		Benefits       []string         `json:"benefits"`
		Mentors        []MentorResp     `json:"mentors"`
		CreatedAt      time.Time        `json:"created_at"`
		UpdatedAt      time.Time        `json:"updated_at"`
	}
)

// trainingResponse serializes a training with its relations loaded. The
// effective price is derived here, never stored.
func trainingResponse(training *model.Training) TrainingResp {
	benefits := make([]string, 0, len(training.Benefits))
	for i := range training.Benefits {
		benefits = append(benefits, training.Benefits[i].Text)
	}
	mentors := make([]MentorResp, 0, len(training.TrainingMentors))
	for i := range training.TrainingMentors {
		mentors = append(mentors, mentorResponse(&training.TrainingMentors[i].Mentor))
	}
	return TrainingResp{
		ID:             training.ID,
		Title:          training.Title,
		Description:    training.Description,
		PhotoURL:       training.PhotoURL,
		BasePrice:      training.BasePrice,
		EffectivePrice: pricing.EffectivePrice(training.BasePrice, training.DiscountValue, training.DiscountKind),
		DiscountValue:  training.DiscountValue,
		DiscountKind:   training.DiscountKind,
		Benefits:       benefits,
		Mentors:        mentors,
		CreatedAt:      training.CreatedAt,
		UpdatedAt:      training.UpdatedAt,
	}
}

func (mgr *TrainingMgr) loadTraining(c *gin.Context, id uint) (*model.Training, error) {
	var training model.Training
	err := mgr.db.WithContext(c).
		Preload("Benefits", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("TrainingMentors.Mentor").
		First(&training, id).Error
	return &training, err
}

// replaceBenefits clears the benefit rows and re-inserts the new list with
// positions assigned 0..n-1. Always a full replace, never a merge.
func replaceBenefits(tx *gorm.DB, trainingID uint, benefits []string) error {
	if err := tx.Where("training_id = ?", trainingID).Delete(&model.TrainingBenefit{}).Error; err != nil {
		return err
	}
	for idx, text := range benefits {
		row := model.TrainingBenefit{
			TrainingID: trainingID,
			Text:       text,
			Position:   idx,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceMentors verifies every mentor id and rebuilds the join rows.
// An unknown id aborts the whole transaction.
func replaceMentors(tx *gorm.DB, trainingID uint, mentorIDs []uint) error {
	if err := tx.Where("training_id = ?", trainingID).Delete(&model.TrainingMentor{}).Error; err != nil {
		return err
	}
	for _, mentorID := range mentorIDs {
		var count int64
		if err := tx.Model(&model.Mentor{}).Where("id = ?", mentorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errBadRequest(fmt.Sprintf("Mentor %d does not exist", mentorID))
		}
		row := model.TrainingMentor{
			TrainingID: trainingID,
			MentorID:   mentorID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateTraining godoc
// @Summary Create a training with its benefit list and mentor links
// @Tags Training
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body TrainingCreateReq true "training fields"
// @Success 201 {object} resputil.Response[TrainingResp] "created training"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown mentor"
// @Router /admin/trainings [post]
func (mgr *TrainingMgr) CreateTraining(c *gin.Context) {
	var req TrainingCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	training := model.Training{
		Title:         req.Title,
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		BasePrice:     req.BasePrice,
		DiscountValue: req.DiscountValue,
		DiscountKind:  req.DiscountKind,
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&training).Error; err != nil {
			return err
		}
		if err := replaceBenefits(tx, training.ID, req.Benefits); err != nil {
			return err
		}
		return replaceMentors(tx, training.ID, req.MentorIDs)
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

	created, err := mgr.loadTraining(c, training.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Created(c, trainingResponse(created))
}

// ListTrainings godoc
// @Summary List trainings, newest first, with 1-based pagination
// @Tags Training
// @Produce json
// @Param page query int false "page number, default 1"
// @Param page_size query int false "page size, default 20, max 100"
// @Success 200 {object} resputil.Response[payload.PageResp[TrainingResp]] "page of trainings"
// @Router /admin/trainings [get]
func (mgr *TrainingMgr) ListTrainings(c *gin.Context) {
	var query payload.PageReqQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	query.Normalize()

	var total int64
	if err := mgr.db.WithContext(c).Model(&model.Training{}).Count(&total).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	var trainings []model.Training
	err := mgr.db.WithContext(c).
		Preload("Benefits", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("TrainingMentors.Mentor").
		Order("created_at desc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&trainings).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	items := make([]TrainingResp, 0, len(trainings))
	for i := range trainings {
		items = append(items, trainingResponse(&trainings[i]))
	}
	resputil.Success(c, payload.PageResp[TrainingResp]{
		Items:    items,
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
	})
}

// GetTraining godoc
// @Summary Get one training with benefits and mentors
// @Tags Training
// @Produce json
// @Param id path int true "training id"
// @Success 200 {object} resputil.Response[TrainingResp] "training"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/trainings/{id} [get]
func (mgr *TrainingMgr) GetTraining(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	training, err := mgr.loadTraining(c, req.ID)
	if err != nil {
		resputil.NotFoundError(c, "Training program not found")
		return
	}
	resputil.Success(c, trainingResponse(training))
}

// UpdateTraining godoc
// @Summary Partially update a training
// @Description Scalar fields follow absent/null semantics; benefit and mentor
// @Description lists are replaced wholesale when present.
// @Tags Training
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "training id"
// @Param data body TrainingUpdateReq true "fields to change"
// @Success 200 {object} resputil.Response[TrainingResp] "updated training"
// @Failure 400 {object} resputil.Response[any] "validation error or unknown mentor"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/trainings/{id} [put]
func (mgr *TrainingMgr) UpdateTraining(c *gin.Context) {
	var uri IDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req TrainingUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.DiscountKind.Set && !req.DiscountKind.Null &&
		req.DiscountKind.Value != model.DiscountPercentage && req.DiscountKind.Value != model.DiscountFlat {
		resputil.BadRequestError(c, "discount_type must be PERCENTAGE or FLAT")
		return
	}

	var training model.Training
	if err := mgr.db.WithContext(c).First(&training, uri.ID).Error; err != nil {
		resputil.NotFoundError(c, "Training not found")
		return
	}

	if req.Title != nil {
		training.Title = *req.Title
	}
	if req.Description.Set {
		training.Description = req.Description.Ptr()
	}
	if req.PhotoURL.Set {
		training.PhotoURL = req.PhotoURL.Ptr()
	}
	if req.BasePrice != nil {
		training.BasePrice = *req.BasePrice
	}
	if req.DiscountValue.Set {
		training.DiscountValue = req.DiscountValue.Ptr()
	}
	if req.DiscountKind.Set {
		training.DiscountKind = req.DiscountKind.Ptr()
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&training).Error; err != nil {
			return err
		}
		if req.Benefits != nil {
			if err := replaceBenefits(tx, training.ID, *req.Benefits); err != nil {
				return err
			}
		}
		if req.MentorIDs != nil {
			if err := replaceMentors(tx, training.ID, *req.MentorIDs); err != nil {
				return err
			}
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

	updated, err := mgr.loadTraining(c, training.ID)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, trainingResponse(updated))
}

// DeleteTraining godoc
// @Summary Delete a training with its benefits and mentor links
// @Tags Training
// @Produce json
// @Security Bearer
// @Param id path int true "training id"
// @Success 200 {object} resputil.Response[any] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /admin/trainings/{id} [delete]
func (mgr *TrainingMgr) DeleteTraining(c *gin.Context) {
	var req IDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var training model.Training
	if err := mgr.db.WithContext(c).First(&training, req.ID).Error; err != nil {
		resputil.NotFoundError(c, "Training not found")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", training.ID).Delete(&model.TrainingBenefit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", training.ID).Delete(&model.TrainingMentor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&training).Error
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "Training deleted successfully")
}

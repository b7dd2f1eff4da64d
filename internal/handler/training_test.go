package handler

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leafclutch/leafclutch-backend/dao/model"
)

var testDBSeq int

// newTestDB opens a fresh in-memory database shared across the pooled
// connections of one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Mentor{},
		&model.Training{},
		&model.TrainingBenefit{},
		&model.TrainingMentor{},
		&model.Opportunity{},
		&model.OpportunityRequirement{},
	))
	return db
}

func benefitTexts(t *testing.T, db *gorm.DB, trainingID uint) []string {
	t.Helper()
	var rows []model.TrainingBenefit
	require.NoError(t, db.Where("training_id = ?", trainingID).Order("position ASC").Find(&rows).Error)
	texts := make([]string, 0, len(rows))
	for i, row := range rows {
		assert.Equal(t, i, row.Position)
		texts = append(texts, row.Text)
	}
	return texts
}

func TestReplaceBenefitsRoundtrip(t *testing.T) {
	db := newTestDB(t)

	training := model.Training{Title: "Go Bootcamp", BasePrice: decimal.NewFromInt(100)}
	require.NoError(t, db.Create(&training).Error)

	require.NoError(t, replaceBenefits(db, training.ID, []string{"Old first", "Old second", "Old third"}))
	assert.Equal(t, []string{"Old first", "Old second", "Old third"}, benefitTexts(t, db, training.ID))

	// A replace is never a merge: the new list comes back exactly, with
	// positions reassigned from zero.
	require.NoError(t, replaceBenefits(db, training.ID, []string{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, benefitTexts(t, db, training.ID))

	require.NoError(t, replaceBenefits(db, training.ID, nil))
	assert.Empty(t, benefitTexts(t, db, training.ID))
}

func TestReplaceRequirementsRoundtrip(t *testing.T) {
	db := newTestDB(t)

	op := model.Opportunity{Title: "Backend Engineer", Type: model.OpportunityJob}
	require.NoError(t, db.Create(&op).Error)

	require.NoError(t, replaceRequirements(db, op.ID, []string{"3y Go", "SQL", "Docker"}))
	require.NoError(t, replaceRequirements(db, op.ID, []string{"A", "B"}))

	var rows []model.OpportunityRequirement
	require.NoError(t, db.Where("opportunity_id = ?", op.ID).Order("position ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Text)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, "B", rows[1].Text)
	assert.Equal(t, 1, rows[1].Position)
}

func TestReplaceMentorsUnknownMentor(t *testing.T) {
	db := newTestDB(t)

	training := model.Training{Title: "Go Bootcamp", BasePrice: decimal.NewFromInt(100)}
	require.NoError(t, db.Create(&training).Error)

	mentor := model.Mentor{Name: "ada"}
	require.NoError(t, db.Create(&mentor).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return replaceMentors(tx, training.ID, []uint{mentor.ID, 9999})
	})
	require.Error(t, err)
	var br errBadRequest
	require.ErrorAs(t, err, &br)
	assert.Equal(t, "Mentor 9999 does not exist", br.Error())

	// The rollback left no partial link rows behind.
	var links []model.TrainingMentor
	require.NoError(t, db.Where("training_id = ?", training.ID).Find(&links).Error)
	assert.Empty(t, links)
}

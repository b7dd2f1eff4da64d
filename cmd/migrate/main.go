// Migration script, run once before the first server start.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/dao/query"
)

func main() {
	db := query.GetDB()
	err := db.AutoMigrate(
		&model.User{},
		&model.Member{},
		&model.Mentor{},
		&model.Training{},
		&model.TrainingBenefit{},
		&model.TrainingMentor{},
		&model.Project{},
		&model.ProjectFeedback{},
		&model.ProjectTechMap{},
		&model.Service{},
		&model.ServiceTech{},
		&model.ServiceOffering{},
		&model.ServiceTechMap{},
		&model.ServiceOfferingMap{},
		&model.Opportunity{},
		&model.JobDetail{},
		&model.InternshipDetail{},
		&model.OpportunityRequirement{},
	)
	if err != nil {
		panic(fmt.Errorf("auto migrate fail: %w", err))
	}

	seedAdmin(os.Getenv("LEAFCLUTCH_ADMIN_USER"), os.Getenv("LEAFCLUTCH_ADMIN_PASSWORD"))
}

// seedAdmin creates the initial admin account when both env vars are set and
// the account does not exist yet.
func seedAdmin(username, password string) {
	if username == "" || password == "" {
		return
	}

	db := query.GetDB()
	var count int64
	if err := db.Model(&model.User{}).Where("name = ?", username).Count(&count).Error; err != nil {
		panic(fmt.Errorf("check admin fail: %w", err))
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Errorf("hash password fail: %w", err))
	}
	user := model.User{
		Name:     username,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(fmt.Errorf("seed admin fail: %w", err))
	}
}

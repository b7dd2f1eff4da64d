package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/pkg/storage"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared collaborators every manager may need.
type RegisterConfig struct {
	DB      *gorm.DB
	Storage *storage.AppwriteClient
}

type Register func(conf *RegisterConfig) Manager

// Registers is appended to by the init() of every manager file.
var Registers []Register

// IDReq binds the numeric id path parameter shared by the entity routes.
type IDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// errBadRequest marks a transaction failure caused by the client payload,
// so the rollback surfaces as a 400 instead of a 500.
type errBadRequest string

func (e errBadRequest) Error() string { return string(e) }

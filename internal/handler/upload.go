package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/internal/resputil"
	"github.com/leafclutch/leafclutch-backend/pkg/config"
	"github.com/leafclutch/leafclutch-backend/pkg/storage"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewUploadMgr)
}

type UploadMgr struct {
	name    string
	db      *gorm.DB
	storage *storage.AppwriteClient
}

func NewUploadMgr(conf *RegisterConfig) Manager {
	return &UploadMgr{
		name:    "admin/uploads",
		db:      conf.DB,
		storage: conf.Storage,
	}
}

func (mgr *UploadMgr) GetName() string { return mgr.name }

func (mgr *UploadMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *UploadMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *UploadMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.POST("signature", mgr.CreateSignature)
	g.POST("image", mgr.UploadImage)
}

const uploadFolder = "uploads"

type SignatureResp struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
}

type UploadResp struct {
	ImageURL string `json:"image_url"`
}

// CreateSignature godoc
// @Summary Issue a signed payload for a direct browser upload to Cloudinary
// @Tags Upload
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[SignatureResp] "signed payload"
// @Failure 500 {object} resputil.Response[any] "signing credentials missing"
// @Router /admin/uploads/signature [post]
func (mgr *UploadMgr) CreateSignature(c *gin.Context) {
	conf := config.GetConfig()
	timestamp := time.Now().Unix()

	sig, err := storage.Signature(timestamp, uploadFolder, conf.Cloudinary.APISecret)
	if err != nil {
		if errors.Is(err, storage.ErrSecretUnset) {
			resputil.Error(c, "Cloudinary credentials are not configured", resputil.ConfigError)
		} else {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
		}
		return
	}

	resputil.Success(c, SignatureResp{
		CloudName: conf.Cloudinary.CloudName,
		APIKey:    conf.Cloudinary.APIKey,
		Timestamp: timestamp,
		Signature: sig,
		Folder:    uploadFolder,
	})
}

// UploadImage godoc
// @Summary Proxy an image upload to the storage bucket and return its public URL
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "image file, at most 1MB"
// @Success 200 {object} resputil.Response[UploadResp] "public view URL"
// @Failure 400 {object} resputil.Response[any] "not an image or too large"
// @Failure 500 {object} resputil.Response[any] "storage upstream failure"
// @Router /admin/uploads/image [post]
func (mgr *UploadMgr) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		resputil.BadRequestError(c, "file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := storage.ValidateImage(fileHeader.Size, contentType); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	url, err := mgr.storage.UploadImage(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		resputil.Error(c, "Upload to storage failed: "+err.Error(), resputil.UpstreamError)
		return
	}
	resputil.Success(c, UploadResp{ImageURL: url})
}

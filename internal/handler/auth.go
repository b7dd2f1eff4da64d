package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leafclutch/leafclutch-backend/dao/model"
	"github.com/leafclutch/leafclutch-backend/internal/resputil"
	"github.com/leafclutch/leafclutch-backend/internal/util"
	"github.com/leafclutch/leafclutch-backend/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name     string
	db       *gorm.DB
	tokenMgr *util.TokenManager
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:     "auth",
		db:       conf.DB,
		tokenMgr: util.GetTokenMgr(),
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("login", mgr.Login)
	g.POST("refresh", mgr.RefreshToken)
}

func (mgr *AuthMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("verify", mgr.Verify)
}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	LoginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	LoginResp struct {
		AccessToken  string     `json:"accessToken"`
		RefreshToken string     `json:"refreshToken"`
		Username     string     `json:"username"`
		Role         model.Role `json:"role"`
	}

	RefreshReq struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	VerifyResp struct {
		Username string     `json:"username"`
		Role     model.Role `json:"role"`
	}
)

// Login godoc
// @Summary Check admin credentials and issue a JWT token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "credentials"
// @Success 200 {object} resputil.Response[LoginResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "wrong username or password"
// @Router /auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	l := logutils.Log.WithField("username", req.Username)

	var user model.User
	if err := mgr.db.WithContext(c).Where("name = ?", req.Username).First(&user).Error; err != nil {
		l.Error("login failed: ", err)
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		l.Error("login failed: password mismatch")
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}

	accessToken, refreshToken, err := mgr.tokenMgr.CreateTokens(&util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Role:     user.Role,
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, LoginResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Name,
		Role:         user.Role,
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body RefreshReq true "refresh token"
// @Success 200 {object} resputil.Response[LoginResp] "new token pair"
// @Failure 401 {object} resputil.Response[any] "expired or invalid token"
// @Router /auth/refresh [post]
func (mgr *AuthMgr) RefreshToken(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	token, err := mgr.tokenMgr.CheckRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			resputil.HTTPError(c, http.StatusUnauthorized, "Token expired", resputil.TokenExpired)
		} else {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenInvalid)
		}
		return
	}

	// The user row is re-read so a revoked or demoted account cannot keep
	// minting fresh tokens from an old refresh token.
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, token.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenInvalid)
		return
	}

	accessToken, refreshToken, err := mgr.tokenMgr.CreateTokens(&util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Role:     user.Role,
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, LoginResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Name,
		Role:         user.Role,
	})
}

// Verify godoc
// @Summary Report the identity carried by the current access token
// @Tags Auth
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[VerifyResp] "token identity"
// @Failure 401 {object} resputil.Response[any] "missing or invalid token"
// @Router /auth/verify [get]
func (mgr *AuthMgr) Verify(c *gin.Context) {
	token := util.GetToken(c)
	resputil.Success(c, VerifyResp{
		Username: token.Username,
		Role:     token.Role,
	})
}

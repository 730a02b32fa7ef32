package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"baka-api/config"
	"baka-api/internal/application/ports"
	domain "baka-api/internal/domain/user"
	"baka-api/internal/interface/api/rest/dto/user"
	"baka-api/internal/interface/api/rest/middleware"
	"baka-api/internal/interface/api/rest/response"
	"baka-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	urls        ports.S3Client
	logger      *zap.Logger
	debug       bool
}

// NewUserController mounts the users API. Every route sits behind the
// su_full gate. urls may be nil when no uploads bucket is configured.
func NewUserController(
	r *gin.Engine,
	cfg config.APP,
	userService ports.UserService,
	authorizer ports.Authorizer,
	urls ports.S3Client,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		urls:        urls,
		logger:      logger,
		debug:       cfg.Debug,
	}

	g := r.Group(RouteUsers, middleware.RequireCapability(authorizer, domain.AccountTypeFull, cfg.Debug, logger))

	g.GET(RouteFromEmail, uc.GetUserByEmailHandler)
	g.GET(RouteFromID, uc.GetUserByIDHandler)
	g.GET(RouteListUsers, uc.ListUsersHandler)
	g.GET(RouteByToken, uc.GetUserByTokenHandler)

	g.POST(RouteCreateUser, uc.CreateUserHandler)
	g.POST(RouteByToken, uc.DeleteUserHandler)
	g.POST(RouteDelete, uc.DeleteUserHandler)
	g.POST(RouteDisable, uc.DisableUserHandler)
	g.POST(RouteResetToken, uc.ResetTokenHandler)

	return uc
}

func (uc *UserController) internal(c *gin.Context, op string, err error) {
	uc.logger.Error(op+" error", zap.Error(err))
	response.Internal(c, uc.debug, err)
}

// renderUser writes the full projection, or 404 when u is nil.
func (uc *UserController) renderUser(c *gin.Context, u *domain.User) {
	if u == nil {
		response.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(u, uc.urls))
}

func (uc *UserController) GetUserByEmailHandler(c *gin.Context) {
	u, err := uc.userService.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		uc.internal(c, "FindByEmail()", err)
		return
	}

	uc.renderUser(c, u)
}

func (uc *UserController) GetUserByIDHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c)
		return
	}

	u, err := uc.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		uc.internal(c, "FindByID()", err)
		return
	}

	uc.renderUser(c, u)
}

func (uc *UserController) GetUserByTokenHandler(c *gin.Context) {
	u, err := uc.userService.FindByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		uc.internal(c, "FindByToken()", err)
		return
	}

	uc.renderUser(c, u)
}

func (uc *UserController) ListUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindUsers(c.Request.Context())
	if err != nil {
		uc.internal(c, "FindUsers()", err)
		return
	}

	c.JSON(http.StatusOK, user.ListResponse{
		Users: user.ToResponseUsers(users, uc.urls),
	})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	newUser, errs := validator.ValidateCreateUser(req)
	if errs != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   response.MsgBadRequest,
			"code":    http.StatusBadRequest,
			"details": errs,
		})
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), newUser)
	if err != nil {
		uc.internal(c, "CreateUser()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(u, uc.urls))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	u, err := uc.userService.DeleteUser(c.Request.Context(), c.Param("token"))
	if err != nil {
		uc.internal(c, "DeleteUser()", err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, user.DeleteResponse{
		Success: true,
		Code:    http.StatusOK,
		Deleted: true,
	})
}

func (uc *UserController) DisableUserHandler(c *gin.Context) {
	u, err := uc.userService.DisableUser(c.Request.Context(), c.Param("token"))
	if err != nil {
		uc.internal(c, "DisableUser()", err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, user.DisableResponse{
		Success:  true,
		Code:     http.StatusOK,
		Disabled: true,
	})
}

func (uc *UserController) ResetTokenHandler(c *gin.Context) {
	u, err := uc.userService.ResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		uc.internal(c, "ResetToken()", err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, user.ResetTokenResponse{NewToken: u.Token})
}

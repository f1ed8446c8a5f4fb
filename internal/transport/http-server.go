package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/northpine-labs/linkvault-back/internal/auth"
	"github.com/northpine-labs/linkvault-back/internal/config"
	"github.com/northpine-labs/linkvault-back/internal/db"
	"github.com/northpine-labs/linkvault-back/internal/service"
)

const bearerScheme = "Bearer "

type (
	RegisterReq struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginReq struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	UserUpdateReq struct {
		ID       uint64  `json:"id" validate:"required"`
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	UserResp struct {
		ID        uint64    `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	TokenResp struct {
		Token string `json:"token"`
	}

	BookmarkReq struct {
		UserID      uint64  `json:"user_id"`
		Title       string  `json:"title" validate:"required"`
		Link        string  `json:"url" validate:"required"`
		Description *string `json:"description"`
	}

	BookmarkUpdateReq struct {
		ID          uint64  `json:"id" validate:"required"`
		UserID      *uint64 `json:"user_id"`
		Title       *string `json:"title"`
		Link        *string `json:"url"`
		Description *string `json:"description"`
	}

	BookmarkResp struct {
		ID          uint64    `json:"id"`
		UserID      uint64    `json:"user_id"`
		Title       string    `json:"title"`
		Link        string    `json:"url"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	TagReq struct {
		Name string `json:"name" validate:"required"`
		Slug string `json:"slug" validate:"required"`
	}

	TagUpdateReq struct {
		ID   uint64  `json:"id" validate:"required"`
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}

	TagResp struct {
		ID        uint64    `json:"id"`
		UserID    uint64    `json:"user_id"`
		Name      string    `json:"name"`
		Slug      string    `json:"slug"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	CollectionReq struct {
		UserID      uint64  `json:"user_id"`
		Name        string  `json:"name" validate:"required"`
		Description *string `json:"description"`
	}

	CollectionUpdateReq struct {
		ID          uint64  `json:"id" validate:"required"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	CollectionResp struct {
		ID          uint64    `json:"id"`
		UserID      uint64    `json:"user_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	AttachTagReq struct {
		TagID uint64 `json:"tag_id" validate:"required"`
	}

	AttachBookmarkReq struct {
		BookmarkID uint64 `json:"bookmark_id" validate:"required"`
	}

	BookmarkTagResp struct {
		BookmarkID uint64    `json:"bookmark_id"`
		TagID      uint64    `json:"tag_id"`
		CreatedAt  time.Time `json:"created_at"`
	}

	CollectionBookmarkResp struct {
		CollectionID uint64    `json:"collection_id"`
		BookmarkID   uint64    `json:"bookmark_id"`
		CreatedAt    time.Time `json:"created_at"`
	}

	MsgResp struct {
		Msg string `json:"msg"`
	}

	ErrResp struct {
		Error string `json:"error"`
	}

	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		auth        *auth.Service
		users       *service.UserService
		bookmarks   *service.BookmarkService
		tags        *service.TagService
		collections *service.CollectionService
		health      *service.HealthService
		logger      *zap.SugaredLogger
	}
)

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	authService *auth.Service,
	users *service.UserService,
	bookmarks *service.BookmarkService,
	tags *service.TagService,
	collections *service.CollectionService,
	health *service.HealthService,
	logger *zap.SugaredLogger,
) *HTTPServer {
	instance := HTTPServer{
		auth:        authService,
		users:       users,
		bookmarks:   bookmarks,
		tags:        tags,
		collections: collections,
		health:      health,
		logger:      logger,
	}

	e := instance.Echo()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// Echo builds the routed server. Separate from NewHTTPServer so tests can
// drive it through httptest without an fx app.
func (s *HTTPServer) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	userG := e.Group("/api/users")
	userG.POST("", s.Register)
	userG.POST("/login", s.Login)
	userG.GET("", s.UserGetAll)
	userG.GET("/:id", s.UserGetByID)
	userG.PUT("", s.UserUpdate)
	userG.DELETE("/:id", s.UserDelete)

	bookmarkG := e.Group("/api/bookmarks")
	bookmarkG.GET("", s.BookmarkGetAll)
	bookmarkG.GET("/:id", s.BookmarkGetByID)
	bookmarkG.POST("", s.BookmarkCreate)
	bookmarkG.PUT("", s.BookmarkUpdate)
	bookmarkG.DELETE("/:id", s.BookmarkDelete)
	bookmarkG.GET("/:id/tags", s.BookmarkTags)
	bookmarkG.POST("/:id/tags", s.BookmarkAttachTag)
	bookmarkG.DELETE("/:id/tags/:tagId", s.BookmarkDetachTag)
	bookmarkG.GET("/:id/collections", s.BookmarkCollections)

	tagG := e.Group("/api/tags")
	tagG.GET("", s.TagGetAll)
	tagG.GET("/:id", s.TagGetByID)
	tagG.POST("", s.TagCreate)
	tagG.PUT("", s.TagUpdate)
	tagG.DELETE("/:id", s.TagDelete)
	tagG.GET("/:id/bookmarks", s.TagBookmarks)

	collectionG := e.Group("/api/collections")
	collectionG.GET("", s.CollectionGetAll)
	collectionG.GET("/:id", s.CollectionGetByID)
	collectionG.POST("", s.CollectionCreate)
	collectionG.PUT("", s.CollectionUpdate)
	collectionG.DELETE("/:id", s.CollectionDelete)
	collectionG.GET("/:id/bookmarks", s.CollectionBookmarks)
	collectionG.POST("/:id/bookmarks", s.CollectionAttachBookmark)
	collectionG.DELETE("/:id/bookmarks/:bookmarkId", s.CollectionDetachBookmark)

	e.GET("/health", s.Health)

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, _ []byte) {
		if len(reqBody) == 0 {
			return
		}
		s.logger.Debugw("request body",
			"method", c.Request().Method,
			"path", c.Path(),
			"body", string(censorBody(reqBody)),
		)
	}))
	e.Use(s.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = s.ErrorHandler

	return e
}

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if isPublic(c) {
			return next(c)
		}

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerScheme) {
			return c.NoContent(http.StatusUnauthorized)
		}

		user, err := s.auth.ValidateToken(strings.TrimPrefix(header, bearerScheme))
		if err != nil {
			return c.NoContent(http.StatusUnauthorized)
		}

		c.Set("user", user)
		return next(c)
	}
}

func isPublic(c echo.Context) bool {
	if c.Path() == "/health" {
		return true
	}
	if c.Request().Method != http.MethodPost {
		return false
	}
	return c.Path() == "/api/users" || c.Path() == "/api/users/login"
}

func (s *HTTPServer) Health(c echo.Context) error {
	dump, err := s.health.Dump(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dump)
}

// ErrorHandler maps the service error taxonomy onto status codes: validation
// and not-found are 400, constraint violations 409, credential failures a
// bodyless 401, everything else 500.
func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, service.ErrLoginUserNotFound),
		errors.Is(err, service.ErrLoginPasswordDoesNotMatch),
		errors.Is(err, auth.ErrInvalidToken):
		err = c.NoContent(http.StatusUnauthorized)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotFound):
		err = c.JSON(http.StatusBadRequest, ErrResp{Error: err.Error()})
	case errors.Is(err, service.ErrConstraint):
		err = c.JSON(http.StatusConflict, ErrResp{Error: err.Error()})
	case errors.As(err, &httpErr):
		err = c.JSON(httpErr.Code, ErrResp{Error: fmt.Sprintf("%v", httpErr.Message)})
	default:
		s.logger.Errorw("request failed", "path", c.Path(), "error", err)
		err = c.NoContent(http.StatusInternalServerError)
	}
	if err != nil {
		s.logger.Errorw("write error response", "error", err)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get("user").(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid path param '%s'", name))
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid path param '%s'", name))
	}
	return vv, nil
}

// censorBody blanks credential fields before a request body hits the log.
func censorBody(b []byte) []byte {
	body := map[string]interface{}{}
	if err := json.Unmarshal(b, &body); err != nil {
		return b
	}
	if _, ok := body["password"]; !ok {
		return b
	}
	body["password"] = "$censored"
	censored, err := json.Marshal(body)
	if err != nil {
		return b
	}
	return censored
}

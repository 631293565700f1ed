package httpHandler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"user-service/entities"
	"user-service/usecases"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation errors report JSON field names, not Go struct field names,
// and identity fields must hold more than whitespace.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

const (
	// URLUserBase roots every user endpoint.
	URLUserBase = "/v1/users"

	defaultPageSize = 15
	defaultSort     = "createdDateTime,desc"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
	log     *zap.SugaredLogger
}

func NewUserHandler(useCase *usecases.UserUseCase, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		useCase: useCase,
		log:     log,
	}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required,notblank,min=5,max=50"`
	FirstName string `json:"firstName" binding:"required,notblank,max=30"`
	LastName  string `json:"lastName" binding:"omitempty,max=30"`
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			h.log.Errorw("user creation input invalid", "violations", len(verr))
			c.JSON(http.StatusBadRequest, validationFailureResponse(MessageUserInvalidInput, mapFieldErrors(verr)))
			return
		}
		c.JSON(http.StatusBadRequest, failureResponse(MessageUserInvalidInput))
		return
	}

	user, err := h.useCase.CreateUser(usecases.CreateUserCommand{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUserExists):
			h.log.Errorw("user already exists", "username", req.Username)
			c.JSON(http.StatusConflict, failureResponse(MessageUserAlreadyExists))
		case errors.Is(err, entities.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, failureResponse(MessageUserInvalidInput))
		default:
			h.log.Errorw("user creation failed", "error", err)
			c.JSON(http.StatusInternalServerError, failureResponse(MessageSomethingWentWrong))
		}
		return
	}

	h.log.Infow("created user", "username", user.Username, "uid", user.UID.String())
	c.Header("Location", URLUserBase+"/"+user.UID.String())
	c.JSON(http.StatusCreated, successResponse(MessageUserCreated, user))
}

// GetUsersPage handles GET /v1/users?page=&size=&sort=
func (h *UserHandler) GetUsersPage(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	sortField, descending := parseSort(c.DefaultQuery("sort", defaultSort))

	result, err := h.useCase.GetUsersPage(usecases.PageRequest{
		Page:       page,
		Size:       size,
		SortField:  sortField,
		Descending: descending,
	})
	if err != nil {
		h.log.Errorw("failed to page users", "error", err)
		c.JSON(http.StatusInternalServerError, failureResponse(MessageSomethingWentWrong))
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteUser handles DELETE /v1/users/:uid
func (h *UserHandler) DeleteUser(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		// A malformed id names no existing user.
		c.JSON(http.StatusNotFound, failureResponse(MessageUserNotFound))
		return
	}

	if err := h.useCase.DeleteUserByUID(uid); err != nil {
		switch {
		case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrInvalidArgument):
			c.JSON(http.StatusNotFound, failureResponse(MessageUserNotFound))
		default:
			h.log.Errorw("user deletion failed", "error", err, "uid", uid.String())
			c.JSON(http.StatusInternalServerError, failureResponse(MessageSomethingWentWrong))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseSort reads Spring-style "field,dir" sort parameters. Direction
// defaults to descending, matching the listing's default order.
func parseSort(sort string) (field string, descending bool) {
	parts := strings.SplitN(sort, ",", 2)
	field = strings.TrimSpace(parts[0])
	descending = true
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "asc") {
		descending = false
	}
	return field, descending
}

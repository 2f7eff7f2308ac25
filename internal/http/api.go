package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tasker-server/internal/auth"
	"tasker-server/internal/domain"
	"tasker-server/internal/service"
)

// Response messages surfaced to clients alongside data payloads.
const (
	msgRegisterSuccess   = "User was successfully registered"
	msgLoginSuccess      = "Login successful"
	msgLoginError        = "The credentials provided do not match any user's in the Tasker platform"
	msgEmptyCredentials  = "Some credentials are empty"
	msgUpdateSuccess     = "Update successful"
	msgDeleteUserSuccess = "User was successfully deleted"
	msgDetailsSuccess    = "User details successfully retrieved"
	msgWrongPassword     = "Wrong password"
	msgValidationSuccess = "Validation was successfully done"
	msgUserNotFound      = "No user was found with the provided username"
	msgNotAuthorized     = "User is not authorized for this operation"
	msgTaskAddSuccess    = "Task was successfully added"
	msgTaskRemoveSuccess = "Task was successfully removed"
	msgTaskUpdateSuccess = "Task was successfully updated"
	msgTaskGetSuccess    = "Task was successfully retrieved"
	msgTaskListSuccess   = "Tasks were successfully retrieved"
	msgTaskNotFound      = "No task was found with the provided id"
	msgTaskInvalidData   = "Invalid data was sent. There may be empty values"
	msgNoIDGiven         = "No id was given for task removal"
	msgInternalError     = "Something went wrong, please try again later"
	msgMalformedRequest  = "The request body could not be parsed"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	tasks  service.TaskService
	tokens auth.TokenService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, tokens auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		tasks:  tasks,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	users := router.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.PUT("/update/:username", h.authorizeOwner(), h.updateUser)
		users.DELETE("/delete/:username", h.authorizeOwner(), h.deleteUser)
		users.GET("/details/:username", h.authorizeOwner(), h.userDetails)
		users.GET("/validate/:username", h.validateToken)
		users.POST("/validate/:username", h.validatePassword)
	}

	tasker := router.Group("/tasker/:username", h.authorizeOwner())
	{
		tasker.POST("/add", h.addTask)
		tasker.DELETE("/delete", h.deleteTask)
		tasker.PUT("/update", h.updateTask)
		tasker.GET("/task", h.getTask)
		tasker.GET("/tasks", h.listTasks)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

// authorizeOwner is the single authorization gate of the system: the bearer
// token must assert exactly the username in the request path. Services never
// see tokens; every owner-scoped route passes through here first.
func (h *Handler) authorizeOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if !h.tokens.Validate(bearerToken(c), username) {
			h.logger.Warnf("authorization failed for user %q on %s %s", username, c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, apiResponse{Message: msgNotAuthorized})
			return
		}
		c.Next()
	}
}

// bearerToken pulls the token out of the Authorization header. A "Bearer "
// prefix is accepted but not required.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type validatePasswordRequest struct {
	Password string `json:"password"`
}

type addTaskRequest struct {
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
}

type updateTaskRequest struct {
	ID          *int64 `json:"id"`
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
}

type apiResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type userResponse struct {
	Message string   `json:"message"`
	User    UserData `json:"user"`
}

type taskResponse struct {
	Message string   `json:"message"`
	Task    TaskData `json:"task"`
}

type taskListResponse struct {
	Message string     `json:"message"`
	Tasks   []TaskData `json:"tasks"`
}

type UserData struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type TaskData struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("register: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.logger.Errorf("register: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apiResponse{Message: msgEmptyCredentials})
		case errors.Is(err, service.ErrPasswordTooShort), errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, apiResponse{Message: err.Error()})
		case errors.Is(err, service.ErrAlreadyExists):
			c.JSON(http.StatusConflict, apiResponse{Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		h.logger.Errorf("register: issue token: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Message: msgRegisterSuccess, Token: token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("login: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	ok, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Errorf("login: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apiResponse{Message: msgEmptyCredentials})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Message: msgUserNotFound})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}
	if !ok {
		h.logger.Warnf("login: wrong password for user %q", req.Username)
		c.JSON(http.StatusForbidden, apiResponse{Message: msgLoginError})
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		h.logger.Errorf("login: issue token: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Message: msgLoginSuccess, Token: token})
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("update user: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	// The path username is authoritative; it was already checked against the
	// token by the guard, and usernames are immutable anyway.
	username := c.Param("username")
	user, err := h.users.Update(c.Request.Context(), username, req.Password, req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.logger.Errorf("update user: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apiResponse{Message: msgEmptyCredentials})
		case errors.Is(err, service.ErrPasswordTooShort), errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, apiResponse{Message: err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Message: msgUserNotFound})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}
	c.JSON(http.StatusOK, userResponse{Message: msgUpdateSuccess, User: userToData(user)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		h.logger.Errorf("delete user: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apiResponse{Message: msgEmptyCredentials})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Message: msgUserNotFound})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}
	c.JSON(http.StatusOK, apiResponse{Message: msgDeleteUserSuccess})
}

func (h *Handler) userDetails(c *gin.Context) {
	username := c.Param("username")
	user, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		h.logger.Errorf("user details: %v", err)
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Message: msgUserNotFound})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}
	c.JSON(http.StatusOK, userResponse{Message: msgDetailsSuccess, User: userToData(user)})
}

// validateToken lets clients probe whether their token still authorizes the
// given username: 204 when valid, 403 otherwise, never a body.
func (h *Handler) validateToken(c *gin.Context) {
	if h.tokens.Validate(bearerToken(c), c.Param("username")) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Status(http.StatusForbidden)
}

func (h *Handler) validatePassword(c *gin.Context) {
	var req validatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("validate password: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	ok, err := h.users.Authenticate(c.Request.Context(), c.Param("username"), req.Password)
	if err != nil {
		h.logger.Errorf("validate password: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, apiResponse{Message: msgEmptyCredentials})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Message: msgUserNotFound})
		default:
			c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		}
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, apiResponse{Message: msgWrongPassword})
		return
	}
	c.JSON(http.StatusOK, apiResponse{Message: msgValidationSuccess})
}

func (h *Handler) addTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("add task: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	tasks, err := h.tasks.Add(c.Request.Context(), c.Param("username"), req.Description, req.Priority)
	if err != nil {
		h.logger.Errorf("add task: %v", err)
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListResponse{Message: msgTaskAddSuccess, Tasks: tasksToData(tasks)})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := queryTaskID(c)
	if !ok {
		h.logger.Errorf("delete task: missing or malformed id %q", c.Query("id"))
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgNoIDGiven})
		return
	}

	tasks, err := h.tasks.Delete(c.Request.Context(), c.Param("username"), id)
	if err != nil {
		h.logger.Errorf("delete task: %v", err)
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListResponse{Message: msgTaskRemoveSuccess, Tasks: tasksToData(tasks)})
}

func (h *Handler) updateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("update task: bind request: %v", err)
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgMalformedRequest})
		return
	}

	tasks, err := h.tasks.Update(c.Request.Context(), c.Param("username"), req.ID, req.Description, req.Priority)
	if err != nil {
		h.logger.Errorf("update task: %v", err)
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListResponse{Message: msgTaskUpdateSuccess, Tasks: tasksToData(tasks)})
}

func (h *Handler) getTask(c *gin.Context) {
	id, ok := queryTaskID(c)
	if !ok {
		h.logger.Errorf("get task: missing or malformed id %q", c.Query("id"))
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgNoIDGiven})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), c.Param("username"), id)
	if err != nil {
		h.logger.Errorf("get task: %v", err)
		h.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse{Message: msgTaskGetSuccess, Task: taskToData(*task)})
}

func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.logger.Errorf("list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
		return
	}
	c.JSON(http.StatusOK, taskListResponse{Message: msgTaskListSuccess, Tasks: tasksToData(tasks)})
}

func (h *Handler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, apiResponse{Message: msgTaskInvalidData})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apiResponse{Message: msgTaskNotFound})
	default:
		c.JSON(http.StatusInternalServerError, apiResponse{Message: msgInternalError})
	}
}

func queryTaskID(c *gin.Context) (*int64, bool) {
	raw := c.Query("id")
	if raw == "" {
		return nil, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

func userToData(user *domain.User) UserData {
	return UserData{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func taskToData(task domain.Task) TaskData {
	return TaskData{
		ID:          task.ID,
		Description: task.Description,
		Priority:    task.Priority,
	}
}

func tasksToData(tasks []domain.Task) []TaskData {
	resp := make([]TaskData, len(tasks))
	for i := range tasks {
		resp[i] = taskToData(tasks[i])
	}
	return resp
}

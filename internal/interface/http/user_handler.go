package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-directory/internal/application"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
	"github.com/oksasatya/go-employee-directory/pkg/response"
	"github.com/oksasatya/go-employee-directory/pkg/validation"
)

const msgValidationFailed = "Validation failed"

type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    application.UserView `json:"user"`
}

// Signup POST /user/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToDetails(err))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, map[string]string{"username": "is required"})
		return
	}

	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrConflict) {
			response.Error(c, http.StatusConflict, "User with provided email or username already exists.", nil)
			return
		}
		internalError(c, h.Logger, err, "signup failed")
		return
	}
	response.JSON(c, http.StatusCreated, authResponse{Message: "User created successfully.", Token: res.Token, User: res.User})
}

// Login POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToDetails(err))
		return
	}
	if req.Email == "" && req.Username == "" {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, map[string]string{"email": "email or username is required"})
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), application.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid username/email or password", nil)
			return
		}
		internalError(c, h.Logger, err, "login failed")
		return
	}
	response.JSON(c, http.StatusOK, authResponse{Message: "Login successful.", Token: res.Token, User: res.User})
}

// internalError logs err and answers 500 with its message.
func internalError(c *gin.Context, logger *logrus.Logger, err error, msg string) {
	helpers.LogError(logger, msg, err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, err.Error(), nil)
}

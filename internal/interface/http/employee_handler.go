package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-directory/internal/application"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	"github.com/oksasatya/go-employee-directory/pkg/response"
	"github.com/oksasatya/go-employee-directory/pkg/validation"
)

const (
	pictureField = "profile_picture"
	// room for the text fields of a multipart body on top of the file itself
	formOverhead = 1 << 20

	DefaultMaxUploadBytes int64 = 5 << 20
)

// badUpload is a client-facing rejection of the attached file.
type badUpload string

func (e badUpload) Error() string { return string(e) }

const (
	errNotImage     badUpload = "Only image files are allowed"
	errFileTooLarge badUpload = "File too large"
)

// trimmed mirrors the fields that are whitespace-trimmed before validation.
var trimmed = map[string]bool{
	application.FieldFirstName:  true,
	application.FieldLastName:   true,
	application.FieldPosition:   true,
	application.FieldDepartment: true,
}

type EmployeeHandler struct {
	Svc            *application.EmployeeService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewEmployeeHandler(svc *application.EmployeeService, logger *logrus.Logger, maxUploadBytes int64) *EmployeeHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &EmployeeHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type createEmployeeRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Position   string `json:"position" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type updateEmployeeRequest struct {
	FirstName  *string `json:"first_name" binding:"omitnil,min=1"`
	LastName   *string `json:"last_name" binding:"omitnil,min=1"`
	Email      *string `json:"email" binding:"omitnil,email"`
	Position   *string `json:"position" binding:"omitnil,min=1"`
	Department *string `json:"department" binding:"omitnil,min=1"`
}

type employeeResponse struct {
	Message  string       `json:"message"`
	Employee EmployeeView `json:"employee"`
}

// List GET /employees
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toEmployeeViews(c, list))
}

// Search GET /employees/search?department=&position=
func (h *EmployeeHandler) Search(c *gin.Context) {
	filter := application.SearchFilter{}
	details := map[string]string{}
	for key, dst := range map[string]*string{"department": &filter.Department, "position": &filter.Position} {
		v, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		if *dst = strings.TrimSpace(v); *dst == "" {
			details[key] = "cannot be empty"
		}
	}
	if len(details) > 0 {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, details)
		return
	}

	list, err := h.Svc.Search(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toEmployeeViews(c, list))
}

// Lookup GET /employees/lookup?q=&size=
func (h *EmployeeHandler) Lookup(c *gin.Context) {
	size := 0
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, msgValidationFailed, map[string]string{"size": "must be a positive integer"})
			return
		}
		size = n
	}
	list, err := h.Svc.Lookup(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toEmployeeViews(c, list))
}

// Get GET /employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toEmployeeView(c, e))
}

// Create POST /employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	fields, picture, ok := h.readForm(c)
	if !ok {
		return
	}
	defer closeUpload(picture)

	req := createEmployeeRequest{
		FirstName:  fields[application.FieldFirstName],
		LastName:   fields[application.FieldLastName],
		Email:      fields[application.FieldEmail],
		Position:   fields[application.FieldPosition],
		Department: fields[application.FieldDepartment],
	}
	if err := validation.Struct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToDetails(err))
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), fields, picture.upload())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, employeeResponse{Message: "Employee created successfully.", Employee: toEmployeeView(c, e)})
}

// Update PUT /employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	fields, picture, ok := h.readForm(c)
	if !ok {
		return
	}
	defer closeUpload(picture)

	req := updateEmployeeRequest{
		FirstName:  lookup(fields, application.FieldFirstName),
		LastName:   lookup(fields, application.FieldLastName),
		Email:      lookup(fields, application.FieldEmail),
		Position:   lookup(fields, application.FieldPosition),
		Department: lookup(fields, application.FieldDepartment),
	}
	if err := validation.Struct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgValidationFailed, validation.ToDetails(err))
		return
	}

	e, err := h.Svc.Update(c.Request.Context(), id, fields, picture.upload())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employeeResponse{Message: "Employee details updated successfully.", Employee: toEmployeeView(c, e)})
}

// Delete DELETE /employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Employee deleted successfully.")
}

func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, msgValidationFailed, ve.Fields)
	case errors.Is(err, application.ErrEmployeeNotFound):
		response.Error(c, http.StatusNotFound, "Employee not found.", nil)
	case errors.Is(err, application.ErrEmptyFilter):
		response.Error(c, http.StatusBadRequest, "Provide department or position to search", nil)
	default:
		internalError(c, h.Logger, err, "employee operation failed")
	}
}

func employeeID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid employee id", nil)
		return "", false
	}
	return id, true
}

func lookup(fields map[string]string, key string) *string {
	if v, ok := fields[key]; ok {
		return &v
	}
	return nil
}

// pictureFile is the optional uploaded profile picture of a request.
type pictureFile struct {
	header *multipart.FileHeader
	file   multipart.File
}

func (p *pictureFile) upload() *repo.Upload {
	if p == nil {
		return nil
	}
	return &repo.Upload{
		Filename:    p.header.Filename,
		ContentType: p.header.Header.Get("Content-Type"),
		Size:        p.header.Size,
		Body:        p.file,
	}
}

func closeUpload(p *pictureFile) {
	if p != nil && p.file != nil {
		_ = p.file.Close()
	}
}

// readForm collects the allow-listed fields from a multipart, urlencoded or
// JSON body together with the optional picture. On failure it has already
// written the response.
func (h *EmployeeHandler) readForm(c *gin.Context) (map[string]string, *pictureFile, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+formOverhead)

	var (
		fields map[string]string
		err    error
	)
	if c.ContentType() == gin.MIMEJSON {
		fields, err = jsonFields(c)
	} else {
		fields, err = formFields(c)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusBadRequest, errFileTooLarge.Error(), nil)
			return nil, nil, false
		}
		response.Error(c, http.StatusBadRequest, "Invalid request body", map[string]string{"payload": err.Error()})
		return nil, nil, false
	}
	for key, v := range fields {
		if trimmed[key] {
			fields[key] = strings.TrimSpace(v)
		}
	}

	picture, err := h.picture(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return nil, nil, false
	}
	return fields, picture, true
}

func formFields(c *gin.Context) (map[string]string, error) {
	if err := c.Request.ParseMultipartForm(formOverhead); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	fields := map[string]string{}
	for _, key := range application.AllowedFields {
		if vals, ok := c.Request.PostForm[key]; ok && len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	return fields, nil
}

func jsonFields(c *gin.Context) (map[string]string, error) {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		return nil, err
	}
	fields := map[string]string{}
	for _, key := range application.AllowedFields {
		switch v := raw[key].(type) {
		case nil:
		case string:
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			fields[key] = fmt.Sprint(v)
		}
	}
	return fields, nil
}

func (h *EmployeeHandler) picture(c *gin.Context) (*pictureFile, error) {
	form := c.Request.MultipartForm
	if form == nil || len(form.File[pictureField]) == 0 {
		return nil, nil
	}
	fh := form.File[pictureField][0]
	if fh.Size > h.MaxUploadBytes {
		return nil, errFileTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(fh.Header.Get("Content-Type")), "image/") {
		return nil, errNotImage
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return &pictureFile{header: fh, file: f}, nil
}

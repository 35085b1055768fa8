package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// EmployeeView is an employee as returned to clients. ProfilePictureURL is
// derived per request and never stored.
type EmployeeView struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Position          string    `json:"position"`
	Salary            *float64  `json:"salary"`
	Department        string    `json:"department"`
	DateOfJoining     *string   `json:"date_of_joining"`
	ProfilePicture    *string   `json:"profile_picture"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toEmployeeView(c *gin.Context, e *entity.Employee) EmployeeView {
	v := EmployeeView{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Salary:     e.Salary,
		Department: e.Department,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.DateOfJoining != nil {
		d := e.DateOfJoining.UTC().Format(dateLayout)
		v.DateOfJoining = &d
	}
	if e.HasPicture() {
		name := e.ProfilePicture
		link := requestScheme(c) + "://" + c.Request.Host + "/uploads/" + url.PathEscape(name)
		v.ProfilePicture = &name
		v.ProfilePictureURL = &link
	}
	return v
}

func toEmployeeViews(c *gin.Context, list []entity.Employee) []EmployeeView {
	out := make([]EmployeeView, 0, len(list))
	for i := range list {
		out = append(out, toEmployeeView(c, &list[i]))
	}
	return out
}

// requestScheme is https for TLS requests, else the first X-Forwarded-Proto
// value, else http.
func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		first, _, _ := strings.Cut(p, ",")
		if first = strings.ToLower(strings.TrimSpace(first)); first == "http" || first == "https" {
			return first
		}
	}
	return "http"
}

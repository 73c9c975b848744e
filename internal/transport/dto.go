package transport

import (
	"time"

	"github.com/Skotchmaster/college_admin/internal/models"
)

// Response is the success envelope. Failures use ErrorResponse.
type Response[T any] struct {
	Status bool `json:"status"`
	Data   T    `json:"data"`
}

type ErrorResponse struct {
	Status bool     `json:"status"`
	Errors []string `json:"errors"`
}

func OK[T any](data T) Response[T] {
	return Response[T]{Status: true, Data: data}
}

func Fail(errs ...string) ErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return ErrorResponse{Status: false, Errors: errs}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username     string    `json:"username"`
	Token        string    `json:"token"`
	ExpiresAtUTC time.Time `json:"expires_at_utc"`
}

type UserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	UserTypeID *uint  `json:"user_type_id"`
	RoleID     *uint  `json:"role_id"`
	IsActive   *bool  `json:"is_active"`
}

type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	UserTypeID   *uint     `json:"user_type_id,omitempty"`
	RoleID       *uint     `json:"role_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

func UserFromModel(u models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		UserTypeID:   u.UserTypeID,
		RoleID:       u.RoleID,
		IsActive:     u.IsActive,
		CreatedDate:  u.CreatedDate,
		ModifiedDate: u.ModifiedDate,
	}
}

type RoleRequest struct {
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type RoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

func RoleFromModel(r models.Role) RoleResponse {
	return RoleResponse{ID: r.ID, RoleName: r.RoleName, Description: r.Description, Active: r.Active}
}

type PrivilegeRequest struct {
	RoleID            uint   `json:"role_id"`
	RolePrivilegeName string `json:"role_privilege_name"`
	Description       string `json:"description"`
	Active            bool   `json:"active"`
}

type PrivilegeResponse struct {
	ID                uint   `json:"id"`
	RoleID            uint   `json:"role_id"`
	RolePrivilegeName string `json:"role_privilege_name"`
	Description       string `json:"description"`
	Active            bool   `json:"active"`
}

func PrivilegeFromModel(p models.RolePrivilege) PrivilegeResponse {
	return PrivilegeResponse{
		ID:                p.ID,
		RoleID:            p.RoleID,
		RolePrivilegeName: p.RolePrivilegeName,
		Description:       p.Description,
		Active:            p.IsActive,
	}
}

type StudentRequest struct {
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	// DateOfBirth is a calendar date ("2006-01-02") or an RFC 3339 timestamp.
	DateOfBirth string `json:"date_of_birth"`
}

// StudentPatch carries only the fields to change; nil fields keep their value.
type StudentPatch struct {
	StudentName *string `json:"student_name"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
}

func (p StudentPatch) Empty() bool {
	return p.StudentName == nil && p.Email == nil && p.Address == nil && p.DateOfBirth == nil
}

// Apply overlays the patch on a full request built from the stored student.
func (p StudentPatch) Apply(s models.Student) StudentRequest {
	req := StudentRequest{
		StudentName: s.StudentName,
		Email:       s.Email,
		Address:     s.Address,
	}
	if !s.DateOfBirth.IsZero() {
		req.DateOfBirth = s.DateOfBirth.UTC().Format(time.DateOnly)
	}
	if p.StudentName != nil {
		req.StudentName = *p.StudentName
	}
	if p.Email != nil {
		req.Email = *p.Email
	}
	if p.Address != nil {
		req.Address = *p.Address
	}
	if p.DateOfBirth != nil {
		req.DateOfBirth = *p.DateOfBirth
	}
	return req
}

type StudentResponse struct {
	ID          uint   `json:"id"`
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

func StudentFromModel(s models.Student) StudentResponse {
	var dob string
	if !s.DateOfBirth.IsZero() {
		dob = s.DateOfBirth.UTC().Format(time.DateOnly)
	}
	return StudentResponse{
		ID:          s.ID,
		StudentName: s.StudentName,
		Email:       s.Email,
		Address:     s.Address,
		DateOfBirth: dob,
	}
}

type UserTypeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func UserTypeFromModel(u models.UserType) UserTypeResponse {
	return UserTypeResponse{ID: u.ID, Name: u.Name, Description: u.Description}
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPage[T any](items []T, page, from, size int, total int64) Page[T] {
	var pages int64
	if size > 0 {
		pages = (total + int64(size) - 1) / int64(size)
	}
	return Page[T]{
		Items:      items,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    int64(from)+int64(size) < total,
	}
}

// MapSlice converts every element with f and never returns nil.
func MapSlice[In, Out any](in []In, f func(In) Out) []Out {
	out := make([]Out, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

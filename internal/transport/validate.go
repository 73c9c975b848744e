package transport

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

const (
	MaxUsernameLen      = 64
	MaxStudentNameLen   = 50
	MaxAddressLen       = 100
	MaxRoleNameLen      = 250
	MaxPrivilegeNameLen = 250
)

type problems []string

func (p *problems) required(field, v string) bool {
	if strings.TrimSpace(v) == "" {
		*p = append(*p, field+" is required")
		return false
	}
	return true
}

func (p *problems) maxLen(field, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		*p = append(*p, fmt.Sprintf("%s cannot exceed %d characters", field, n))
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", apperr.ErrValidation, strings.Join(p, "; "))
}

func (r LoginRequest) Validate() error {
	var p problems
	p.required("username", r.Username)
	if r.Password == "" {
		p = append(p, "password is required")
	}
	return p.err()
}

// Validate checks a user payload. Password is only required on create.
func (r UserRequest) Validate(create bool) error {
	var p problems
	if p.required("username", r.Username) {
		p.maxLen("username", r.Username, MaxUsernameLen)
	}
	if create && r.Password == "" {
		p = append(p, "password is required")
	}
	return p.err()
}

func (r RoleRequest) Validate() error {
	var p problems
	if p.required("role_name", r.RoleName) {
		p.maxLen("role_name", r.RoleName, MaxRoleNameLen)
	}
	return p.err()
}

func (r PrivilegeRequest) Validate() error {
	var p problems
	if r.RoleID == 0 {
		p = append(p, "role_id is required")
	}
	if p.required("role_privilege_name", r.RolePrivilegeName) {
		p.maxLen("role_privilege_name", r.RolePrivilegeName, MaxPrivilegeNameLen)
	}
	return p.err()
}

// Validate checks the payload against now and returns the parsed date of birth.
func (r StudentRequest) Validate(now time.Time) (time.Time, error) {
	var p problems
	if p.required("student_name", r.StudentName) {
		p.maxLen("student_name", r.StudentName, MaxStudentNameLen)
	}
	if p.required("email", r.Email) {
		if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != strings.TrimSpace(r.Email) {
			p = append(p, "email is not a valid address")
		}
	}
	if p.required("address", r.Address) {
		p.maxLen("address", r.Address, MaxAddressLen)
	}

	var dob time.Time
	if p.required("date_of_birth", r.DateOfBirth) {
		var err error
		dob, err = ParseDate(r.DateOfBirth)
		switch {
		case err != nil:
			p = append(p, "date_of_birth is not a valid date")
		case dob.After(now):
			p = append(p, "date_of_birth cannot be in the future")
		}
	}
	return dob, p.err()
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

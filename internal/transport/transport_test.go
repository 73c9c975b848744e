package transport

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/models"
)

func TestEnvelopes(t *testing.T) {
	t.Parallel()
	ok, err := json.Marshal(OK([]RoleResponse{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":true,"data":[]}`, string(ok))

	fail, err := json.Marshal(Fail("invalid credentials"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"errors":["invalid credentials"]}`, string(fail))
}

func TestUserResponseHidesSecrets(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(UserFromModel(models.User{ID: 1, Username: "alice", PasswordHash: []byte("h"), PasswordSalt: []byte("s")}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"username":"alice"`)
}

func TestUserRequestValidate(t *testing.T) {
	t.Parallel()
	long := make([]byte, MaxUsernameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	tests := []struct {
		name    string
		req     UserRequest
		create  bool
		wantErr bool
	}{
		{name: "ok", req: UserRequest{Username: "alice", Password: "pw"}, create: true},
		{name: "update without password", req: UserRequest{Username: "alice"}},
		{name: "create without password", req: UserRequest{Username: "alice"}, create: true, wantErr: true},
		{name: "blank username", req: UserRequest{Username: "  ", Password: "pw"}, create: true, wantErr: true},
		{name: "long username", req: UserRequest{Username: string(long), Password: "pw"}, create: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate(tt.create)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStudentRequestValidate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	valid := StudentRequest{StudentName: "Ann Lee", Email: "ann@example.com", Address: "1 Main St", DateOfBirth: "2004-02-29"}

	dob, err := valid.Validate(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2004, 2, 29, 0, 0, 0, 0, time.UTC), dob)

	tests := []struct {
		name   string
		mutate func(*StudentRequest)
		msg    string
	}{
		{name: "missing name", mutate: func(r *StudentRequest) { r.StudentName = "" }, msg: "student_name is required"},
		{name: "bad email", mutate: func(r *StudentRequest) { r.Email = "not-an-email" }, msg: "email is not a valid address"},
		{name: "named email", mutate: func(r *StudentRequest) { r.Email = "Ann <ann@example.com>" }, msg: "email is not a valid address"},
		{name: "future birth", mutate: func(r *StudentRequest) { r.DateOfBirth = "2027-01-01" }, msg: "date_of_birth cannot be in the future"},
		{name: "garbage birth", mutate: func(r *StudentRequest) { r.DateOfBirth = "yesterday" }, msg: "date_of_birth is not a valid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := valid
			tt.mutate(&r)
			_, err := r.Validate(now)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPrivilegeAndRoleValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, RoleRequest{RoleName: "Registrar"}.Validate())
	require.ErrorIs(t, RoleRequest{}.Validate(), apperr.ErrValidation)
	require.NoError(t, PrivilegeRequest{RoleID: 1, RolePrivilegeName: "read"}.Validate())
	require.ErrorIs(t, PrivilegeRequest{RolePrivilegeName: "read"}.Validate(), apperr.ErrValidation)
}

func TestNewPage(t *testing.T) {
	t.Parallel()
	p := NewPage([]int{1, 2}, 2, 10, 10, 25)
	assert.EqualValues(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	last := NewPage([]int{}, 3, 20, 10, 25)
	assert.False(t, last.HasNext)

	far := NewPage([]int{}, math.MaxInt/10+1, math.MaxInt/10*10, 10, 25)
	assert.False(t, far.HasNext)
}

func TestStudentPatchApply(t *testing.T) {
	t.Parallel()
	stored := models.Student{
		StudentName: "Ann Lee",
		Email:       "ann@example.com",
		Address:     "1 College Rd",
		DateOfBirth: time.Date(2004, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, StudentPatch{}.Empty())

	name := "Ann Park"
	p := StudentPatch{StudentName: &name}
	assert.False(t, p.Empty())
	assert.Equal(t, StudentRequest{
		StudentName: "Ann Park",
		Email:       "ann@example.com",
		Address:     "1 College Rd",
		DateOfBirth: "2004-03-01",
	}, p.Apply(stored))
}

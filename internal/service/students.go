package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/search"
	"github.com/Skotchmaster/college_admin/internal/transport"
	"github.com/Skotchmaster/college_admin/internal/util"
)

type StudentService struct {
	Students repo.Repository[models.Student]
	// Index is optional. Without it search runs against the database.
	Index  search.StudentIndex
	Events events.Publisher
	Now    func() time.Time
}

func NewStudentService(db *gorm.DB, index search.StudentIndex, pub events.Publisher) *StudentService {
	return &StudentService{Students: repo.New[models.Student](db), Index: index, Events: pub}
}

type StudentPage struct {
	Items []models.Student
	Page  int
	From  int
	Size  int
	Total int64
}

func (s *StudentService) Create(ctx context.Context, req transport.StudentRequest) (*models.Student, error) {
	now := clock(s.Now).now()
	dob, err := req.Validate(now)
	if err != nil {
		return nil, err
	}
	st := &models.Student{
		StudentName:  strings.TrimSpace(req.StudentName),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		DateOfBirth:  dob,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if _, err := s.Students.Add(ctx, st); err != nil {
		return nil, err
	}
	s.syncIndex(ctx, st)
	publish(ctx, s.Events, events.New(events.StudentCreated, st.ID, st.StudentName))
	logging.FromContext(ctx).Info("create_student_success", "student_id", st.ID)
	return st, nil
}

func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	return s.Students.GetAllByFilter(ctx, repo.Where(repo.NotDeleted()))
}

func (s *StudentService) Get(ctx context.Context, id uint) (*models.Student, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Students.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), false)
}

func (s *StudentService) GetByName(ctx context.Context, name string) (*models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	return s.Students.Get(ctx, repo.Where(repo.Eq("student_name", name), repo.NotDeleted()), false)
}

// Search pages through students matching query. The index is tried first;
// when it is absent or fails the database is searched by name.
func (s *StudentService) Search(ctx context.Context, query string, page, size int) (*StudentPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q is required", apperr.ErrValidation)
	}
	page, from, limit := util.Calculate(page, size)

	if s.Index != nil {
		res, err := s.searchIndex(ctx, query, from, limit)
		if err == nil {
			res.Page = page
			return res, nil
		}
		logging.FromContext(ctx).Warn("student_search_index_failed", "error", err)
	}

	matches, err := s.Students.GetAllByFilter(ctx, repo.Where(repo.Contains("student_name", query), repo.NotDeleted()))
	if err != nil {
		return nil, err
	}
	return &StudentPage{
		Items: util.Window(matches, from, limit),
		Page:  page,
		From:  from,
		Size:  limit,
		Total: int64(len(matches)),
	}, nil
}

// searchIndex keeps the index ranking but returns the stored rows. Hits with no
// live row are dropped from the page, taken off the total and removed from the
// index so later pages count correctly.
func (s *StudentService) searchIndex(ctx context.Context, query string, from, limit int) (*StudentPage, error) {
	total, docs, err := s.Index.Search(ctx, query, from, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	rows, err := s.Students.GetAllByFilter(ctx, repo.Where(repo.In("id", ids), repo.NotDeleted()))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Student, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	items := make([]models.Student, 0, len(rows))
	for _, id := range ids {
		st, ok := byID[id]
		if !ok {
			total--
			if err := s.Index.Delete(ctx, id); err != nil {
				logging.FromContext(ctx).Warn("student_unindex_failed", "student_id", id, "error", err)
			}
			continue
		}
		items = append(items, st)
	}
	if total < int64(len(items)) {
		total = int64(len(items))
	}
	return &StudentPage{Items: items, From: from, Size: limit, Total: total}, nil
}

func (s *StudentService) Update(ctx context.Context, id uint, req transport.StudentRequest) (*models.Student, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	now := clock(s.Now).now()
	dob, err := req.Validate(now)
	if err != nil {
		return nil, err
	}
	st, err := s.Students.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return nil, err
	}
	st.StudentName = strings.TrimSpace(req.StudentName)
	st.Email = strings.TrimSpace(req.Email)
	st.Address = strings.TrimSpace(req.Address)
	st.DateOfBirth = dob
	st.ModifiedDate = now
	if err := s.Students.Update(ctx, st); err != nil {
		return nil, err
	}
	s.syncIndex(ctx, st)
	publish(ctx, s.Events, events.New(events.StudentUpdated, st.ID, st.StudentName))
	return st, nil
}

// Patch changes only the fields present in patch. The merged student must
// pass the same validation as a full update.
func (s *StudentService) Patch(ctx context.Context, id uint, patch transport.StudentPatch) (*models.Student, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: patch has no fields", apperr.ErrValidation)
	}
	st, err := s.Students.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return nil, err
	}
	now := clock(s.Now).now()
	req := patch.Apply(*st)
	dob, err := req.Validate(now)
	if err != nil {
		return nil, err
	}
	st.StudentName = strings.TrimSpace(req.StudentName)
	st.Email = strings.TrimSpace(req.Email)
	st.Address = strings.TrimSpace(req.Address)
	st.DateOfBirth = dob
	st.ModifiedDate = now
	if err := s.Students.Update(ctx, st); err != nil {
		return nil, err
	}
	s.syncIndex(ctx, st)
	publish(ctx, s.Events, events.New(events.StudentUpdated, st.ID, st.StudentName))
	logging.FromContext(ctx).Info("patch_student_success", "student_id", st.ID)
	return st, nil
}

// Delete is soft: the row is kept with is_deleted set and leaves the index.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if err := requireID(id); err != nil {
		return err
	}
	st, err := s.Students.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return err
	}
	st.IsDeleted = true
	st.ModifiedDate = clock(s.Now).now()
	if err := s.Students.Update(ctx, st); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, st.ID); err != nil {
			logging.FromContext(ctx).Warn("student_unindex_failed", "student_id", st.ID, "error", err)
		}
	}
	publish(ctx, s.Events, events.New(events.StudentDeleted, st.ID, st.StudentName))
	return nil
}

func (s *StudentService) syncIndex(ctx context.Context, st *models.Student) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, *st); err != nil {
		logging.FromContext(ctx).Warn("student_index_failed", "student_id", st.ID, "error", err)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

type fakeSubjectStore struct {
	nextID    int64
	subjects  map[int64]*models.Subject
	lastOrder repositories.ListOrder
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: map[int64]*models.Subject{}}
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	for _, existing := range f.subjects {
		if existing.Code == subject.Code && existing.BranchID == subject.BranchID && existing.Semester == subject.Semester {
			return apperrors.ErrDuplicateSubject
		}
	}
	f.nextID++
	subject.ID = f.nextID
	copied := *subject
	f.subjects[subject.ID] = &copied
	return nil
}

func (f *fakeSubjectStore) Find(_ context.Context, filter repositories.SubjectFilter, order repositories.ListOrder) ([]*models.Subject, error) {
	f.lastOrder = order
	var out []*models.Subject
	for _, subject := range f.subjects {
		if filter.BranchID != nil && subject.BranchID != *filter.BranchID {
			continue
		}
		if filter.Semester != nil && subject.Semester != *filter.Semester {
			continue
		}
		out = append(out, subject)
	}
	return out, nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	copied := *subject
	return &copied, nil
}

func (f *fakeSubjectStore) Update(_ context.Context, subject *models.Subject) error {
	if _, ok := f.subjects[subject.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	copied := *subject
	f.subjects[subject.ID] = &copied
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

func TestCreateSubject(t *testing.T) {
	t.Parallel()

	t.Run("creates and returns the row", func(t *testing.T) {
		t.Parallel()
		store := newFakeSubjectStore()
		svc := NewSubjectService(store, zerolog.Nop())

		subject, err := svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
			Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 3,
		})
		require.NoError(t, err)
		assert.NotZero(t, subject.ID)
		assert.Equal(t, "ME3201", subject.Code)
	})

	t.Run("duplicate code in the same branch and semester conflicts", func(t *testing.T) {
		t.Parallel()
		store := newFakeSubjectStore()
		svc := NewSubjectService(store, zerolog.Nop())

		req := &dto.CreateSubjectRequest{Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 3}
		_, err := svc.CreateSubject(context.Background(), req)
		require.NoError(t, err)
		_, err = svc.CreateSubject(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateSubject)

		// Same code elsewhere is fine.
		_, err = svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
			Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 4,
		})
		assert.NoError(t, err)
	})
}

func TestListSubjects(t *testing.T) {
	t.Parallel()

	store := newFakeSubjectStore()
	svc := NewSubjectService(store, zerolog.Nop())
	seed := []dto.CreateSubjectRequest{
		{Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 3},
		{Name: "Fluid Mechanics", Code: "ME3202", Branch: 2, Semester: 3},
		{Name: "Machine Design", Code: "ME4101", Branch: 3, Semester: 4},
	}
	for i := range seed {
		_, err := svc.CreateSubject(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	t.Run("filters compose", func(t *testing.T) {
		branch := int64(2)
		sem := 3
		subjects, err := svc.ListSubjects(context.Background(),
			&dto.SubjectFilterRequest{Branch: &branch, Semester: &sem},
			repositories.OrderByNameAsc)
		require.NoError(t, err)
		assert.Len(t, subjects, 2)
	})

	t.Run("order is passed through to the store", func(t *testing.T) {
		_, err := svc.ListSubjects(context.Background(), nil, repositories.OrderByCreatedDesc)
		require.NoError(t, err)
		assert.Equal(t, repositories.OrderByCreatedDesc, store.lastOrder)
	})
}

func TestUpdateSubject(t *testing.T) {
	t.Parallel()

	t.Run("only non-nil fields change", func(t *testing.T) {
		t.Parallel()
		store := newFakeSubjectStore()
		svc := NewSubjectService(store, zerolog.Nop())

		created, err := svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
			Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 3,
		})
		require.NoError(t, err)

		newName := "Applied Thermodynamics"
		updated, err := svc.UpdateSubject(context.Background(), created.ID, &dto.UpdateSubjectRequest{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, "Applied Thermodynamics", updated.Name)
		assert.Equal(t, "ME3201", updated.Code)
		assert.Equal(t, int64(2), updated.BranchID)
		assert.Equal(t, 3, updated.Semester)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewSubjectService(newFakeSubjectStore(), zerolog.Nop())
		name := "X"
		_, err := svc.UpdateSubject(context.Background(), 99, &dto.UpdateSubjectRequest{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
	})
}

func TestDeleteSubject(t *testing.T) {
	t.Parallel()

	store := newFakeSubjectStore()
	svc := NewSubjectService(store, zerolog.Nop())
	created, err := svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
		Name: "Thermodynamics", Code: "ME3201", Branch: 2, Semester: 3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubject(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteSubject(context.Background(), created.ID), apperrors.ErrSubjectNotFound)
}

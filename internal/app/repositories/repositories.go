package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListOrder selects the sort applied to taxonomy listings. Public meta
// routes list by name, admin routes list newest first.
type ListOrder int

const (
	OrderByNameAsc ListOrder = iota
	OrderByCreatedDesc
)

func (o ListOrder) clause(alias string) string {
	if o == OrderByCreatedDesc {
		return alias + ".created_at DESC, " + alias + ".id DESC"
	}
	return alias + ".name ASC"
}

// Repositories holds all repository instances.
type Repositories struct {
	Regulation *RegulationRepository
	Branch     *BranchRepository
	Subject    *SubjectRepository
	Faculty    *FacultyRepository
	Student    *StudentRepository
	Note       *NoteRepository
}

// NewRepositories creates all repositories sharing the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Regulation: NewRegulationRepository(db),
		Branch:     NewBranchRepository(db),
		Subject:    NewSubjectRepository(db),
		Faculty:    NewFacultyRepository(db),
		Student:    NewStudentRepository(db),
		Note:       NewNoteRepository(db),
	}
}

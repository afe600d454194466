package inmemdb

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	progress *progressTable
	comments *commentTable
	notes    *noteTable
}

var (
	_ student.Repository    = (*studentRepository)(nil) // interface compliance check
	_ course.ProgressReader = (*studentRepository)(nil)
)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{progress: db.progress, comments: db.comment, notes: db.note}
}

// Progress

// getProgress returns the (userID, lessonID) record; callers hold the lock.
func (repo *studentRepository) getProgress(userID, lessonID string) (*student.Progress, bool) {
	for _, rec := range repo.progress.table {
		if rec.UserID == userID && rec.LessonID == lessonID {
			return rec, true
		}
	}
	return nil, false
}

func (repo *studentRepository) GetProgress(userID, lessonID string) (student.Progress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	if rec, ok := repo.getProgress(userID, lessonID); ok {
		return *rec, nil
	}
	return student.Progress{}, student.ErrProgressNotFound
}

func (repo *studentRepository) QueryProgressByUser(userID string) ([]student.Progress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	var records []student.Progress
	for _, rec := range repo.progress.table {
		if rec.UserID == userID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *studentRepository) UpsertProgress(change student.ProgressChange) (student.Progress, error) {
	repo.progress.Lock()
	defer repo.progress.Unlock()

	// at most one record per (user, lesson); merge into it when it exists
	if rec, ok := repo.getProgress(change.UserID, change.LessonID); ok {
		if change.Completed {
			rec.Completed = true
		}
		if change.CompletedAt.Valid {
			rec.CompletedAt = change.CompletedAt
		}
		if change.Rating.Valid {
			rec.Rating = change.Rating
		}
		return *rec, nil
	}

	rec := student.Progress{
		ID:          newPK(),
		UserID:      change.UserID,
		LessonID:    change.LessonID,
		Completed:   change.Completed,
		CompletedAt: change.CompletedAt,
		Rating:      change.Rating,
	}
	repo.progress.table[rec.ID] = &rec
	return rec, nil
}

// QueryLessonProgressByUser satisfies course.ProgressReader for the course
// assembly path.
func (repo *studentRepository) QueryLessonProgressByUser(userID string) ([]course.LessonProgress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	var records []course.LessonProgress
	for _, rec := range repo.progress.table {
		if rec.UserID == userID {
			records = append(records, course.LessonProgress{
				LessonID:  rec.LessonID,
				Completed: rec.Completed,
				Rating:    rec.Rating,
			})
		}
	}
	return records, nil
}

// Comments

func (repo *studentRepository) QueryCommentsByLesson(lessonID string) ([]student.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	var comments []student.Comment
	for _, cmt := range repo.comments.table {
		if cmt.LessonID == lessonID {
			comments = append(comments, *cmt)
		}
	}
	// newest first
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

func (repo *studentRepository) CreateComment(cmt student.Comment) (student.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	cmt.ID = newPK()
	if cmt.CreatedAt.IsZero() {
		cmt.CreatedAt = time.Now().UTC()
	}
	repo.comments.table[cmt.ID] = &cmt
	return cmt, nil
}

// Notes

func (repo *studentRepository) getNote(userID, lessonID string) (*student.Note, bool) {
	for _, nt := range repo.notes.table {
		if nt.UserID == userID && nt.LessonID == lessonID {
			return nt, true
		}
	}
	return nil, false
}

func (repo *studentRepository) GetNote(userID, lessonID string) (student.Note, error) {
	repo.notes.RLock()
	defer repo.notes.RUnlock()

	if nt, ok := repo.getNote(userID, lessonID); ok {
		return *nt, nil
	}
	return student.Note{}, student.ErrNoteNotFound
}

func (repo *studentRepository) UpsertNote(userID, lessonID, content string) (student.Note, error) {
	repo.notes.Lock()
	defer repo.notes.Unlock()

	if nt, ok := repo.getNote(userID, lessonID); ok {
		nt.Content = content
		nt.UpdatedAt = time.Now().UTC()
		return *nt, nil
	}

	nt := student.Note{
		ID:        newPK(),
		UserID:    userID,
		LessonID:  lessonID,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	repo.notes.table[nt.ID] = &nt
	return nt, nil
}

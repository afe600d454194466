package student

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/user"
)

var (
	// errors
	ErrProgressNotFound = errors.New("progress not found")
	ErrNoteNotFound     = errors.New("note not found")

	// name shown for comments whose author no longer exists
	deletedUserName = "Unknown"
)

type (
	Repository interface {
		GetProgress(userID, lessonID string) (Progress, error)
		QueryProgressByUser(userID string) ([]Progress, error)
		// UpsertProgress merges the change into the (userID, lessonID) record,
		// creating it first if needed. Null-invalid fields are not merged.
		UpsertProgress(change ProgressChange) (Progress, error)

		// QueryCommentsByLesson returns the lesson's comments newest first.
		QueryCommentsByLesson(lessonID string) ([]Comment, error)
		CreateComment(comment Comment) (Comment, error)

		GetNote(userID, lessonID string) (Note, error)
		UpsertNote(userID, lessonID, content string) (Note, error)
	}

	ServiceInterface interface {
		CompleteLesson(userID, lessonID string) (Progress, error)
		RateLesson(userID, lessonID string, rating int) (Progress, error)
		LessonProgress(userID, lessonID string) (Progress, error)

		QueryCommentsByLesson(lessonID string) ([]CommentWithAuthor, error)
		AddComment(userID string, nc NewComment) (Comment, error)

		NoteForLesson(userID, lessonID string) (Note, error)
		SaveNote(userID string, sn SaveNote) (Note, error)
	}

	Service struct {
		repo   Repository
		usrSvc user.ServiceInterface
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, usrSvc user.ServiceInterface) *Service {
	return &Service{repo: repo, usrSvc: usrSvc}
}

// CompleteLesson marks the lesson completed for the user. Calling it again
// simply refreshes CompletedAt; there is no uncomplete transition.
func (svc *Service) CompleteLesson(userID, lessonID string) (Progress, error) {
	return svc.repo.UpsertProgress(ProgressChange{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: null.TimeFrom(time.Now().UTC()),
	})
}

// RateLesson records the user's rating. Rating a lesson implies completing it:
// a rate call on an untouched lesson also marks it completed.
func (svc *Service) RateLesson(userID, lessonID string, rating int) (Progress, error) {
	return svc.repo.UpsertProgress(ProgressChange{
		UserID:    userID,
		LessonID:  lessonID,
		Completed: true,
		Rating:    null.IntFrom(rating),
	})
}

func (svc *Service) LessonProgress(userID, lessonID string) (Progress, error) {
	return svc.repo.GetProgress(userID, lessonID)
}

func (svc *Service) QueryCommentsByLesson(lessonID string) ([]CommentWithAuthor, error) {
	comments, err := svc.repo.QueryCommentsByLesson(lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}

	result := make([]CommentWithAuthor, 0, len(comments))
	for _, cmt := range comments {
		name := deletedUserName
		if usr, err := svc.usrSvc.GetByID(cmt.UserID); err == nil {
			name = usr.Name
		}
		result = append(result, CommentWithAuthor{Comment: cmt, UserName: name})
	}
	return result, nil
}

func (svc *Service) AddComment(userID string, nc NewComment) (Comment, error) {
	cmt := Comment{
		LessonID: nc.LessonID,
		UserID:   userID,
		Content:  nc.Content,
	}
	return svc.repo.CreateComment(cmt)
}

func (svc *Service) NoteForLesson(userID, lessonID string) (Note, error) {
	return svc.repo.GetNote(userID, lessonID)
}

func (svc *Service) SaveNote(userID string, sn SaveNote) (Note, error) {
	return svc.repo.UpsertNote(userID, sn.LessonID, sn.Content)
}

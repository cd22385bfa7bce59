package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/models"
)

// Poster hands a complete draft to whatever backs the marketplace.
type Poster interface {
	Post(ctx context.Context, draft models.JobDraft) error
}

// SimulatedPoster stands in for a backend: it waits Delay and succeeds.
// The wait ignores ctx and cannot be cancelled.
type SimulatedPoster struct {
	Delay time.Duration
}

func (p SimulatedPoster) Post(_ context.Context, _ models.JobDraft) error {
	time.Sleep(p.Delay)
	return nil
}

type SubmissionService struct {
	Sessions *SessionStore
	Toasts   *ToastService
	Poster   Poster
}

func NewSubmissionService(sessions *SessionStore, toasts *ToastService, poster Poster) *SubmissionService {
	return &SubmissionService{Sessions: sessions, Toasts: toasts, Poster: poster}
}

// Submit stores the submitted fields, then posts the draft. On success the
// draft is reset and a success toast set; on a posting failure the draft is
// kept, an error toast set and ErrPostFailed returned alongside it.
// A second submit while one is in flight fails with ErrSubmitInProgress.
func (s *SubmissionService) Submit(ctx context.Context, id uuid.UUID, req *dtos.JobPostRequest) (models.Toast, error) {
	fields := req.Fields()

	var (
		draft   models.JobDraft
		missing []string
	)
	_, err := s.Sessions.Update(id, func(sess *models.Session) error {
		if sess.Submitting {
			return models.ErrSubmitInProgress
		}
		fields.Apply(&sess.Draft)
		if missing = sess.Draft.MissingFields(); len(missing) > 0 {
			return nil
		}
		sess.Submitting = true
		draft = sess.Draft.Clone()
		return nil
	})
	if err != nil {
		return models.Toast{}, err
	}
	if len(missing) > 0 {
		return models.Toast{}, fmt.Errorf("%w: %s", models.ErrRequiredField, strings.Join(missing, ", "))
	}

	postErr := s.post(ctx, draft)

	var toast models.Toast
	if postErr != nil {
		log.Printf("❌ Posting project %q failed: %v", draft.Title, postErr)
		toast = s.Toasts.build(MsgPostError, models.ToastError)
	} else {
		log.Printf("✅ Project %q posted", draft.Title)
		toast = s.Toasts.build(MsgPostSuccess, models.ToastSuccess)
	}

	_, err = s.Sessions.Update(id, func(sess *models.Session) error {
		sess.Submitting = false
		sess.Toast = &toast
		if postErr == nil {
			sess.Draft = models.JobDraft{}
			sess.Preview = false
		}
		return nil
	})
	if err != nil {
		return toast, err
	}

	if postErr != nil {
		return toast, fmt.Errorf("%w: %v", models.ErrPostFailed, postErr)
	}
	return toast, nil
}

// post runs the Poster, turning a panic into an error so the submitting
// flag is always cleared.
func (s *SubmissionService) post(ctx context.Context, draft models.JobDraft) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poster panicked: %v", r)
		}
	}()
	return s.Poster.Post(ctx, draft)
}

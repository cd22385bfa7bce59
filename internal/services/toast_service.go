package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/models"
)

const (
	MsgPostSuccess = "Project posted successfully!"
	MsgPostError   = "Error posting project. Please try again."
)

type ToastService struct {
	Sessions *SessionStore
	TTL      time.Duration
	now      func() time.Time
}

func NewToastService(sessions *SessionStore, ttl time.Duration) *ToastService {
	return &ToastService{Sessions: sessions, TTL: ttl, now: time.Now}
}

// build stamps a toast that expires TTL from now. Callers store it on the
// session in the same update that settles the action it reports.
func (s *ToastService) build(message string, kind models.ToastKind) models.Toast {
	return models.Toast{Message: message, Kind: kind, ExpiresAt: s.now().Add(s.TTL)}
}

// Current returns the live toast, or nil once it has expired. Expired toasts
// are cleared from the session.
func (s *ToastService) Current(id uuid.UUID) (*models.Toast, error) {
	var current *models.Toast
	_, err := s.Sessions.Update(id, func(sess *models.Session) error {
		if sess.Toast.Active(s.now()) {
			current = sess.Toast
			return nil
		}
		sess.Toast = nil
		return nil
	})
	return current, err
}

// Remaining is how long a toast still has on screen at now.
func (s *ToastService) Remaining(t *models.Toast) time.Duration {
	if !t.Active(s.now()) {
		return 0
	}
	return t.ExpiresAt.Sub(s.now())
}

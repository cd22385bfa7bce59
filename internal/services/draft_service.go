package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/models"
)

// DraftService edits the job draft held in each session. Every change goes
// through SessionStore.Update, so stored drafts are replaced, never mutated.
type DraftService struct {
	Sessions           *SessionStore
	MaxAttachmentBytes int64
}

func NewDraftService(sessions *SessionStore, maxAttachmentBytes int64) *DraftService {
	return &DraftService{Sessions: sessions, MaxAttachmentBytes: maxAttachmentBytes}
}

func (s *DraftService) Draft(id uuid.UUID) (models.JobDraft, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return models.JobDraft{}, err
	}
	return sess.Draft, nil
}

func (s *DraftService) edit(id uuid.UUID, fn func(*models.JobDraft) error) (models.JobDraft, error) {
	sess, err := s.Sessions.Update(id, func(sess *models.Session) error {
		return fn(&sess.Draft)
	})
	return sess.Draft, err
}

// Prefill sets the service category handed over from the landing page.
// An empty value leaves the draft untouched.
func (s *DraftService) Prefill(id uuid.UUID, service string) (models.JobDraft, error) {
	if service == "" {
		return s.Draft(id)
	}
	return s.edit(id, func(d *models.JobDraft) error {
		d.Service = service
		return nil
	})
}

func (s *DraftService) UpdateFields(id uuid.UUID, req *dtos.JobFieldsRequest) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) error {
		req.Apply(d)
		return nil
	})
}

// AddSkill appends skill unless it is blank or already listed.
func (s *DraftService) AddSkill(id uuid.UUID, skill string) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) error {
		d.Skills = addUnique(d.Skills, skill)
		return nil
	})
}

func (s *DraftService) RemoveSkill(id uuid.UUID, index int) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) (err error) {
		d.Skills, err = removeAt(d.Skills, index)
		return err
	})
}

func (s *DraftService) AddVendor(id uuid.UUID, vendor string) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) error {
		d.PreferredVendors = addUnique(d.PreferredVendors, vendor)
		return nil
	})
}

func (s *DraftService) RemoveVendor(id uuid.UUID, index int) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) (err error) {
		d.PreferredVendors, err = removeAt(d.PreferredVendors, index)
		return err
	})
}

// AddAttachments reads the uploaded files into memory and appends them in
// upload order. Nothing is written to disk. If any file is over the limit,
// none of the batch is kept.
func (s *DraftService) AddAttachments(id uuid.UUID, files []*multipart.FileHeader) (models.JobDraft, error) {
	attachments := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		a, err := s.readAttachment(fh)
		if err != nil {
			return models.JobDraft{}, err
		}
		attachments = append(attachments, a)
	}

	return s.edit(id, func(d *models.JobDraft) error {
		d.Attachments = append(d.Attachments, attachments...)
		return nil
	})
}

func (s *DraftService) readAttachment(fh *multipart.FileHeader) (models.Attachment, error) {
	if fh.Size > s.MaxAttachmentBytes {
		return models.Attachment{}, fmt.Errorf("%s: %w", fh.Filename, models.ErrAttachmentTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, fmt.Errorf("opening %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.MaxAttachmentBytes+1))
	if err != nil {
		return models.Attachment{}, fmt.Errorf("reading %s: %w", fh.Filename, err)
	}
	if int64(len(data)) > s.MaxAttachmentBytes {
		return models.Attachment{}, fmt.Errorf("%s: %w", fh.Filename, models.ErrAttachmentTooLarge)
	}

	return models.Attachment{
		ID:          uuid.New(),
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (s *DraftService) RemoveAttachment(id uuid.UUID, index int) (models.JobDraft, error) {
	return s.edit(id, func(d *models.JobDraft) (err error) {
		d.Attachments, err = removeAt(d.Attachments, index)
		return err
	})
}

// TogglePreview flips between edit and read-only preview rendering.
func (s *DraftService) TogglePreview(id uuid.UUID) (bool, error) {
	sess, err := s.Sessions.Update(id, func(sess *models.Session) error {
		sess.Preview = !sess.Preview
		return nil
	})
	return sess.Preview, err
}

func addUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// removeAt drops list[i], keeping the order of the rest.
func removeAt[T any](list []T, i int) ([]T, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("remove %d of %d: %w", i, len(list), models.ErrIndexOutOfRange)
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

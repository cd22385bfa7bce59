package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/models"
	"github.com/justsurfingit/xconsult/internal/services"
)

// JobHandler serves the post-job form and all of its actions.
// Actions redirect back to GET /post-job once they succeed.
type JobHandler struct {
	Catalog     *services.CatalogService
	Drafts      *services.DraftService
	Submissions *services.SubmissionService
	Toasts      *services.ToastService
}

func NewJobHandler(catalog *services.CatalogService, drafts *services.DraftService, submissions *services.SubmissionService, toasts *services.ToastService) *JobHandler {
	return &JobHandler{
		Catalog:     catalog,
		Drafts:      drafts,
		Submissions: submissions,
		Toasts:      toasts,
	}
}

type serviceOption struct {
	Name     string
	Selected bool
}

// formView carries per-render extras for the post-job template.
type formView struct {
	Missing []string
	Error   string
}

func (h *JobHandler) render(c *gin.Context, status int, view formView) {
	id := sessionID(c)

	sess, err := h.Drafts.Sessions.Get(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load draft: "+err.Error())
		return
	}

	toast, err := h.Toasts.Current(id)
	if err != nil {
		log.Printf("⚠️  Loading toast failed: %v", err)
	}

	options := make([]serviceOption, 0, len(h.Catalog.All()))
	for _, name := range h.Catalog.All() {
		options = append(options, serviceOption{Name: name, Selected: name == sess.Draft.Service})
	}

	c.HTML(status, "post_job.html", gin.H{
		"Title":       "Post a Consulting Project - xConsult",
		"Draft":       sess.Draft,
		"Services":    options,
		"Preview":     sess.Preview,
		"Hidden":      hiddenFields(sess.Draft),
		"Submitting":  sess.Submitting,
		"Toast":       toast,
		"ToastMillis": h.Toasts.Remaining(toast).Milliseconds(),
		"Missing":     view.Missing,
		"Error":       view.Error,
	})
}

// hiddenFields keeps the scalar fields posted while the form is in preview mode.
func hiddenFields(d models.JobDraft) map[string]string {
	return map[string]string{
		"title":        d.Title,
		"service":      d.Service,
		"budget":       d.Budget,
		"duration":     d.Duration,
		"description":  d.Description,
		"requirements": d.Requirements,
		"location":     d.Location,
		"deadline":     d.Deadline,
	}
}

func (h *JobHandler) backToForm(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/post-job")
}

// LimitBody caps the request body at limit and parses multipart bodies
// with the same memory bound, so uploads are never spooled to disk.
func (h *JobHandler) LimitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		if c.ContentType() == binding.MIMEMultipartPOSTForm {
			if err := c.Request.ParseMultipartForm(limit); err != nil {
				h.fail(c, err)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// saveFields stores everything that came with an action, so nothing typed or
// picked is lost when a sub-action submits the form.
func (h *JobHandler) saveFields(c *gin.Context, id uuid.UUID) error {
	if err := h.saveScalars(c, id); err != nil {
		return err
	}
	return h.saveFiles(c, id)
}

// saveScalars stores the text fields. Requests that carry no form fields at
// all leave the draft alone.
func (h *JobHandler) saveScalars(c *gin.Context, id uuid.UUID) error {
	var req dtos.JobFieldsRequest
	if err := c.ShouldBind(&req); err != nil {
		return err
	}
	if _, ok := c.Request.PostForm["title"]; !ok {
		return nil
	}
	_, err := h.Drafts.UpdateFields(id, &req)
	return err
}

// saveFiles appends any files selected in the attachments input.
func (h *JobHandler) saveFiles(c *gin.Context, id uuid.UUID) error {
	form := c.Request.MultipartForm
	if form == nil || len(form.File["attachments"]) == 0 {
		return nil
	}
	_, err := h.Drafts.AddAttachments(id, form.File["attachments"])
	return err
}

// fail renders the form with err mapped to a status code.
func (h *JobHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig), errors.Is(err, multipart.ErrMessageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrIndexOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAttachmentTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrSubmitInProgress):
		status = http.StatusConflict
	case errors.Is(err, models.ErrRequiredField):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("❌ Post-job action failed: %v", err)
	}
	h.render(c, status, formView{Error: err.Error()})
}

// Show is GET /post-job[?service=X].
func (h *JobHandler) Show(c *gin.Context) {
	if _, err := h.Drafts.Prefill(sessionID(c), c.Query("service")); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, formView{})
}

// SaveFields is POST /post-job/fields.
func (h *JobHandler) SaveFields(c *gin.Context) {
	if err := h.saveFields(c, sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

func (h *JobHandler) AddSkill(c *gin.Context) {
	id := sessionID(c)
	var req dtos.SkillRequest
	if err := h.saveFields(c, id); err != nil {
		h.fail(c, err)
		return
	}
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.Drafts.AddSkill(id, req.Skill); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

func (h *JobHandler) RemoveSkill(c *gin.Context) {
	h.removeAt(c, h.Drafts.RemoveSkill)
}

func (h *JobHandler) AddVendor(c *gin.Context) {
	id := sessionID(c)
	var req dtos.VendorRequest
	if err := h.saveFields(c, id); err != nil {
		h.fail(c, err)
		return
	}
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.Drafts.AddVendor(id, req.Vendor); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

func (h *JobHandler) RemoveVendor(c *gin.Context) {
	h.removeAt(c, h.Drafts.RemoveVendor)
}

// UploadAttachments is POST /post-job/attachments (multipart, field "attachments").
// Other actions also pick up selected files; this one only requires multipart.
func (h *JobHandler) UploadAttachments(c *gin.Context) {
	if c.Request.MultipartForm == nil {
		h.render(c, http.StatusBadRequest, formView{Error: "Invalid upload: expected multipart/form-data"})
		return
	}
	if err := h.saveFields(c, sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

func (h *JobHandler) RemoveAttachment(c *gin.Context) {
	h.removeAt(c, h.Drafts.RemoveAttachment)
}

func (h *JobHandler) removeAt(c *gin.Context, remove func(uuid.UUID, int) (models.JobDraft, error)) {
	id := sessionID(c)
	var param dtos.IndexParam
	if err := c.ShouldBindUri(&param); err != nil {
		h.render(c, http.StatusBadRequest, formView{Error: "Invalid index"})
		return
	}
	if err := h.saveFields(c, id); err != nil {
		h.fail(c, err)
		return
	}
	if _, err := remove(id, param.Index); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

// TogglePreview is POST /post-job/preview.
func (h *JobHandler) TogglePreview(c *gin.Context) {
	id := sessionID(c)
	if err := h.saveFields(c, id); err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.Drafts.TogglePreview(id); err != nil {
		h.fail(c, err)
		return
	}
	h.backToForm(c)
}

// Submit is POST /post-job. It blocks for the simulated posting delay.
func (h *JobHandler) Submit(c *gin.Context) {
	id := sessionID(c)

	sess, err := h.Drafts.Sessions.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if sess.Submitting {
		h.fail(c, models.ErrSubmitInProgress)
		return
	}

	var req dtos.JobPostRequest
	if err := c.ShouldBind(&req); err != nil {
		if saveErr := h.saveFields(c, id); saveErr != nil {
			h.fail(c, saveErr)
			return
		}
		h.renderMissing(c, id)
		return
	}
	if err := h.saveFiles(c, id); err != nil {
		h.fail(c, err)
		return
	}

	_, err = h.Submissions.Submit(c.Request.Context(), id, &req)
	switch {
	case err == nil, errors.Is(err, models.ErrPostFailed):
		// Either way the outcome is in the session toast.
		h.backToForm(c)
	case errors.Is(err, models.ErrRequiredField):
		h.renderMissing(c, id)
	default:
		h.fail(c, err)
	}
}

func (h *JobHandler) renderMissing(c *gin.Context, id uuid.UUID) {
	draft, err := h.Drafts.Draft(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusBadRequest, formView{Missing: draft.MissingFields()})
}

// SaveDraft is POST /post-job/draft. Saving drafts is not available yet.
func (h *JobHandler) SaveDraft(c *gin.Context) {
	c.String(http.StatusNotImplemented, "Save as draft is coming soon")
}

package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/models"
)

func newTestDrafts(t *testing.T) (*DraftService, uuid.UUID) {
	t.Helper()
	store, _ := newTestStore(time.Hour)
	return NewDraftService(store, 1024), store.Open("").ID
}

// fileHeaders builds real multipart headers for name -> content pairs, in order.
func fileHeaders(t *testing.T, files ...[2]string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("attachments", f[0])
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write([]byte(f[1]))
	}
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["attachments"]
}

func attachmentNames(d models.JobDraft) []string {
	names := make([]string, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		names = append(names, a.Name)
	}
	return names
}

func TestDraftPrefill(t *testing.T) {
	drafts, id := newTestDrafts(t)

	d, err := drafts.Prefill(id, "Risk & Compliance")
	if err != nil {
		t.Fatalf("Prefill returned error: %v", err)
	}
	if d.Service != "Risk & Compliance" {
		t.Fatalf("expected service pre-filled, got %q", d.Service)
	}

	d, _ = drafts.Prefill(id, "")
	if d.Service != "Risk & Compliance" {
		t.Fatalf("empty parameter must not clear the service, got %q", d.Service)
	}
}

func TestDraftUpdateFields(t *testing.T) {
	drafts, id := newTestDrafts(t)
	drafts.AddSkill(id, "Excel")

	d, err := drafts.UpdateFields(id, &dtos.JobFieldsRequest{Title: "ERP rollout", Budget: "100,000 - 200,000"})
	if err != nil {
		t.Fatalf("UpdateFields returned error: %v", err)
	}
	if d.Title != "ERP rollout" || d.Budget != "100,000 - 200,000" {
		t.Errorf("fields not applied: %#v", d)
	}
	if !reflect.DeepEqual(d.Skills, []string{"Excel"}) {
		t.Errorf("field update must keep list state, got %v", d.Skills)
	}
}

func TestDraftSkills(t *testing.T) {
	drafts, id := newTestDrafts(t)

	drafts.AddSkill(id, "Excel")
	drafts.AddSkill(id, "Excel")
	drafts.AddSkill(id, "")
	drafts.AddSkill(id, "   ")
	d, _ := drafts.AddSkill(id, "SQL")

	if !reflect.DeepEqual(d.Skills, []string{"Excel", "SQL"}) {
		t.Fatalf("expected [Excel SQL], got %v", d.Skills)
	}

	d, err := drafts.RemoveSkill(id, 0)
	if err != nil {
		t.Fatalf("RemoveSkill returned error: %v", err)
	}
	if !reflect.DeepEqual(d.Skills, []string{"SQL"}) {
		t.Fatalf("expected [SQL], got %v", d.Skills)
	}

	if _, err := drafts.RemoveSkill(id, 5); !errors.Is(err, models.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDraftVendors(t *testing.T) {
	drafts, id := newTestDrafts(t)

	drafts.AddVendor(id, "Acme Advisory")
	drafts.AddVendor(id, "Acme Advisory")
	d, _ := drafts.AddVendor(id, "Globex Partners")
	if !reflect.DeepEqual(d.PreferredVendors, []string{"Acme Advisory", "Globex Partners"}) {
		t.Fatalf("unexpected vendors: %v", d.PreferredVendors)
	}

	d, _ = drafts.RemoveVendor(id, 1)
	if !reflect.DeepEqual(d.PreferredVendors, []string{"Acme Advisory"}) {
		t.Fatalf("unexpected vendors after removal: %v", d.PreferredVendors)
	}
}

func TestDraftAttachments(t *testing.T) {
	drafts, id := newTestDrafts(t)

	d, err := drafts.AddAttachments(id, fileHeaders(t, [2]string{"a.pdf", "aaa"}, [2]string{"b.pdf", "bb"}))
	if err != nil {
		t.Fatalf("AddAttachments returned error: %v", err)
	}
	d, _ = drafts.AddAttachments(id, fileHeaders(t, [2]string{"c.pdf", "c"}, [2]string{"d.pdf", "dddd"}))

	if got := attachmentNames(d); !reflect.DeepEqual(got, []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if d.Attachments[0].Size != 3 || string(d.Attachments[0].Data) != "aaa" {
		t.Errorf("attachment content not kept in memory: %#v", d.Attachments[0])
	}

	d, err = drafts.RemoveAttachment(id, 1)
	if err != nil {
		t.Fatalf("RemoveAttachment returned error: %v", err)
	}
	if got := attachmentNames(d); !reflect.DeepEqual(got, []string{"a.pdf", "c.pdf", "d.pdf"}) {
		t.Fatalf("expected b.pdf removed with order kept, got %v", got)
	}

	if _, err := drafts.RemoveAttachment(id, -1); !errors.Is(err, models.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDraftAttachmentTooLarge(t *testing.T) {
	drafts, id := newTestDrafts(t)

	big := string(bytes.Repeat([]byte("x"), 2048))
	_, err := drafts.AddAttachments(id, fileHeaders(t, [2]string{"ok.txt", "ok"}, [2]string{"big.bin", big}))
	if !errors.Is(err, models.ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}

	d, _ := drafts.Draft(id)
	if len(d.Attachments) != 0 {
		t.Fatalf("rejected batch must not be partially kept: %v", attachmentNames(d))
	}
}

func TestDraftPreviewToggle(t *testing.T) {
	drafts, id := newTestDrafts(t)

	on, _ := drafts.TogglePreview(id)
	off, _ := drafts.TogglePreview(id)
	if !on || off {
		t.Fatalf("expected toggle true then false, got %v %v", on, off)
	}
}

func TestRemoveAtDoesNotAliasInput(t *testing.T) {
	in := []string{"a", "b", "c"}
	out, err := removeAt(in, 0)
	if err != nil {
		t.Fatalf("removeAt returned error: %v", err)
	}
	if !reflect.DeepEqual(in, []string{"a", "b", "c"}) {
		t.Fatalf("input was modified: %v", in)
	}
	if !reflect.DeepEqual(out, []string{"b", "c"}) {
		t.Fatalf("unexpected output: %v", out)
	}
}

package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

type fakeUploader struct {
	folder, publicID string
	body             []byte
}

func (f *fakeUploader) UploadFile(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	f.folder, f.publicID = folder, publicID
	f.body, _ = io.ReadAll(file)
	return "https://cdn.example/" + publicID + ".png", nil
}

func fileHeader(t *testing.T, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="pic.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", "/api/therapist/picture", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestUploadProfilePicture(t *testing.T) {
	up := &fakeUploader{}
	url, err := UploadProfilePicture(context.Background(), up, fileHeader(t, "image/png", []byte("png-bytes")), "t1")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example/therapist_t1.png" || up.folder != ProfilePictureFolder || string(up.body) != "png-bytes" {
		t.Errorf("unexpected upload url=%q folder=%q body=%q", url, up.folder, up.body)
	}

	_, err = UploadProfilePicture(context.Background(), up, fileHeader(t, "application/pdf", []byte("%PDF")), "t1")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("non-image should fail validation, got %v", err)
	}
}

func TestSetProfilePicture_UpdatesProjection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, svc := f.registerTherapist(t, "pic@example.com")
	f.lifecycle.Approve(ctx, svc.ID)

	if _, err := f.lifecycle.SetProfilePicture(ctx, user.ID, "https://cdn.example/new.png"); err != nil {
		t.Fatalf("set picture: %v", err)
	}
	b, err := f.lifecycle.FindBookable(ctx, user.ID)
	if err != nil || b.Avatar != "https://cdn.example/new.png" {
		t.Errorf("bookable avatar not refreshed: %+v err=%v", b, err)
	}
}

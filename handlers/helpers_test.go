package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"consultly/services/calendar"
	"consultly/services/payment"
	"consultly/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCalendar is an in-memory calendar.Service that records every call.
type fakeCalendar struct {
	events        []calendar.Event
	err           error
	createdEvents []calendar.Event
	drafts        []calendar.Message
	sentDrafts    []string
	queries       [][2]string
}

func (f *fakeCalendar) ListEvents(ctx context.Context) ([]calendar.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeCalendar) EventsBetween(ctx context.Context, start, end string) ([]calendar.Event, error) {
	f.queries = append(f.queries, [2]string{start, end})
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, ev calendar.Event) (*calendar.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createdEvents = append(f.createdEvents, ev)
	return &ev, nil
}

func (f *fakeCalendar) CreateDraft(ctx context.Context, msg calendar.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.drafts = append(f.drafts, msg)
	return "draft-1", nil
}

func (f *fakeCalendar) SendDraft(ctx context.Context, draftID string) error {
	if f.err != nil {
		return f.err
	}
	f.sentDrafts = append(f.sentDrafts, draftID)
	return nil
}

// fakeStorage records upload order and can simulate an unconfigured or
// failing backend.
type fakeStorage struct {
	configured bool
	err        error
	uploaded   []string
}

func (f *fakeStorage) Configured() bool { return f.configured }

func (f *fakeStorage) UploadPhoto(ctx context.Context, filename string, data io.Reader) (string, error) {
	if !f.configured {
		return "", storage.ErrNotConfigured
	}
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn.example.com/" + filename, nil
}

// fakePayment records the checkout details it was asked to sell.
type fakePayment struct {
	err      error
	sessions []payment.CheckoutDetails
}

func (f *fakePayment) CreateCheckoutSession(ctx context.Context, d payment.CheckoutDetails) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sessions = append(f.sessions, d)
	return "cs_test_123", nil
}

// perform runs one request through a fresh router with the given routes.
func perform(register func(r *gin.Engine), req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// multipartBody builds a multipart form with one "photos" part per filename.
func multipartBody(filenames ...string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range filenames {
		part, _ := w.CreateFormFile("photos", name)
		part.Write([]byte("fake image bytes"))
	}
	w.Close()
	return body, w.FormDataContentType()
}

func testLogger() *zap.Logger { return zap.NewNop() }

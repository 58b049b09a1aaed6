package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladr7/shift-scheduler-api/pkg/config"
	"github.com/eladr7/shift-scheduler-api/pkg/storage"
)

type fakeRecognizer struct {
	text  string
	err   error
	calls int
	last  struct {
		path     string
		language string
	}
}

func (f *fakeRecognizer) Recognize(_ context.Context, imagePath, language string) (string, error) {
	f.calls++
	f.last.path = imagePath
	f.last.language = language
	return f.text, f.err
}

func newTestOCRService(t *testing.T, recognizer Recognizer) (*OCRService, *storage.UploadStore) {
	t.Helper()
	store, err := storage.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	svc := NewOCRService(recognizer, store, nil, config.OCRConfig{Concurrency: 1}, nil)
	return svc, store
}

func TestOCRServiceRecognize(t *testing.T) {
	recognizer := &fakeRecognizer{text: "3/8 4/8 5/8\nDana בוקר ערב"}
	svc, store := newTestOCRService(t, recognizer)

	_, err := store.SaveStream("schedule.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	text, cacheHit, err := svc.Recognize(context.Background(), "schedule.png", LanguageBoth)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, recognizer.text, text)
	assert.Equal(t, 1, recognizer.calls)
	assert.Equal(t, store.Path("schedule.png"), recognizer.last.path)
	assert.Equal(t, LanguageBoth, recognizer.last.language)
}

func TestOCRServiceMissingUpload(t *testing.T) {
	svc, _ := newTestOCRService(t, &fakeRecognizer{})

	_, _, err := svc.Recognize(context.Background(), "nope.png", LanguageHebrew)
	assert.Error(t, err)
}

func TestOCRServiceRecognizerFailure(t *testing.T) {
	recognizer := &fakeRecognizer{err: assert.AnError}
	svc, store := newTestOCRService(t, recognizer)

	_, err := store.SaveStream("schedule.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	_, _, err = svc.Recognize(context.Background(), "schedule.png", LanguageEnglish)
	assert.Error(t, err)
}

func TestProfileForLanguages(t *testing.T) {
	heb := profileFor(LanguageHebrew)
	assert.Equal(t, "heb", heb.engineLang)
	assert.Contains(t, heb.whitelist, "א")
	assert.NotContains(t, heb.whitelist, "A")

	eng := profileFor(LanguageEnglish)
	assert.Equal(t, "eng", eng.engineLang)
	assert.Contains(t, eng.whitelist, "A")
	assert.NotContains(t, eng.whitelist, "א")

	both := profileFor("anything else")
	assert.Equal(t, "heb+eng", both.engineLang)
	assert.Contains(t, both.whitelist, "א")
	assert.Contains(t, both.whitelist, "A")
}

package app

import (
	"context"
	"errors"
	"sync"

	"github.com/direwen/dilemma-web/internal/services/web/platform/sessioncookie"
	"github.com/direwen/dilemma-web/internal/services/web/storage"
)

type fakeProgress struct {
	mu   sync.Mutex
	rows map[string]storage.Progress
	err  error
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{rows: make(map[string]storage.Progress)}
}

func (f *fakeProgress) seed(token string, progress storage.Progress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress.SessionKey = sessioncookie.SessionKey(token)
	f.rows[progress.SessionKey] = progress
}

func (f *fakeProgress) GetProgress(_ context.Context, sessionKey string) (storage.Progress, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return storage.Progress{}, false, f.err
	}
	progress, ok := f.rows[sessionKey]
	return progress, ok, nil
}

func (f *fakeProgress) PutProgress(_ context.Context, progress storage.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[progress.SessionKey] = progress
	return nil
}

func (f *fakeProgress) AppendAnswer(_ context.Context, sessionKey string, answer storage.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress, ok := f.rows[sessionKey]
	if !ok {
		return errors.New("progress not found")
	}
	progress.Answers = append(progress.Answers, answer)
	f.rows[sessionKey] = progress
	return nil
}

func (f *fakeProgress) DeleteProgress(_ context.Context, sessionKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, sessionKey)
	return nil
}

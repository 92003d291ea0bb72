package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/buildprofile/buildprofile/internal/application/ports"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

// CachingLoader loads a project's document at most once and shares it with
// every later caller. Concurrent first loads share one in-flight read.
// Failed loads are not cached, so a later call retries.
type CachingLoader struct {
	next       ports.DocumentLoader
	projectDir string

	group singleflight.Group
	mu    sync.RWMutex
	doc   *entities.ConfigDocument
}

// NewCachingLoader wraps next for a single project directory.
func NewCachingLoader(next ports.DocumentLoader, projectDir string) *CachingLoader {
	return &CachingLoader{
		next:       next,
		projectDir: projectDir,
	}
}

// Document returns the cached document, loading it on first use.
// Cancelling ctx releases the caller but not the shared load.
func (l *CachingLoader) Document(ctx context.Context) (*entities.ConfigDocument, error) {
	if doc := l.cached(); doc != nil {
		return doc, nil
	}

	ch := l.group.DoChan(l.projectDir, func() (any, error) {
		if doc := l.cached(); doc != nil {
			return doc, nil
		}

		doc, err := l.next.Load(context.WithoutCancel(ctx), l.projectDir)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.doc = doc
		l.mu.Unlock()
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entities.ConfigDocument), nil
	}
}

func (l *CachingLoader) cached() *entities.ConfigDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc
}

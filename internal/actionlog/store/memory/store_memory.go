// Package memory provides the in-memory ActionLogStore used by unit tests
// and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/L968/trecco-api/internal/actionlog/models"
	"github.com/L968/trecco-api/internal/actionlog/store"
	id "github.com/L968/trecco-api/pkg/domain"
)

type InMemory struct {
	mu      sync.RWMutex
	entries map[id.BoardID][]*models.BoardActionLog
}

// NewInMemory creates an empty in-memory action log store.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[id.BoardID][]*models.BoardActionLog)}
}

func (s *InMemory) Insert(ctx context.Context, entry *models.BoardActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.entries[entry.BoardID] = append(s.entries[entry.BoardID], &cp)
	return nil
}

func (s *InMemory) GetByBoard(ctx context.Context, boardID id.BoardID, q store.Query) ([]*models.BoardActionLog, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.BoardActionLog
	for _, entry := range s.entries[boardID] {
		if q.Search != "" && !strings.Contains(strings.ToLower(entry.Details), strings.ToLower(q.Search)) {
			continue
		}
		cp := *entry
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	offset := (q.Page - 1) * q.PageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + q.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

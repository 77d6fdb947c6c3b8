package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
)

type MemoryChatRepositoryImpl struct {
	store *MemoryStore
}

func CreateMemoryChatRepository(store *MemoryStore) ChatRepository {
	return &MemoryChatRepositoryImpl{store: store}
}

func (r *MemoryChatRepositoryImpl) GetTranscript(ctx context.Context, sessionID string) (data domain.Transcript, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	transcript, ok := r.store.transcripts[sessionID]
	if !ok {
		return data, errs.ErrNotFound
	}

	transcript.Messages = append([]domain.ChatMessage{}, transcript.Messages...)
	return transcript, nil
}

func (r *MemoryChatRepositoryImpl) AppendMessages(ctx context.Context, sessionID string, userID string, messages ...domain.ChatMessage) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := utils.NowUTC()
	transcript, ok := r.store.transcripts[sessionID]
	if !ok {
		transcript = domain.Transcript{SessionID: sessionID, UserID: userID, CreatedAt: now}
	}

	transcript.Messages = append(append([]domain.ChatMessage{}, transcript.Messages...), messages...)
	transcript.UpdatedAt = now
	r.store.transcripts[sessionID] = transcript

	return nil
}

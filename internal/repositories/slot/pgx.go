package slot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/repositories"
	"github.com/socialspark/socialspark-bot/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("SlotRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Save(ctx context.Context, chatID int64, slot string, draft domain.ContentDraft) (string, error) {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return "", ErrCannotSave
	}

	query, args, err := repositories.SqBuilder.
		Insert("content_slots").
		Columns("chat_id", "slot", "content", "updated_at").
		Values(chatID, slot, raw, time.Now()).
		Suffix("ON CONFLICT (chat_id, slot) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return "", repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return "", err
	}
	return draft.ID, nil
}

func (p *Pgx) Get(ctx context.Context, chatID int64, slot string) (*domain.ContentDraft, error) {
	query, args, err := repositories.SqBuilder.
		Select("content").
		From("content_slots").
		Where(sq.Eq{"chat_id": chatID, "slot": slot}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var raw []byte
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var draft domain.ContentDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		p.logger.Error("Failed to decode slot content, treating as empty", "chat_id", chatID, "slot", slot, "error", err)
		return nil, ErrNotFound
	}
	if draft.ID == "" {
		return nil, ErrNotFound
	}
	return &draft, nil
}

func (p *Pgx) Clear(ctx context.Context, chatID int64, slot string) error {
	query, args, err := repositories.SqBuilder.
		Delete("content_slots").
		Where(sq.Eq{"chat_id": chatID, "slot": slot}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// CleanupOldSlots deletes slot rows not touched within olderThan.
func (p *Pgx) CleanupOldSlots(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete("content_slots").
		Where(sq.Lt{"updated_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

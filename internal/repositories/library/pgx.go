package library

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
		logger: logger.WithComponent("LibraryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Save(ctx context.Context, chatID int64, draft domain.ContentDraft) (string, error) {
	draft.ID = uuid.NewString()
	draft.CreatedAt = time.Now()

	item := domain.LibraryItem{
		ContentDraft: draft,
		Status:       domain.StatusDraft,
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return "", ErrCannotSave
	}

	query, args, err := repositories.SqBuilder.
		Insert("library_items").
		Columns("id", "chat_id", "item", "created_at").
		Values(draft.ID, chatID, raw, draft.CreatedAt).
		ToSql()
	if err != nil {
		return "", repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return "", err
	}
	return draft.ID, nil
}

func (p *Pgx) GetAll(ctx context.Context, chatID int64) ([]domain.LibraryItem, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "item").
		From("library_items").
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LibraryItem
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}

		var item domain.LibraryItem
		if err := json.Unmarshal(raw, &item); err != nil {
			// Skip unreadable rows rather than failing the whole listing.
			p.logger.Error("Failed to decode library item, skipping", "id", id, "error", err)
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Pgx) GetByID(ctx context.Context, chatID int64, id string) (*domain.LibraryItem, error) {
	query, args, err := repositories.SqBuilder.
		Select("item").
		From("library_items").
		Where(sq.Eq{"chat_id": chatID, "id": id}).
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

	var item domain.LibraryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		p.logger.Error("Failed to decode library item", "id", id, "error", err)
		return nil, ErrNotFound
	}
	return &item, nil
}

func (p *Pgx) Update(ctx context.Context, chatID int64, item domain.LibraryItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return ErrCannotSave
	}

	query, args, err := repositories.SqBuilder.
		Update("library_items").
		Set("item", raw).
		Where(sq.Eq{"chat_id": chatID, "id": item.ID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Pgx) SetStatus(ctx context.Context, chatID int64, id string, status string) error {
	item, err := p.GetByID(ctx, chatID, id)
	if err != nil {
		return err
	}
	item.Status = status
	return p.Update(ctx, chatID, *item)
}

func (p *Pgx) Remove(ctx context.Context, chatID int64, id string) error {
	query, args, err := repositories.SqBuilder.
		Delete("library_items").
		Where(sq.Eq{"chat_id": chatID, "id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

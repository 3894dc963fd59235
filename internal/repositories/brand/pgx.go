package brand

import (
	"context"
	"encoding/json"
	"errors"
	"time"

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
		logger: logger.WithComponent("BrandRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, chatID int64) (*domain.BrandProfile, error) {
	query, args, err := repositories.SqBuilder.
		Select("profile").
		From("brand_profiles").
		Where(sq.Eq{"chat_id": chatID}).
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

	var profile domain.BrandProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// Corrupt rows are treated as absence, not a hard failure.
		p.logger.Error("Failed to decode stored brand profile", "chat_id", chatID, "error", err)
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (p *Pgx) Save(ctx context.Context, chatID int64, profile domain.BrandProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return ErrCannotSave
	}

	query, args, err := repositories.SqBuilder.
		Insert("brand_profiles").
		Columns("chat_id", "profile", "updated_at").
		Values(chatID, raw, time.Now()).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

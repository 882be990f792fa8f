package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/chorewheel/internal/domain"
)

// RotationRepo — репозиторий состояния ротации.
//
// Запись хранится как JSONB-документ по ключу assignment_id,
// поэтому схема полей проверяется при чтении, а не базой.
type RotationRepo struct {
	pool *pgxpool.Pool
}

// NewRotationRepo создаёт новый RotationRepo.
func NewRotationRepo(pool *pgxpool.Pool) *RotationRepo {
	return &RotationRepo{pool: pool}
}

// Get возвращает состояние ротации по ключу.
//
// ErrNotFound — записи нет; *domain.SchemaError — запись есть, но некорректна.
func (r *RotationRepo) Get(ctx context.Context, key string) (*domain.RotationState, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT item FROM rotation_state WHERE assignment_id = $1
	`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rotation state: %w", err)
	}

	return domain.DecodeRotationState(raw)
}

// UpdateTurn записывает новое значение current_turn.
// Остальные поля документа не затрагиваются.
func (r *RotationRepo) UpdateTurn(ctx context.Context, key string, turn int) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE rotation_state
		SET item = jsonb_set(item, '{current_turn}', to_jsonb($2::int)),
		    updated_at = NOW()
		WHERE assignment_id = $1
	`, key, turn)
	if err != nil {
		return fmt.Errorf("update current_turn: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Put создаёт или полностью перезаписывает запись.
// Используется только при ручной подготовке состояния.
func (r *RotationRepo) Put(ctx context.Context, key string, state *domain.RotationState) error {
	if err := state.ValidateStored(); err != nil {
		return err
	}

	item, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal rotation state: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO rotation_state (assignment_id, item)
		VALUES ($1, $2)
		ON CONFLICT (assignment_id)
		DO UPDATE SET item = EXCLUDED.item, updated_at = NOW()
	`, key, item)
	if err != nil {
		return fmt.Errorf("put rotation state: %w", err)
	}
	return nil
}

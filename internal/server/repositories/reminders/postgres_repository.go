package reminders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lembretes/internal/dbx"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {

	query :=
		`INSERT INTO lembrete (usuario_id, titulo, descricao, data_lembrete, status, tipo)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, criado_em
		 `

	err := r.db.QueryRowContext(ctx, query,
		rem.OwnerID, rem.Title, rem.Description, rem.ScheduledAt, rem.Status, rem.Type).
		Scan(&rem.ID, &rem.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", pgerr.Classify(err))
	}

	return rem, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM lembrete WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", pgerr.Classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Reminder, error) {
	query :=
		`SELECT id, usuario_id, titulo, COALESCE(descricao, ''), data_lembrete,
		        COALESCE(status, ''), COALESCE(tipo, ''), criado_em
		 FROM lembrete
		 WHERE usuario_id = $1
		 ORDER BY data_lembrete, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", pgerr.Classify(err))
	}
	defer rows.Close()

	result := make([]*models.Reminder, 0)
	for rows.Next() {
		var item models.Reminder
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.ScheduledAt,
			&item.Status, &item.Type, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Classify(err)
	}
	return result, nil
}

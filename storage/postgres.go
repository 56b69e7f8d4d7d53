package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Carincrack/explosive-word-game/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pg *PostgresRepo) Close() {
	pg.pool.Close()
}

func (pg *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user := domain.User{Username: username}

	row := pg.pool.QueryRow(ctx, "SELECT id, password_hash FROM users WHERE username = $1", username)

	err := row.Scan(&user.Id, &user.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return user, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (pg *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	user := domain.User{Id: id}

	row := pg.pool.QueryRow(ctx, "SELECT username, password_hash FROM users WHERE id = $1", id)

	err := row.Scan(&user.Username, &user.PasswordHash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (pg *PostgresRepo) CreateUser(ctx context.Context, username string, passwordHash string) (string, error) {
	row := pg.pool.QueryRow(ctx, "INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id", username, passwordHash)

	var id string
	err := row.Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is the PostgreSQL error code for unique_violation
			if pgErr.Code == "23505" {
				return "", domain.ErrDuplicateUsername
			}
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return id, nil
}

// RecordWin implements the game.WinRecorder interface. Guests are counted
// too, keyed by their ephemeral session id.
func (pg *PostgresRepo) RecordWin(ctx context.Context, playerID string) error {
	query := `INSERT INTO rankings(player_id, wins, last_win_at)
		VALUES($1, 1, now())
		ON CONFLICT (player_id)
		DO UPDATE SET wins = rankings.wins + 1, last_win_at = now()`

	_, err := pg.pool.Exec(ctx, query, playerID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	return nil
}

func (pg *PostgresRepo) TopRankings(ctx context.Context, limit int) ([]domain.RankingEntry, error) {
	query := `SELECT r.player_id, COALESCE(u.username, ''), r.wins, r.last_win_at
		FROM rankings r
		LEFT JOIN users u ON u.id::text = r.player_id
		ORDER BY r.wins DESC, r.last_win_at ASC
		LIMIT $1`

	rows, err := pg.pool.Query(ctx, query, limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	entries := make([]domain.RankingEntry, 0, limit)
	for rows.Next() {
		var entry domain.RankingEntry
		if err := rows.Scan(&entry.PlayerId, &entry.Username, &entry.Wins, &entry.LastWinAt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return entries, nil
}

// Package database provides PostgreSQL persistence for designs.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/config"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// Repository defines the interface for design data operations.
type Repository interface {
	// Create stores a new design.
	Create(ctx context.Context, design *models.Design) error

	// GetByID retrieves a design by its ID. A missing design is nil, nil.
	GetByID(ctx context.Context, id string) (*models.Design, error)

	// GetAll retrieves all designs, oldest first.
	GetAll(ctx context.Context) ([]models.Design, error)

	// Update replaces a stored design.
	Update(ctx context.Context, design *models.Design) error

	// Delete removes a design by its ID.
	Delete(ctx context.Context, id string) error

	// Close closes the database connection.
	Close()
}

// PostgresRepository implements Repository using PostgreSQL. Each design
// is kept as a JSONB document next to the columns used for listing.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(cfg *config.Config, logger *zap.Logger) (Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PostgresRepository{
		pool:   pool,
		logger: logger,
	}

	if err := repo.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to PostgreSQL database")
	return repo, nil
}

// migrate creates the necessary database tables if they don't exist.
func (r *PostgresRepository) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS designs (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(256) NOT NULL,
			system VARCHAR(32) NOT NULL,
			width DOUBLE PRECISION NOT NULL,
			height DOUBLE PRECISION NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			document JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_designs_created_at ON designs(created_at);
	`

	_, err := r.pool.Exec(ctx, query)
	return err
}

// Create stores a new design.
func (r *PostgresRepository) Create(ctx context.Context, design *models.Design) error {
	doc, err := json.Marshal(design)
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}

	query := `
		INSERT INTO designs (id, name, system, width, height, rate, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.pool.Exec(ctx, query,
		design.ID,
		design.Name,
		string(design.Parameters.System),
		design.Parameters.Width,
		design.Parameters.Height,
		design.EffectiveRate(),
		doc,
		design.CreatedAt,
		design.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create design", zap.Error(err))
		return fmt.Errorf("failed to create design: %w", err)
	}

	r.logger.Info("Created design", zap.String("id", design.ID))
	return nil
}

// GetByID retrieves a design by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Design, error) {
	query := `SELECT document FROM designs WHERE id = $1`

	var doc []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get design", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	var design models.Design
	if err := json.Unmarshal(doc, &design); err != nil {
		r.logger.Error("Failed to decode design", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to decode design %s: %w", id, err)
	}
	return &design, nil
}

// GetAll retrieves all designs.
func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Design, error) {
	query := `SELECT document FROM designs ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get designs", zap.Error(err))
		return nil, fmt.Errorf("failed to get designs: %w", err)
	}
	defer rows.Close()

	designs := []models.Design{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			r.logger.Error("Failed to scan design row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		var design models.Design
		if err := json.Unmarshal(doc, &design); err != nil {
			r.logger.Error("Failed to decode design row", zap.Error(err))
			return nil, fmt.Errorf("failed to decode design: %w", err)
		}
		designs = append(designs, design)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read designs: %w", err)
	}

	return designs, nil
}

// Update replaces a stored design. A missing design yields models.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, design *models.Design) error {
	doc, err := json.Marshal(design)
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}

	query := `
		UPDATE designs
		SET name = $2, system = $3, width = $4, height = $5, rate = $6, document = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		design.ID,
		design.Name,
		string(design.Parameters.System),
		design.Parameters.Width,
		design.Parameters.Height,
		design.EffectiveRate(),
		doc,
		design.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update design", zap.String("id", design.ID), zap.Error(err))
		return fmt.Errorf("failed to update design: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("design %s: %w", design.ID, models.ErrNotFound)
	}

	r.logger.Info("Updated design", zap.String("id", design.ID))
	return nil
}

// Delete removes a design by its ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM designs WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete design", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete design: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("design %s: %w", id, models.ErrNotFound)
	}

	r.logger.Info("Deleted design", zap.String("id", id))
	return nil
}

// Close closes the database connection pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
	r.logger.Info("Closed database connection")
}

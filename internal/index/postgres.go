package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/olajcodes/profile-agent/internal/models"
)

// PostgresStore is the pgvector-backed index for deployments that already
// run Postgres. The same rebuild-replaces-wholesale contract holds: the
// chunk table is dropped and recreated inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("unable to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (pg *PostgresStore) Rebuild(ctx context.Context, embedModel string, chunks []models.IndexedChunk) error {
	if len(chunks) == 0 {
		return errors.New("refusing to build an empty index")
	}
	dim := len(chunks[0].Embedding)
	if dim == 0 {
		return errors.New("chunks carry no embeddings")
	}

	tx, err := pg.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS profile_chunks`,
		`DROP TABLE IF EXISTS profile_index_meta`,
		fmt.Sprintf(`CREATE TABLE profile_chunks (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)`, dim),
		`CREATE TABLE profile_index_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("recreate index tables: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO profile_chunks (id, source, content, embedding) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Source, c.Content, pgvector.NewVector(c.Embedding)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO profile_index_meta (key, value) VALUES ('embedding_model', $1)`, embedModel); err != nil {
		return err
	}

	return tx.Commit()
}

func (pg *PostgresStore) Search(ctx context.Context, query []float32, k int) ([]models.SearchResult, error) {
	if len(query) == 0 {
		return nil, errors.New("query vector cannot be empty")
	}
	if k <= 0 {
		return nil, errors.New("limit must be greater than zero")
	}

	vec := pgvector.NewVector(query)

	// <=> is cosine distance; similarity = 1 - distance.
	rows, err := pg.db.QueryContext(ctx, `
		SELECT id, source, content, 1 - (embedding <=> $1) AS score
		FROM profile_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`, vec, k)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Chunk.ID, &r.Chunk.Source, &r.Chunk.Content, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating through chunks: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrIndexNotFound
	}
	return results, nil
}

func (pg *PostgresStore) Close() error {
	return pg.db.Close()
}

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatch/internal/types"
)

// insertBatchSize bounds the number of rows queued in one pgx.Batch.
const insertBatchSize = 500

// ListJobPostings returns every stored posting in insertion order.
func (db *DB) ListJobPostings(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT role, skills, salary_lpa, experience_required
		 FROM job_postings ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []types.JobPosting
	for rows.Next() {
		var p types.JobPosting
		if err := rows.Scan(&p.Role, &p.RequiredSkills, &p.Salary, &p.ExperienceRequired); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

// CountJobPostings returns the number of stored postings.
func (db *DB) CountJobPostings(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count job postings: %w", err)
	}
	return n, nil
}

// InsertJobPostings appends postings tagged with source and returns their IDs.
// When replace is true the existing corpus is deleted in the same transaction.
func (db *DB) InsertJobPostings(ctx context.Context, postings []types.JobPosting, source string, replace bool) ([]uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM job_postings`); err != nil {
			return nil, fmt.Errorf("failed to clear job postings: %w", err)
		}
	}

	ids := make([]uuid.UUID, 0, len(postings))
	for _, chunk := range chunkPostings(postings, insertBatchSize) {
		batch := &pgx.Batch{}
		for _, p := range chunk {
			id := uuid.New()
			ids = append(ids, id)
			batch.Queue(
				`INSERT INTO job_postings (id, role, skills, salary_lpa, experience_required, source)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				id, p.Role, cleanSkills(p.RequiredSkills), p.Salary, max(p.ExperienceRequired, 0), source,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("failed to insert job postings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job postings: %w", err)
	}
	return ids, nil
}

// DeleteJobPostingsBySource removes postings imported from source.
func (db *DB) DeleteJobPostingsBySource(ctx context.Context, source string) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE source = $1`, source)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job postings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func chunkPostings(postings []types.JobPosting, size int) [][]types.JobPosting {
	if size <= 0 {
		size = len(postings)
	}
	var chunks [][]types.JobPosting
	for start := 0; start < len(postings); start += size {
		end := min(start+size, len(postings))
		chunks = append(chunks, postings[start:end])
	}
	return chunks
}

// cleanSkills trims entries and drops empties so the text[] column never
// holds blanks. Normalization happens at index time, not here.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package person

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles person data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new person repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new person into the database
func (r *Repository) Create(ctx context.Context, id, name string) (*Person, error) {
	query := `
		INSERT INTO people (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at
	`

	person := &Person{}
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(
		&person.ID,
		&person.Name,
		&person.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return person, nil
}

// GetByID retrieves a person by their ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Person, error) {
	query := `
		SELECT id, name, created_at
		FROM people
		WHERE id = $1
	`

	person := &Person{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.Name,
		&person.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return person, nil
}

// List retrieves all people with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Person, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM people`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	query := `
		SELECT id, name, created_at
		FROM people
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		person := &Person{}
		if err := rows.Scan(&person.ID, &person.Name, &person.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, person)
	}

	return people, total, nil
}

// GetByIDs retrieves a name lookup for the given person ids
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*Person, error) {
	people := make(map[string]*Person, len(ids))
	if len(ids) == 0 {
		return people, nil
	}

	query := `
		SELECT id, name, created_at
		FROM people
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get people by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		person := &Person{}
		if err := rows.Scan(&person.ID, &person.Name, &person.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people[person.ID] = person
	}

	return people, nil
}

// Update renames an existing person
func (r *Repository) Update(ctx context.Context, id string, req *UpdatePersonRequest) (*Person, error) {
	query := `
		UPDATE people
		SET name = COALESCE($2, name)
		WHERE id = $1
		RETURNING id, name, created_at
	`

	person := &Person{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name).Scan(
		&person.ID,
		&person.Name,
		&person.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return person, nil
}

// CountBillReferences counts bills that still reference a person, either as
// a participant or as the payee. Used to refuse deleting people mid-debt.
func (r *Repository) CountBillReferences(ctx context.Context, id string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bills
		WHERE $1 = ANY(participating_person_ids) OR payee_id = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bill references: %w", err)
	}

	return count, nil
}

// Delete removes a person from the database
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM people WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("person not found")
	}

	return nil
}

package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a group and its memberships in one transaction
func (r *Repository) Create(ctx context.Context, group *Group) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`
	if err := tx.QueryRowContext(ctx, query, group.ID, group.Name).Scan(&group.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	if err := insertMembers(ctx, tx, group.ID, group.MemberIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group: %w", err)
	}

	return group, nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, groupID string, memberIDs []string) error {
	query := `INSERT INTO group_members (group_id, person_id) VALUES ($1, $2)`
	for _, personID := range memberIDs {
		if _, err := tx.ExecContext(ctx, query, groupID, personID); err != nil {
			return fmt.Errorf("failed to add group member: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a group with its member IDs
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `SELECT id, name, created_at FROM groups WHERE id = $1`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := r.loadMembers(ctx, []*Group{group}); err != nil {
		return nil, err
	}

	return group, nil
}

// List retrieves all groups ordered by name
func (r *Repository) List(ctx context.Context) ([]*Group, error) {
	query := `SELECT id, name, created_at FROM groups ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	if err := r.loadMembers(ctx, groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// Update renames a group and, when replaceMembers is set, replaces its members
func (r *Repository) Update(ctx context.Context, group *Group, replaceMembers bool) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE groups SET name = $2 WHERE id = $1`, group.ID, group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	if replaceMembers {
		if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1`, group.ID); err != nil {
			return nil, fmt.Errorf("failed to clear group members: %w", err)
		}
		if err := insertMembers(ctx, tx, group.ID, group.MemberIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group update: %w", err)
	}

	return group, nil
}

// Delete removes a group and its memberships
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// loadMembers attaches member IDs to the given groups
func (r *Repository) loadMembers(ctx context.Context, groups []*Group) error {
	if len(groups) == 0 {
		return nil
	}

	byID := make(map[string]*Group, len(groups))
	ids := make([]string, len(groups))
	for i, group := range groups {
		byID[group.ID] = group
		ids[i] = group.ID
	}

	query := `
		SELECT gm.group_id, gm.person_id
		FROM group_members gm
		JOIN people p ON p.id = gm.person_id
		WHERE gm.group_id = ANY($1)
		ORDER BY p.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, personID string
		if err := rows.Scan(&groupID, &personID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		if group, ok := byID[groupID]; ok {
			group.MemberIDs = append(group.MemberIDs, personID)
		}
	}
	return rows.Err()
}

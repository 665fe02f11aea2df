package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hrygo/contentmaker/store"
)

func (d *DB) CreateContentIdea(ctx context.Context, create *store.ContentIdea) (*store.ContentIdea, error) {
	fields := []string{"uid", "prompt", "response", "status"}
	placeholderValues := []any{create.UID, create.Prompt, create.Response, create.Status}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO content_idea (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create content idea: %w", err)
	}

	return create, nil
}

func (d *DB) ListContentIdeas(ctx context.Context, find *store.FindContentIdea) ([]*store.ContentIdea, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "content_idea.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "content_idea.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "content_idea.status = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, prompt, response, status, created_ts
		FROM content_idea
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY content_idea.created_ts DESC, content_idea.id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content ideas: %w", err)
	}
	defer rows.Close()

	list := []*store.ContentIdea{}
	for rows.Next() {
		idea := &store.ContentIdea{}
		if err := rows.Scan(
			&idea.ID,
			&idea.UID,
			&idea.Prompt,
			&idea.Response,
			&idea.Status,
			&idea.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content idea: %w", err)
		}
		list = append(list, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content ideas: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateContentIdea(ctx context.Context, update *store.UpdateContentIdea) (*store.ContentIdea, error) {
	set, args := []string{}, []any{}

	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update for content idea %d", update.ID)
	}

	stmt := `UPDATE content_idea SET ` + strings.Join(set, ", ") + `
		WHERE id = ` + placeholder(len(args)+1) + `
		RETURNING id, uid, prompt, response, status, created_ts`
	args = append(args, update.ID)

	idea := &store.ContentIdea{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&idea.ID,
		&idea.UID,
		&idea.Prompt,
		&idea.Response,
		&idea.Status,
		&idea.CreatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update content idea: %w", err)
	}

	return idea, nil
}

func (d *DB) DeleteContentIdea(ctx context.Context, delete *store.DeleteContentIdea) (int64, error) {
	stmt := `DELETE FROM content_idea WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete content idea: %w", err)
	}
	return result.RowsAffected()
}

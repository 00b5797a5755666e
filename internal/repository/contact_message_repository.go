package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/internship-platform/internal/domain"
	"github.com/spec-kit/internship-platform/internal/persistence"
)

// MessageFilter captures inbox listing parameters. Only the enumerated
// fields can reach the query; no free-form fragments are accepted.
type MessageFilter struct {
	Status *domain.MessageStatus
	Search *string
	Limit  int
	Offset int
}

// MessagePatch describes a partial update. AdminNotes replaces the stored
// value verbatim; the reply flow uses MarkReplied for append semantics.
type MessagePatch struct {
	Status     *domain.MessageStatus
	AdminNotes *string
	RepliedBy  *int64
}

// StatusCounts aggregates message totals per status over the whole table.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Read     int64 `json:"read"`
	Replied  int64 `json:"replied"`
	Archived int64 `json:"archived"`
}

// ContactMessageRepository encapsulates contact-message persistence.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) error
	List(ctx context.Context, filter MessageFilter) ([]domain.ContactMessage, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
	Update(ctx context.Context, id int64, patch MessagePatch) error
	MarkReplied(ctx context.Context, id int64, adminID int64, logEntry string) error
	Delete(ctx context.Context, id int64) error
}

type contactMessageRepository struct {
	db persistence.Executor
}

// NewContactMessageRepository instantiates repository.
func NewContactMessageRepository(db persistence.Executor) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

const messageColumns = `cm.id, cm.name, cm.email, cm.phone, cm.subject, cm.message,
               cm.status, cm.admin_notes, cm.created_at, cm.replied_at, cm.replied_by,
               u.fullname AS replied_by_name`

func (r *contactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (name, email, phone, subject, message, status)
        VALUES ($1,$2,$3,$4,$5,'unread')
        RETURNING id, status, created_at`
	return r.db.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.Status, &msg.CreatedAt)
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM contact_messages cm
        LEFT JOIN users u ON cm.replied_by = u.id
        WHERE cm.id=$1`, messageColumns)

	var msg domain.ContactMessage
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Phone,
		&msg.Subject,
		&msg.Message,
		&msg.Status,
		&msg.AdminNotes,
		&msg.CreatedAt,
		&msg.RepliedAt,
		&msg.RepliedBy,
		&msg.RepliedByName,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead transitions an unread message to read. The status guard in the
// WHERE clause keeps the transition idempotent under concurrent opens.
func (r *contactMessageRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE contact_messages SET status='read' WHERE id=$1 AND status='unread'`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *contactMessageRepository) List(ctx context.Context, filter MessageFilter) ([]domain.ContactMessage, error) {
	base := fmt.Sprintf(`SELECT %s
             FROM contact_messages cm
             LEFT JOIN users u ON cm.replied_by = u.id`, messageColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("cm.status=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + escapeLike(strings.ToLower(strings.TrimSpace(*filter.Search))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(cm.name) LIKE %s OR LOWER(cm.email) LIKE %s OR LOWER(cm.subject) LIKE %s OR LOWER(cm.message) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY cm.created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *contactMessageRepository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	const query = `
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE status='unread') AS unread,
               COUNT(*) FILTER (WHERE status='read') AS read,
               COUNT(*) FILTER (WHERE status='replied') AS replied,
               COUNT(*) FILTER (WHERE status='archived') AS archived
        FROM contact_messages`

	var counts StatusCounts
	if err := r.db.QueryRow(ctx, query).Scan(
		&counts.Total,
		&counts.Unread,
		&counts.Read,
		&counts.Replied,
		&counts.Archived,
	); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *contactMessageRepository) Update(ctx context.Context, id int64, patch MessagePatch) error {
	updates := []string{}
	args := []any{}

	if patch.Status != nil {
		args = append(args, *patch.Status)
		updates = append(updates, fmt.Sprintf("status=$%d", len(args)))

		if *patch.Status == domain.MessageStatusReplied {
			updates = append(updates, "replied_at=NOW()")
			args = append(args, patch.RepliedBy)
			updates = append(updates, fmt.Sprintf("replied_by=$%d", len(args)))
		}
	}
	if patch.AdminNotes != nil {
		args = append(args, *patch.AdminNotes)
		updates = append(updates, fmt.Sprintf("admin_notes=$%d", len(args)))
	}

	if len(updates) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE contact_messages SET %s WHERE id=$%d",
		strings.Join(updates, ", "), len(args))

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkReplied closes the reply flow in one statement: status, reply stamp
// and the appended notes log entry.
func (r *contactMessageRepository) MarkReplied(ctx context.Context, id int64, adminID int64, logEntry string) error {
	const query = `
        UPDATE contact_messages
        SET status='replied', replied_at=NOW(), replied_by=$1,
            admin_notes=COALESCE(admin_notes, '') || $2
        WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query, adminID, logEntry, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the row unconditionally; deleting an absent id is a no-op.
func (r *contactMessageRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM contact_messages WHERE id=$1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func scanMessages(rows pgx.Rows) ([]domain.ContactMessage, error) {
	var result []domain.ContactMessage
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Subject,
			&msg.Message,
			&msg.Status,
			&msg.AdminNotes,
			&msg.CreatedAt,
			&msg.RepliedAt,
			&msg.RepliedBy,
			&msg.RepliedByName,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

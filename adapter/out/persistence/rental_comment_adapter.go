package persistence

import (
	"context"
	"database/sql"
	"errors"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CommentAdapter implements out.CommentRepository using PostgreSQL.
type CommentAdapter struct {
	db *sqlx.DB
}

func NewCommentAdapter(db *sqlx.DB) *CommentAdapter {
	return &CommentAdapter{db: db}
}

type commentRow struct {
	ID              uuid.UUID      `db:"id"`
	Contents        string         `db:"contents"`
	Rating          int            `db:"rating"`
	UserID          uuid.UUID      `db:"user_id"`
	CarID           uuid.NullUUID  `db:"car_id"`
	AccommodationID uuid.NullUUID  `db:"accommodation_id"`
	CreatedAt       sql.NullTime   `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
	DeletedAt       sql.NullTime   `db:"deleted_at"`
	AuthorUsername  sql.NullString `db:"author_username"`
	AuthorImgs      pq.StringArray `db:"author_imgs"`
}

func (r *commentRow) toDomain() *domain.Comment {
	c := &domain.Comment{
		Base: domain.Base{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: r.UpdatedAt.Time,
		},
		Contents: r.Contents,
		Rating:   r.Rating,
		UserID:   r.UserID,
	}
	if r.CarID.Valid {
		id := r.CarID.UUID
		c.CarID = &id
	}
	if r.AccommodationID.Valid {
		id := r.AccommodationID.UUID
		c.AccommodationID = &id
	}
	if r.DeletedAt.Valid {
		c.DeletedAt = &r.DeletedAt.Time
	}
	if r.AuthorUsername.Valid {
		c.Author = &domain.User{
			Base:        domain.Base{ID: r.UserID},
			Username:    r.AuthorUsername.String,
			ProfileImgs: r.AuthorImgs,
		}
	}
	return c
}

const commentColumns = `c.id, c.contents, c.rating, c.user_id, c.car_id, c.accommodation_id, c.created_at, c.updated_at, c.deleted_at`

func (a *CommentAdapter) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, contents, rating, user_id, car_id, accommodation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := a.db.ExecContext(ctx, query,
		c.ID, c.Contents, c.Rating, c.UserID, c.CarID, c.AccommodationID, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (a *CommentAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var row commentRow
	query := `SELECT ` + commentColumns + ` FROM comments c WHERE c.id = $1 AND c.deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// findBy joins the author so review lists render without N+1 lookups
func (a *CommentAdapter) findBy(ctx context.Context, column string, id uuid.UUID) ([]*domain.Comment, error) {
	var rows []commentRow
	query := `
		SELECT ` + commentColumns + `, u.username AS author_username, u.profile_imgs AS author_imgs
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.` + column + ` = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at DESC
	`
	if err := a.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, err
	}
	comments := make([]*domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toDomain())
	}
	return comments, nil
}

func (a *CommentAdapter) FindByCarID(ctx context.Context, carID uuid.UUID) ([]*domain.Comment, error) {
	return a.findBy(ctx, "car_id", carID)
}

func (a *CommentAdapter) FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*domain.Comment, error) {
	return a.findBy(ctx, "accommodation_id", accommodationID)
}

func (a *CommentAdapter) Update(ctx context.Context, c *domain.Comment) error {
	query := `UPDATE comments SET contents = $1, rating = $2, updated_at = NOW() WHERE id = $3 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, c.Contents, c.Rating, c.ID)
	return err
}

func (a *CommentAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE comments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, id)
	return err
}

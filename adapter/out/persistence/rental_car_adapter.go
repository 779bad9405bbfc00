package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental_server/core/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CarAdapter implements out.CarRepository using PostgreSQL.
type CarAdapter struct {
	db *sqlx.DB
}

func NewCarAdapter(db *sqlx.DB) *CarAdapter {
	return &CarAdapter{db: db}
}

type carRow struct {
	ID             uuid.UUID      `db:"id"`
	Name           string         `db:"name"`
	Grade          sql.NullString `db:"grade"`
	Classification string         `db:"classification"`
	Price          int            `db:"price"`
	Year           sql.NullInt32  `db:"year"`
	CarNo          string         `db:"car_no"`
	Transmission   string         `db:"transmission"`
	Mileage        int            `db:"mileage"`
	Displacement   int            `db:"displacement"`
	Fuel           string         `db:"fuel"`
	Imgs           pq.StringArray `db:"imgs"`
	CreatedAt      sql.NullTime   `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
	DeletedAt      sql.NullTime   `db:"deleted_at"`
}

func (r *carRow) toDomain() *domain.Car {
	car := &domain.Car{
		Base: domain.Base{
			ID:        r.ID,
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: r.UpdatedAt.Time,
		},
		Name:           r.Name,
		Classification: domain.Classification(r.Classification),
		Price:          r.Price,
		CarNo:          r.CarNo,
		Transmission:   domain.Transmission(r.Transmission),
		Mileage:        r.Mileage,
		Displacement:   r.Displacement,
		Fuel:           domain.Fuel(r.Fuel),
		Imgs:           r.Imgs,
	}
	if r.Grade.Valid {
		car.Grade = r.Grade.String
	}
	if r.Year.Valid {
		car.Year = int(r.Year.Int32)
	}
	if r.DeletedAt.Valid {
		car.DeletedAt = &r.DeletedAt.Time
	}
	return car
}

const carColumns = `id, name, grade, classification, price, year, car_no, transmission, mileage, displacement, fuel, imgs, created_at, updated_at, deleted_at`

func (a *CarAdapter) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (id, name, grade, classification, price, year, car_no, transmission, mileage, displacement, fuel, imgs, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := a.db.ExecContext(ctx, query,
		car.ID, car.Name, car.Grade, car.Classification, car.Price, car.Year,
		car.CarNo, car.Transmission, car.Mileage, car.Displacement, car.Fuel,
		pq.Array(car.Imgs), car.CreatedAt, car.UpdatedAt,
	)
	return err
}

func (a *CarAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	var row carRow
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 AND deleted_at IS NULL`
	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// List pages the catalog. The keyword matches name and grade; the sort is
// always one of the fixed listing orders, never raw client input.
func (a *CarAdapter) List(ctx context.Context, filter *domain.CarFilter) ([]*domain.Car, int, error) {
	where := []string{"deleted_at IS NULL"}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Keyword != "" {
		p := arg("%" + filter.Keyword + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR grade ILIKE %s)", p, p))
	}
	if filter.Classification != nil {
		where = append(where, "classification = "+arg(*filter.Classification))
	}
	if filter.Fuel != nil {
		where = append(where, "fuel = "+arg(*filter.Fuel))
	}
	if filter.PriceMin != nil {
		where = append(where, "price >= "+arg(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		where = append(where, "price <= "+arg(*filter.PriceMax))
	}

	whereClause := strings.Join(where, " AND ")

	var count int
	countQuery := `SELECT COUNT(*) FROM cars WHERE ` + whereClause
	if err := a.db.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	sort, ok := domain.SortValue[filter.Sort]
	if !ok {
		sort = domain.SortValue[domain.SortLastCreated]
	}

	query := fmt.Sprintf(`SELECT %s FROM cars WHERE %s ORDER BY %s %s LIMIT %s OFFSET %s`,
		carColumns, whereClause, sort.Column, sort.Order, arg(filter.Take), arg(filter.Skip()))

	var rows []carRow
	if err := a.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	cars := make([]*domain.Car, 0, len(rows))
	for i := range rows {
		cars = append(cars, rows[i].toDomain())
	}
	return cars, count, nil
}

func (a *CarAdapter) FindByClassification(ctx context.Context, c domain.Classification) ([]*domain.Car, error) {
	var rows []carRow
	query := `SELECT ` + carColumns + ` FROM cars WHERE classification = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	if err := a.db.SelectContext(ctx, &rows, query, c); err != nil {
		return nil, err
	}
	cars := make([]*domain.Car, 0, len(rows))
	for i := range rows {
		cars = append(cars, rows[i].toDomain())
	}
	return cars, nil
}

func (a *CarAdapter) FindByFuel(ctx context.Context, f domain.Fuel) ([]*domain.Car, error) {
	var rows []carRow
	query := `SELECT ` + carColumns + ` FROM cars WHERE fuel = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	if err := a.db.SelectContext(ctx, &rows, query, f); err != nil {
		return nil, err
	}
	cars := make([]*domain.Car, 0, len(rows))
	for i := range rows {
		cars = append(cars, rows[i].toDomain())
	}
	return cars, nil
}

func (a *CarAdapter) Update(ctx context.Context, car *domain.Car) error {
	query := `
		UPDATE cars SET
			name = $1, grade = NULLIF($2, ''), classification = $3, price = $4,
			year = $5, car_no = $6, transmission = $7, mileage = $8,
			displacement = $9, fuel = $10, imgs = $11, updated_at = NOW()
		WHERE id = $12 AND deleted_at IS NULL
	`
	_, err := a.db.ExecContext(ctx, query,
		car.Name, car.Grade, car.Classification, car.Price, car.Year,
		car.CarNo, car.Transmission, car.Mileage, car.Displacement, car.Fuel,
		pq.Array(car.Imgs), car.ID,
	)
	return err
}

func (a *CarAdapter) UpdateImgs(ctx context.Context, id uuid.UUID, imgs []string) error {
	query := `UPDATE cars SET imgs = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, pq.Array(imgs), id)
	return err
}

func (a *CarAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE cars SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, id)
	return err
}

// BulkUpsert writes the batch in one transaction, matching rows by car
// number so repeated imports stay idempotent.
func (a *CarAdapter) BulkUpsert(ctx context.Context, cars []*domain.Car) (int, error) {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cars (id, name, grade, classification, price, year, car_no, transmission, mileage, displacement, fuel, imgs, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		ON CONFLICT (car_no) DO UPDATE SET
			name = EXCLUDED.name, grade = EXCLUDED.grade,
			classification = EXCLUDED.classification, price = EXCLUDED.price,
			year = EXCLUDED.year, transmission = EXCLUDED.transmission,
			mileage = EXCLUDED.mileage, displacement = EXCLUDED.displacement,
			fuel = EXCLUDED.fuel, updated_at = NOW()
	`

	written := 0
	for _, car := range cars {
		if _, err := tx.ExecContext(ctx, query,
			car.ID, car.Name, car.Grade, car.Classification, car.Price, car.Year,
			car.CarNo, car.Transmission, car.Mileage, car.Displacement, car.Fuel,
			pq.Array(car.Imgs),
		); err != nil {
			return 0, err
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

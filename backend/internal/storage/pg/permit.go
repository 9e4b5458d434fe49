package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/errors"
)

const permitColumns = `id, valid_from, valid_to, price, status, variable_symbol,
	first_name, last_name, email, city, street, house_number,
	permit_duration, payment_method, car_registration, user_id, zones`

func (s *Storage) AddPermit(ctx context.Context, app domain.PermitApplication) (int, error) {
	// A nil slice would bind as SQL NULL and violate the NOT NULL
	// constraint on zones; applications without zones are valid.
	zs := app.Zones
	if zs == nil {
		zs = []string{}
	}

	var id int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO permits (
			valid_from, valid_to, price, status, variable_symbol,
			first_name, last_name, email, city, street, house_number,
			permit_duration, payment_method, car_registration, user_id, zones
		) VALUES ($1, $2, $3, 'pending', $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`,
		app.ValidFrom, app.ValidTo, app.Price, newVariableSymbol(),
		app.Firstname, app.Lastname, app.Email, app.City, app.Street, app.HouseNumber,
		string(app.PermitDuration), app.PaymentMethod, app.CarRegistration, app.UserID,
		pq.Array(zs),
	).Scan(&id)
	if err != nil {
		return 0, &errors.RepositoryError{Op: "add permit", Err: err}
	}
	return id, nil
}

func (s *Storage) GetPermitByID(ctx context.Context, id int) (*domain.Permit, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+permitColumns+" FROM permits WHERE id = $1", id)

	permit, err := scanPermit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &errors.RepositoryError{Op: fmt.Sprintf("retrieve permit %d", id), Err: err}
	}
	return permit, nil
}

func (s *Storage) GetPermits(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
	query := "SELECT " + permitColumns + " FROM permits"
	args := []any{}
	if carRegistration != "" {
		query += " WHERE car_registration = $1"
		args = append(args, carRegistration)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &errors.RepositoryError{Op: "retrieve permits", Err: err}
	}
	defer rows.Close()

	permits := make([]domain.Permit, 0)
	for rows.Next() {
		permit, err := scanPermit(rows)
		if err != nil {
			return nil, &errors.RepositoryError{Op: "retrieve permits", Err: err}
		}
		permits = append(permits, *permit)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.RepositoryError{Op: "retrieve permits", Err: err}
	}
	return permits, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPermit(row scanner) (*domain.Permit, error) {
	var p domain.Permit
	var duration string
	err := row.Scan(
		&p.ID, &p.ValidFrom, &p.ValidTo, &p.Price, &p.Status, &p.VariableSymbol,
		&p.Firstname, &p.Lastname, &p.Email, &p.City, &p.Street, &p.HouseNumber,
		&duration, &p.PaymentMethod, &p.CarRegistration, &p.UserID,
		pq.Array(&p.Zones),
	)
	if err != nil {
		return nil, err
	}
	p.PermitDuration = domain.Duration(duration)
	return &p, nil
}

// newVariableSymbol derives a payment reference from random uuid bits;
// banks cap variable symbols at ten digits.
func newVariableSymbol() string {
	return fmt.Sprintf("%010d", uint64(uuid.New().ID()))
}

package service

import (
	"context"
	"net/http"

	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

// to mock service in tests
type PermitService interface {
	Create(ctx context.Context, app domain.PermitApplication) (int, error)
	Get(ctx context.Context, id int) (*domain.Permit, error)
	List(ctx context.Context, carRegistration string) ([]domain.Permit, error)
	Quote(selected []string, duration domain.Duration, home zones.HomeAddress) (int, error)
}

// PermitStorage is implemented by the configuration-selected backends.
// Absence is reported as a nil permit, not an error; I/O failures come
// back as *errors.RepositoryError.
type PermitStorage interface {
	AddPermit(ctx context.Context, app domain.PermitApplication) (int, error)
	GetPermitByID(ctx context.Context, id int) (*domain.Permit, error)
	GetPermits(ctx context.Context, carRegistration string) ([]domain.Permit, error)
}

type Permit struct {
	storage PermitStorage
	catalog *zones.Catalog
}

func NewPermit(storage PermitStorage, catalog *zones.Catalog) PermitService {
	return &Permit{storage, catalog}
}

// Create stores the application. The expiration date is always derived
// from validFrom and the duration; a client-supplied validTo is ignored.
func (p *Permit) Create(ctx context.Context, app domain.PermitApplication) (int, error) {
	if app.PermitDuration != "" {
		validFrom, layout, err := domain.ParseDate(app.ValidFrom)
		if err != nil {
			return 0, &errors.ErrorWithStatusCode{
				Message:    "Valid from must be a valid date",
				StatusCode: http.StatusBadRequest,
			}
		}
		validTo, err := app.PermitDuration.AddTo(validFrom)
		if err != nil {
			return 0, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
		}
		app.ValidTo = validTo.Format(layout)
	}

	return p.storage.AddPermit(ctx, app)
}

func (p *Permit) Get(ctx context.Context, id int) (*domain.Permit, error) {
	return p.storage.GetPermitByID(ctx, id)
}

func (p *Permit) List(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
	return p.storage.GetPermits(ctx, carRegistration)
}

// Quote prices a zone selection without storing anything.
func (p *Permit) Quote(selected []string, duration domain.Duration, home zones.HomeAddress) (int, error) {
	total, err := p.catalog.TotalPrice(selected, duration, home)
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return total, nil
}

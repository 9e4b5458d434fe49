package graph

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mesto-decin/parking-permits/shared/config"
	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/errors"
)

// Repository stores permits as items of one SharePoint list.
type Repository struct {
	client *Client
	siteID string
	listID string
}

// New checks the SharePoint coordinates eagerly so a misconfigured
// deployment fails at startup, not on the first request.
func New(cfg config.Graph) (*Repository, error) {
	var missing []string
	for _, v := range []struct{ name, value string }{
		{"TENANT_ID", cfg.TenantID},
		{"CLIENT_ID", cfg.ClientID},
		{"CLIENT_SECRET", cfg.ClientSecret},
		{"SITE_ID", cfg.SiteID},
		{"LIST_ID", cfg.ListID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewConfigurationError(
			"SharePoint configuration incomplete. Check environment variables: %s",
			strings.Join(missing, ", "))
	}

	return &Repository{
		client: NewClient(cfg),
		siteID: cfg.SiteID,
		listID: cfg.ListID,
	}, nil
}

func (r *Repository) itemsPath() string {
	return fmt.Sprintf("/sites/%s/lists/%s/items", r.siteID, r.listID)
}

// listItem is a SharePoint list item with its column values expanded.
type listItem struct {
	ID     string       `json:"id"`
	Fields permitFields `json:"fields"`
}

type permitFields struct {
	ValidFrom       string   `json:"validFrom,omitempty"`
	ValidTo         string   `json:"validTo,omitempty"`
	Price           float64  `json:"price,omitempty"`
	Status          string   `json:"status,omitempty"`
	VariableSymbol  string   `json:"variableSymbol,omitempty"`
	FirstName       string   `json:"firstName,omitempty"`
	LastName        string   `json:"lastName,omitempty"`
	Email           string   `json:"email,omitempty"`
	City            string   `json:"city,omitempty"`
	Street          string   `json:"street,omitempty"`
	HouseNumber     string   `json:"houseNumber,omitempty"`
	PermitDuration  string   `json:"permitDuration,omitempty"`
	PaymentMethod   string   `json:"paymentMethod,omitempty"`
	CarRegistration string   `json:"carRegistration,omitempty"`
	UserID          string   `json:"userId,omitempty"`
	Zones           []string `json:"zones,omitempty"`
}

func (item *listItem) toPermit() (*domain.Permit, error) {
	id, err := strconv.Atoi(item.ID)
	if err != nil {
		return nil, fmt.Errorf("list item id %q is not an integer", item.ID)
	}
	f := item.Fields
	return &domain.Permit{
		PermitApplication: domain.PermitApplication{
			ValidFrom:       f.ValidFrom,
			ValidTo:         f.ValidTo,
			Price:           f.Price,
			Firstname:       f.FirstName,
			Lastname:        f.LastName,
			Email:           f.Email,
			City:            f.City,
			Street:          f.Street,
			HouseNumber:     f.HouseNumber,
			PermitDuration:  domain.Duration(f.PermitDuration),
			PaymentMethod:   f.PaymentMethod,
			CarRegistration: f.CarRegistration,
			UserID:          f.UserID,
			Zones:           f.Zones,
		},
		ID:             id,
		Status:         f.Status,
		VariableSymbol: f.VariableSymbol,
	}, nil
}

func (r *Repository) AddPermit(ctx context.Context, app domain.PermitApplication) (int, error) {
	fields := map[string]any{
		"validFrom":       app.ValidFrom,
		"validTo":         app.ValidTo,
		"price":           app.Price,
		"firstName":       app.Firstname,
		"lastName":        app.Lastname,
		"email":           app.Email,
		"city":            app.City,
		"street":          app.Street,
		"houseNumber":     app.HouseNumber,
		"permitDuration":  string(app.PermitDuration),
		"paymentMethod":   app.PaymentMethod,
		"carRegistration": app.CarRegistration,
		"userId":          app.UserID,
	}
	if len(app.Zones) > 0 {
		fields["zones@odata.type"] = "Collection(Edm.String)"
		fields["zones"] = app.Zones
	}

	var created listItem
	err := r.client.do(ctx, "POST", r.itemsPath(), nil, map[string]any{"fields": fields}, &created)
	if err != nil {
		return 0, &errors.RepositoryError{Op: "add permit", Err: err}
	}

	id, err := strconv.Atoi(created.ID)
	if err != nil {
		return 0, &errors.RepositoryError{Op: "add permit", Err: fmt.Errorf("unexpected item id %q", created.ID)}
	}
	return id, nil
}

func (r *Repository) GetPermitByID(ctx context.Context, id int) (*domain.Permit, error) {
	query := url.Values{"expand": {"fields"}}

	var item listItem
	err := r.client.do(ctx, "GET", fmt.Sprintf("%s/%d", r.itemsPath(), id), query, nil, &item)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, &errors.RepositoryError{Op: fmt.Sprintf("retrieve permit %d", id), Err: err}
	}

	permit, err := item.toPermit()
	if err != nil {
		return nil, &errors.RepositoryError{Op: fmt.Sprintf("retrieve permit %d", id), Err: err}
	}
	return permit, nil
}

func (r *Repository) GetPermits(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
	query := url.Values{"expand": {"fields"}}
	if carRegistration != "" {
		// OData string literals escape single quotes by doubling them.
		escaped := strings.ReplaceAll(carRegistration, "'", "''")
		query.Set("$filter", fmt.Sprintf("fields/carRegistration eq '%s'", escaped))
	}

	var page struct {
		Value []listItem `json:"value"`
	}
	if err := r.client.do(ctx, "GET", r.itemsPath(), query, nil, &page); err != nil {
		return nil, &errors.RepositoryError{Op: "retrieve permits", Err: err}
	}

	permits := make([]domain.Permit, 0, len(page.Value))
	for _, item := range page.Value {
		permit, err := item.toPermit()
		if err != nil {
			return nil, &errors.RepositoryError{Op: "retrieve permits", Err: err}
		}
		permits = append(permits, *permit)
	}
	return permits, nil
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesto-decin/parking-permits/backend/internal/storage/session"
	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

type MockPermitService struct {
	MockCreate func(ctx context.Context, app domain.PermitApplication) (int, error)
	MockGet    func(ctx context.Context, id int) (*domain.Permit, error)
	MockList   func(ctx context.Context, carRegistration string) ([]domain.Permit, error)
	MockQuote  func(selected []string, duration domain.Duration, home zones.HomeAddress) (int, error)
}

func (m *MockPermitService) Create(ctx context.Context, app domain.PermitApplication) (int, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, app)
	}
	return 1, nil // Default behavior
}

func (m *MockPermitService) Get(ctx context.Context, id int) (*domain.Permit, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return nil, nil // Default behavior
}

func (m *MockPermitService) List(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
	if m.MockList != nil {
		return m.MockList(ctx, carRegistration)
	}
	return nil, nil // Default behavior
}

func (m *MockPermitService) Quote(selected []string, duration domain.Duration, home zones.HomeAddress) (int, error) {
	if m.MockQuote != nil {
		return m.MockQuote(selected, duration, home)
	}
	return 0, nil // Default behavior
}

func newTestHandler() *Handler {
	catalog := zones.Default()
	return New(&MockPermitService{}, session.NewMemoryStore(time.Hour), catalog, api.NewValidator(catalog), time.Hour)
}

func newPermitRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Post("/permits", h.CreatePermit)
	router.Get("/permits", h.ListPermits)
	router.Get("/permits/{id}", h.GetPermit)
	return router
}

func validCreateBody() []byte {
	return []byte(`{
		"validFrom": "2025-01-01",
		"price": 1200,
		"firstname": "John",
		"lastname": "Doe",
		"email": "john@doe.com",
		"permitDuration": "year",
		"zones": ["Podmokly"]
	}`)
}

func TestCreatePermitHandler(t *testing.T) {
	h := newTestHandler()
	router := newPermitRouter(h)

	t.Run("successful request", func(t *testing.T) {
		h.permit = &MockPermitService{
			MockCreate: func(ctx context.Context, app domain.PermitApplication) (int, error) {
				assert.Equal(t, "John", app.Firstname)
				assert.Equal(t, domain.DurationYear, app.PermitDuration)
				return 42, nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBuffer(validCreateBody()))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp api.CreatePermitResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Permit added successfully", resp.Message)
		assert.Equal(t, 42, resp.ID)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBufferString(`{invalid`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Body is invalid json", resp.Error)
	})

	t.Run("validation failure lists every field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBufferString(`{"email": "nope"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Error)
		fields := make(map[string]string)
		for _, d := range resp.Details {
			fields[d.Field] = d.Message
		}
		assert.Contains(t, fields, "validFrom")
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "firstname")
		assert.Contains(t, fields, "lastname")
		assert.Equal(t, "Valid email is required", fields["email"])
	})

	t.Run("unknown zone rejected", func(t *testing.T) {
		body := []byte(`{
			"validFrom": "2025-01-01",
			"price": 1200,
			"firstname": "John",
			"lastname": "Doe",
			"email": "john@doe.com",
			"zones": ["Atlantis"]
		}`)
		req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		h.permit = &MockPermitService{
			MockCreate: func(ctx context.Context, app domain.PermitApplication) (int, error) {
				return 0, &errors.RepositoryError{Op: "add permit", Err: context.DeadlineExceeded}
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBuffer(validCreateBody()))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetPermitHandler(t *testing.T) {
	h := newTestHandler()
	router := newPermitRouter(h)

	t.Run("found", func(t *testing.T) {
		h.permit = &MockPermitService{
			MockGet: func(ctx context.Context, id int) (*domain.Permit, error) {
				assert.Equal(t, 17, id)
				return &domain.Permit{ID: 17, PermitApplication: domain.PermitApplication{Firstname: "John"}}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/permits/17", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var permit domain.Permit
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &permit))
		assert.Equal(t, 17, permit.ID)
		assert.Equal(t, "John", permit.Firstname)
	})

	t.Run("missing permit is null, not 404", func(t *testing.T) {
		h.permit = &MockPermitService{}
		req := httptest.NewRequest(http.MethodGet, "/permits/999", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "null\n", rr.Body.String())
	})

	t.Run("non-canonical ids rejected", func(t *testing.T) {
		for _, raw := range []string{"abc", "1.5", "01", "1e3", " 1"} {
			// httptest.NewRequest panics on targets like " 1" that are not
			// valid in a request line, so set the path after construction.
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = "/permits/" + raw
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code, "id %q", raw)
			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "id must be an integer number", resp.Error)
		}
	})
}

func TestListPermitsHandler(t *testing.T) {
	h := newTestHandler()
	router := newPermitRouter(h)

	t.Run("filter passed through", func(t *testing.T) {
		h.permit = &MockPermitService{
			MockList: func(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
				assert.Equal(t, "ABC123", carRegistration)
				return []domain.Permit{{ID: 1}}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/permits?carRegistration=ABC123", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var permits []domain.Permit
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &permits))
		assert.Len(t, permits, 1)
	})

	t.Run("no filter returns all", func(t *testing.T) {
		h.permit = &MockPermitService{
			MockList: func(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
				assert.Empty(t, carRegistration)
				return []domain.Permit{{ID: 1}, {ID: 2}}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/permits", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var permits []domain.Permit
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &permits))
		assert.Len(t, permits, 2)
	})
}

package handler

import (
	"time"

	"github.com/mesto-decin/parking-permits/backend/internal/service"
	"github.com/mesto-decin/parking-permits/backend/internal/storage/session"
	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

type Handler struct {
	permit     service.PermitService
	profiles   session.ProfileStore
	catalog    *zones.Catalog
	validator  *api.Validator
	sessionTTL time.Duration
}

func New(permit service.PermitService, profiles session.ProfileStore, catalog *zones.Catalog, validator *api.Validator, sessionTTL time.Duration) *Handler {
	return &Handler{permit, profiles, catalog, validator, sessionTTL}
}

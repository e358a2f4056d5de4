package service

import (
	"context"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/apperror"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
)

// MappingAdminServiceImpl implements ports.MappingAdminService.
type MappingAdminServiceImpl struct {
	mappings ports.MappingRepository
	log      zerolog.Logger
}

// NewMappingAdminService creates a new MappingAdminServiceImpl.
func NewMappingAdminService(mappings ports.MappingRepository, log zerolog.Logger) *MappingAdminServiceImpl {
	return &MappingAdminServiceImpl{mappings: mappings, log: logger.Component(log, "mapping_admin")}
}

// ClearProductMappings forgets every product mapping so the next checkout
// re-creates products at the provider.
func (s *MappingAdminServiceImpl) ClearProductMappings(ctx context.Context) (int64, error) {
	n, err := s.mappings.Truncate(ctx, domain.MappingKindProduct)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("truncate product mappings: %w", err))
	}
	s.log.Warn().Int64("removed", n).Msg("product mappings cleared")
	return n, nil
}

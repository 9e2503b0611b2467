package di

import (
	"gorm.io/gorm"

	authadapters "warehouse_backend/internal/feature/auth/adapters"
	authhandler "warehouse_backend/internal/feature/auth/transport/handler"
	authusecase "warehouse_backend/internal/feature/auth/usecase"
	"warehouse_backend/internal/platform/config"
	jwtmw "warehouse_backend/internal/platform/jwt"
)

// NewAuthUsecase wires the user repository and JWT generator.
func NewAuthUsecase(db *gorm.DB, cfg config.JWTConfig) authhandler.AuthUsecase {
	return authusecase.NewAuthUsecase(
		authadapters.NewUserRepository(db),
		jwtmw.NewGenerator(cfg.Secret, cfg.Expiration),
	)
}

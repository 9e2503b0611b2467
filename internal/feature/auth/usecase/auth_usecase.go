// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"warehouse_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名が既に存在する場合、ErrUsernameAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, username string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidRegistration, minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Register(ctx context.Context, username, password, fullName string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(fullName) == "" {
		return fmt.Errorf("%w: username and full name are required", ErrInvalidRegistration)
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Username: username, Password: string(hashed), FullName: fullName}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Username)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, nil
}

// UserInfo はログイン中ユーザーの情報を返します。
func (u *authUsecase) UserInfo(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

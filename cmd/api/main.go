package main

import (
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 6 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, name string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": string(role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartEntry{},
		&model.Order{},
		&model.OrderLine{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	lineRepo := infraRepo.NewOrderLineGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	userUC := usecase.NewUserUsecase(userRepo, hasher)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, userRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, orderRepo, lineRepo)

	//Handler生成
	handlers := server.Handlers{
		User:     handler.NewUserHandler(registerUC, loginUC, userUC),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
	}

	//Server起動
	e := server.New(cfg, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}

package app

import (
	"errors"
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// Application wires the configuration and the shared database handle.
type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkSuper()
	a.checkDefaultCategory()
}

func (a *Application) MigrateDB() error {
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// checkSuper seeds a default account so a fresh install can sign in.
// The generated password is logged exactly once, at creation.
func (a *Application) checkSuper() {
	const superEmail = "admin@openshelf.local"

	var user domain.User
	err := a.gormDB.Where("email = ?", superEmail).First(&user).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	password := common.UUID()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}
	if err := a.gormDB.Create(&domain.User{
		ID:       common.UUIDint64(),
		Email:    superEmail,
		Name:     "administrator",
		Password: string(hash),
	}).Error; err != nil {
		zap.L().Error("failed to create default admin user", zap.Error(err))
		return
	}
	zap.L().Info("initialized default admin account",
		zap.String("email", superEmail),
		zap.String("password", password),
	)
}

// checkDefaultCategory seeds a catch-all category.
func (a *Application) checkDefaultCategory() {
	var count int64
	a.gormDB.Model(&domain.Category{}).Count(&count)
	if count > 0 {
		return
	}
	if err := a.gormDB.Create(&domain.Category{
		ID:   common.UUIDint64(),
		Name: "general",
	}).Error; err != nil {
		zap.L().Error("failed to create default category", zap.Error(err))
		return
	}
	zap.L().Info("initialized default category", zap.String("name", "general"))
}

// Release releases application resources
func (a *Application) Release() {
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}

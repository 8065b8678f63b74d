package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	"timecraft/internal/employee"
	"timecraft/internal/messaging/kafka"
	"timecraft/internal/position"
	"timecraft/internal/queuedmail"
	"timecraft/internal/salary"
	"timecraft/internal/shared/connection"
	"timecraft/internal/timeoff"
	"timecraft/internal/timesheet"
	"timecraft/internal/user"
)

// BuildApp connects the infrastructure and registers every module on the
// router. The api process owns schema migration, the mailer only reads.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(5, 3*time.Second)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(5, 2*time.Second)
	if err != nil {
		return err
	}

	kafkaWriter := connection.NewKafkaWriter()
	publisher := kafka.NewPublisher(kafkaWriter, logger)

	return registerModules(router, sqlDB, gormDB, redisClient, publisher)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&position.Position{},
		&salary.Salary{},
		&employee.Employee{},
		&balance.TimeoffBalance{},
		&timesheet.TimesheetEntry{},
		&timeoff.TimeoffRequest{},
		&queuedmail.QueuedMail{},
	)
}

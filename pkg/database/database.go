package database

import (
	"fmt"
	"log"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.QuestionOption{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaultQuestions(db)

	return db, nil
}

// seedDefaultQuestions inserts a starter question set on an empty bank so a
// fresh deployment can serve quizzes before the community has contributed.
func seedDefaultQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Question{
		{
			Description: "What is the time complexity of binary search on a sorted array of n elements?",
			Solution:    "Each comparison halves the remaining search space, giving O(log n).",
			Difficulty:  model.Easy,
			Category:    "Computer Science",
			Options: []model.QuestionOption{
				{Description: "O(n)"},
				{Description: "O(log n)", IsCorrect: true},
				{Description: "O(n log n)"},
				{Description: "O(1)"},
			},
		},
		{
			Description: "Which planet has the strongest surface gravity in the solar system?",
			Solution:    "Jupiter's mass gives it a surface gravity of roughly 24.8 m/s², the highest of any planet.",
			Difficulty:  model.Medium,
			Category:    "Physics",
			Options: []model.QuestionOption{
				{Description: "Earth"},
				{Description: "Saturn"},
				{Description: "Jupiter", IsCorrect: true},
				{Description: "Neptune"},
			},
		},
		{
			Description: "What is the derivative of sin(x) with respect to x?",
			Solution:    "d/dx sin(x) = cos(x), from the limit definition of the derivative.",
			Difficulty:  model.Easy,
			Category:    "Math",
			Options: []model.QuestionOption{
				{Description: "cos(x)", IsCorrect: true},
				{Description: "-cos(x)"},
				{Description: "-sin(x)"},
				{Description: "tan(x)"},
			},
		},
	}

	for i := range defaults {
		db.Create(&defaults[i])
	}
}

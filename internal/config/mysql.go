package config

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the shared database handle.
var DB *gorm.DB
var err error

// InitDB opens the MySQL connection.
// TranslateError turns driver duplicate-key errors into gorm.ErrDuplicatedKey,
// which the tag resolver relies on to detect creation races.
func InitDB() {
	dsn := os.Getenv("DB_DSN")
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Error connecting to the database:", err)
	}
	log.Println("Database connected")
}

package database

import (
	"fmt"
	"log"

	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/internal/model"

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
		&model.QuestionMapping{},
		&model.StudentMark{},
		&model.Resource{},
		&model.Interaction{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedQuestionMappings(db)
	seedResources(db)

	return db, nil
}

// 默认的题目-CO映射（三次内部考试，每次8题）
func seedQuestionMappings(db *gorm.DB) {
	var count int64
	db.Model(&model.QuestionMapping{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.QuestionMapping{
		{ExamIndex: 1, Question: 1, CO: "CO1", Topic: "Introduction"},
		{ExamIndex: 1, Question: 2, CO: "CO1", Topic: "Basic Concepts"},
		{ExamIndex: 1, Question: 3, CO: "CO2", Topic: "Data Representation"},
		{ExamIndex: 1, Question: 4, CO: "CO2", Topic: "Number Systems"},
		{ExamIndex: 1, Question: 5, CO: "CO2", Topic: "Boolean Algebra"},
		{ExamIndex: 1, Question: 6, CO: "CO3", Topic: "Logic Gates"},
		{ExamIndex: 1, Question: 7, CO: "CO3", Topic: "Combinational Circuits"},
		{ExamIndex: 1, Question: 8, CO: "CO3", Topic: "Karnaugh Maps"},

		{ExamIndex: 2, Question: 1, CO: "CO3", Topic: "Sequential Circuits"},
		{ExamIndex: 2, Question: 2, CO: "CO3", Topic: "Flip Flops"},
		{ExamIndex: 2, Question: 3, CO: "CO4", Topic: "Registers"},
		{ExamIndex: 2, Question: 4, CO: "CO4", Topic: "Counters"},
		{ExamIndex: 2, Question: 5, CO: "CO4", Topic: "Memory Organization"},
		{ExamIndex: 2, Question: 6, CO: "CO4", Topic: "Addressing Modes"},
		{ExamIndex: 2, Question: 7, CO: "CO5", Topic: "Instruction Cycle"},
		{ExamIndex: 2, Question: 8, CO: "CO5", Topic: "Interrupts"},

		{ExamIndex: 3, Question: 1, CO: "CO4", Topic: "Pipelining"},
		{ExamIndex: 3, Question: 2, CO: "CO4", Topic: "Hazards"},
		{ExamIndex: 3, Question: 3, CO: "CO5", Topic: "Cache Memory"},
		{ExamIndex: 3, Question: 4, CO: "CO5", Topic: "Virtual Memory"},
		{ExamIndex: 3, Question: 5, CO: "CO5", Topic: "IO Organization"},
		{ExamIndex: 3, Question: 6, CO: "CO5", Topic: "DMA"},
		{ExamIndex: 3, Question: 7, CO: "CO5", Topic: "Parallel Processing"},
		{ExamIndex: 3, Question: 8, CO: "CO5", Topic: "Multiprocessors"},
	}
	for _, m := range defaults {
		db.Create(&m)
	}
	log.Printf("Seeded %d question mappings", len(defaults))
}

// 默认的学习资源目录（每个CO至少一个不同难度的资源）
func seedResources(db *gorm.DB) {
	var count int64
	db.Model(&model.Resource{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Resource{
		{Title: "Course Introduction Walkthrough", URL: "https://example.com/co1/intro", CO: "CO1", Topic: "Introduction", Difficulty: model.Easy, Type: model.Video, EstimatedTimeMin: 25, Description: "Orientation video covering the course outline"},
		{Title: "Basic Concepts Primer", URL: "https://example.com/co1/primer", CO: "CO1", Topic: "Basic Concepts", Difficulty: model.Medium, Type: model.Article, EstimatedTimeMin: 35},
		{Title: "Number Systems Drill Sheet", URL: "https://example.com/co2/numbers", CO: "CO2", Topic: "Number Systems", Difficulty: model.Easy, Type: model.Worksheet, EstimatedTimeMin: 30},
		{Title: "Boolean Algebra Deep Dive", URL: "https://example.com/co2/boolean", CO: "CO2", Topic: "Boolean Algebra", Difficulty: model.Hard, Type: model.PDF, EstimatedTimeMin: 55},
		{Title: "Logic Gates Explained", URL: "https://example.com/co3/gates", CO: "CO3", Topic: "Logic Gates", Difficulty: model.Easy, Type: model.Video, EstimatedTimeMin: 20},
		{Title: "Karnaugh Map Practice Set", URL: "https://example.com/co3/kmaps", CO: "CO3", Topic: "Karnaugh Maps", Difficulty: model.Medium, Type: model.Worksheet, EstimatedTimeMin: 40},
		{Title: "Memory Organization Notes", URL: "https://example.com/co4/memory", CO: "CO4", Topic: "Memory Organization", Difficulty: model.Medium, Type: model.PDF, EstimatedTimeMin: 45},
		{Title: "Counters and Registers Lab", URL: "https://example.com/co4/counters", CO: "CO4", Topic: "Counters", Difficulty: model.Hard, Type: model.Article, EstimatedTimeMin: 50},
		{Title: "Cache Memory Crash Course", URL: "https://example.com/co5/cache", CO: "CO5", Topic: "Cache Memory", Difficulty: model.Easy, Type: model.Video, EstimatedTimeMin: 30},
		{Title: "Virtual Memory Workbook", URL: "https://example.com/co5/vm", CO: "CO5", Topic: "Virtual Memory", Difficulty: model.Medium, Type: model.Worksheet, EstimatedTimeMin: 40},
	}
	for _, r := range defaults {
		db.Create(&r)
	}
	log.Printf("Seeded %d resources", len(defaults))
}

package mysql

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 初始化数据库连接并迁移表结构
// 连接池参数见config.DatabaseConfig，debug模式打印SQL
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().Local() },
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// AutoMigrate 创建/更新馆藏表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CatalogMetaModel{},
		&BookModel{},
		&MemberModel{},
		&LoanModel{},
	)
}

// CatalogMetaModel 只有一行，存在即表示保存过馆藏（区分"从未保存"和"保存了空馆藏"）
type CatalogMetaModel struct {
	ID      uint      `gorm:"primaryKey"`
	SavedAt time.Time `gorm:"not null;comment:最近保存时间"`
}

func (CatalogMetaModel) TableName() string {
	return "catalog_meta"
}

// BookModel 图书表
// ISBN不加唯一索引：馆藏允许重复ISBN，Position保持录入顺序（查找取第一条）
type BookModel struct {
	ID        uint   `gorm:"primaryKey"`
	Position  int    `gorm:"index;not null;comment:录入顺序"`
	Title     string `gorm:"size:200;not null;comment:书名"`
	Author    string `gorm:"size:100;not null;comment:作者"`
	ISBN      string `gorm:"index;size:32;not null;comment:ISBN"`
	Available bool   `gorm:"not null;default:true;comment:是否在架"`
}

func (BookModel) TableName() string {
	return "books"
}

// MemberModel 会员表
type MemberModel struct {
	ID       uint        `gorm:"primaryKey"`
	Position int         `gorm:"index;not null;comment:登记顺序"`
	MemberID string      `gorm:"index;size:64;not null;comment:会员编号"`
	Name     string      `gorm:"size:100;not null;comment:姓名"`
	Loans    []LoanModel `gorm:"foreignKey:MemberRef;constraint:OnDelete:CASCADE"`
}

func (MemberModel) TableName() string {
	return "members"
}

// LoanModel 在借记录（一对多挂在会员行上）
type LoanModel struct {
	ID        uint   `gorm:"primaryKey"`
	MemberRef uint   `gorm:"index;not null;comment:members.id"`
	Seq       int    `gorm:"not null;comment:借出顺序"`
	ISBN      string `gorm:"size:32;not null;comment:ISBN"`
}

func (LoanModel) TableName() string {
	return "loans"
}

package server

import (
	"fmt"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
)

// 单次批量插入的最大成员数
const maxOneRun = 5000

type Dao interface {
	SaveRun(run *server.ClusterRun) error
	QueryRun(runId string) (*server.ClusterRun, error)
	// 永久删除聚类记录及其成员
	RemoveRun(runId string) error
}

type daoImpl struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ Dao = &daoImpl{}

func NewDao(host string, zapLogger *zap.Logger) (Dao, error) {
	databaseURL := fmt.Sprintf("root:%s@tcp(%s)/clusterer?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("MYSQL_ROOT_PASSWORD"), host)
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	// 创建表格等
	err = db.AutoMigrate(&ClusterRunDO{}, &ClusterMemberDO{})
	if err != nil {
		return nil, errors.Wrap(err, "创建表格时出现异常")
	}

	return newDao(db, zapLogger), nil
}

func newDao(db *gorm.DB, zapLogger *zap.Logger) *daoImpl {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &daoImpl{
		db:     db,
		logger: zapLogger.Named("dao"),
	}
}

func (d *daoImpl) SaveRun(run *server.ClusterRun) error {
	if run.RunId == "" {
		return fmt.Errorf("RunId不能为空")
	}

	runDO, members := runToDO(run)
	d.logger.Debug("正在插入聚类记录", zap.String("runId", run.RunId), zap.Int("members", len(members)))

	// 聚类记录与成员在同一事务中插入，任一批次失败时整体回滚
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(runDO).Error; err != nil {
			return errors.Wrap(err, fmt.Sprintf("保存聚类记录%s出错", run.RunId))
		}

		for i := 0; i < len(members); i += maxOneRun {
			end := min(i+maxOneRun, len(members))
			if err := tx.Create(members[i:end]).Error; err != nil {
				return errors.Wrap(err, fmt.Sprintf("保存聚类记录%s的成员出错", run.RunId))
			}
		}

		return nil
	})
}

func (d *daoImpl) QueryRun(runId string) (*server.ClusterRun, error) {
	runDO := &ClusterRunDO{}
	err := d.db.Where(&ClusterRunDO{RunId: runId}).First(runDO).Error
	if err == gorm.ErrRecordNotFound {
		return nil, server.ErrRunNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询聚类记录%s出错", runId))
	}

	members := make([]*ClusterMemberDO, 0)
	err = d.db.Where(&ClusterMemberDO{RunId: runId}).Order("label asc").Order("id asc").Find(&members).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询聚类记录%s的成员出错", runId))
	}

	return doToRun(runDO, members)
}

func (d *daoImpl) RemoveRun(runId string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("run_id = ?", runId).Delete(&ClusterMemberDO{}).Error
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("删除聚类记录%s的成员出错", runId))
		}

		result := tx.Unscoped().Where("run_id = ?", runId).Delete(&ClusterRunDO{})
		if result.Error != nil {
			return errors.Wrap(result.Error, fmt.Sprintf("删除聚类记录%s出错", runId))
		}
		if result.RowsAffected == 0 {
			return server.ErrRunNotFound
		}
		return nil
	})
}

package server

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
	"testing"
	"time"
)

// 不连接数据库的连接池，配合DryRun只生成SQL
type noopConnPool struct{}

func (noopConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (noopConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (noopConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (noopConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// 记录提交与回滚的空事务
type noopTx struct {
	noopConnPool
	committed  bool
	rolledBack bool
}

func (t *noopTx) Commit() error {
	t.committed = true
	return nil
}

func (t *noopTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type noopTxConnPool struct {
	noopConnPool
	tx *noopTx
}

func (p noopTxConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return p.tx, nil
}

type statement struct {
	sql  string
	vars []interface{}
}

func dryRunDao(t *testing.T) (*daoImpl, *[]statement, *noopTx) {
	tx := &noopTx{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      noopTxConnPool{tx: tx},
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	statements := make([]statement, 0)
	capture := func(tx *gorm.DB) {
		statements = append(statements, statement{
			sql:  tx.Statement.SQL.String(),
			vars: tx.Statement.Vars,
		})
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture", capture))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture", capture))

	return newDao(db, nil), &statements, tx
}

func testRun() *server.ClusterRun {
	return &server.ClusterRun{
		RunId:     "3f1c2d4e-0000-4000-8000-000000000001",
		Algorithm: "greedy",
		Measure:   "squared-euclidean",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Clusters: [][]server.NamedPoint{
			{{Name: "a", Features: []float32{0, 0}}, {Name: "b", Features: []float32{0, 1}}},
			{{Name: "c", Features: []float32{10, 10.5}}},
		},
	}
}

func TestDao_SaveRun(t *testing.T) {
	dao, statements, tx := dryRunDao(t)
	require.NoError(t, dao.SaveRun(testRun()))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	require.Equal(t, 2, len(*statements))
	runInsert := (*statements)[0]
	assert.True(t, strings.HasPrefix(runInsert.sql, "INSERT INTO `cluster_run_dos`"), runInsert.sql)
	assert.Contains(t, runInsert.vars, "3f1c2d4e-0000-4000-8000-000000000001")

	memberInsert := (*statements)[1]
	assert.True(t, strings.HasPrefix(memberInsert.sql, "INSERT INTO `cluster_member_dos`"), memberInsert.sql)
	assert.Contains(t, memberInsert.vars, "10,10.5")
	assert.Equal(t, 3, strings.Count(memberInsert.sql, "),(")+1)

	assert.Error(t, dao.SaveRun(&server.ClusterRun{}))
}

func TestDao_SaveRunBatches(t *testing.T) {
	dao, statements, _ := dryRunDao(t)
	run := &server.ClusterRun{RunId: "batch", Clusters: [][]server.NamedPoint{make([]server.NamedPoint, maxOneRun+1)}}
	require.NoError(t, dao.SaveRun(run))
	// 一条聚类记录，两批成员
	assert.Equal(t, 3, len(*statements))
}

func TestDao_SaveRunRollback(t *testing.T) {
	dao, statements, tx := dryRunDao(t)
	// 插入成员时出错
	require.NoError(t, dao.db.Callback().Create().After("gorm:create").Register("test:fail_members",
		func(db *gorm.DB) {
			if db.Statement.Table == "cluster_member_dos" {
				_ = db.AddError(fmt.Errorf("连接断开"))
			}
		}))

	err := dao.SaveRun(testRun())
	assert.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Equal(t, 2, len(*statements))
}

func TestDao_QueryRun(t *testing.T) {
	dao, statements, _ := dryRunDao(t)
	_, err := dao.QueryRun("some-run")
	require.NoError(t, err)

	require.Equal(t, 2, len(*statements))
	assert.Contains(t, (*statements)[0].sql, "FROM `cluster_run_dos`")
	assert.Contains(t, (*statements)[0].sql, "`run_id` = ?")
	assert.Contains(t, (*statements)[0].vars, "some-run")
	assert.Contains(t, (*statements)[1].sql, "FROM `cluster_member_dos`")
	assert.Contains(t, (*statements)[1].sql, "ORDER BY label asc,id asc")
}

func TestDao_RemoveRun(t *testing.T) {
	dao, statements, tx := dryRunDao(t)
	// DryRun不会删除任何行
	assert.Equal(t, server.ErrRunNotFound, dao.RemoveRun("some-run"))
	assert.True(t, tx.rolledBack)

	require.Equal(t, 2, len(*statements))
	assert.True(t, strings.HasPrefix((*statements)[0].sql, "DELETE FROM `cluster_member_dos` WHERE run_id = ?"))
	assert.True(t, strings.HasPrefix((*statements)[1].sql, "DELETE FROM `cluster_run_dos` WHERE run_id = ?"))
}

func TestRunDOConversion(t *testing.T) {
	run := testRun()
	runDO, members := runToDO(run)
	assert.Equal(t, 2, runDO.NumClusters)
	assert.Equal(t, run.CreatedAt, runDO.CreatedAt)
	require.Equal(t, 3, len(members))
	assert.Equal(t, "0,1", members[1].Features)
	assert.Equal(t, 1, members[2].Label)

	back, err := doToRun(runDO, members)
	require.NoError(t, err)
	assert.Equal(t, run, back)

	members[0].Label = 5
	_, err = doToRun(runDO, members)
	assert.Error(t, err)

	members[0].Label = 0
	members[0].Features = "1,x"
	_, err = doToRun(runDO, members)
	assert.Error(t, err)
}

func TestDecodeFeatures(t *testing.T) {
	features, err := decodeFeatures(encodeFeatures([]float32{0.1, -3, 1e-7}))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, -3, 1e-7}, features)

	features, err = decodeFeatures("")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(features))
}

package server

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestServerConfig_Complete(t *testing.T) {
	t.Setenv("MYSQL_SERVICE_HOST", "")

	config := ServerConfig{Port: DefaultPort}
	assert.NoError(t, config.Complete())
	assert.Equal(t, "automatic", config.DefaultAlgorithm)
	assert.Equal(t, DefaultMaxPoints, config.MaxPoints)
	assert.Equal(t, "", config.MysqlHost)

	configCopy := ServerConfig{Port: 80}
	assert.Error(t, configCopy.Complete())

	configCopy = ServerConfig{Port: DefaultPort, DefaultAlgorithm: "dbscan"}
	assert.Error(t, configCopy.Complete())

	configCopy = ServerConfig{Port: DefaultPort, MaxPoints: -1}
	assert.Error(t, configCopy.Complete())

	configCopy = ServerConfig{Port: DefaultPort, DefaultAlgorithm: "spectral", MaxPoints: 10}
	assert.NoError(t, configCopy.Complete())
	assert.Equal(t, 10, configCopy.MaxPoints)
}

func TestServerConfig_MysqlFromEnv(t *testing.T) {
	t.Setenv("MYSQL_SERVICE_HOST", "10.0.0.1")
	t.Setenv("MYSQL_SERVICE_PORT", "3306")

	config := ServerConfig{Port: DefaultPort}
	assert.NoError(t, config.Complete())
	assert.Equal(t, "10.0.0.1:3306", config.MysqlHost)

	config = ServerConfig{Port: DefaultPort, MysqlHost: "db:3306"}
	assert.NoError(t, config.Complete())
	assert.Equal(t, "db:3306", config.MysqlHost)
}

func TestNewServer_WithoutMysql(t *testing.T) {
	t.Setenv("MYSQL_SERVICE_HOST", "")

	_, err := NewServer(&ServerConfig{Port: DefaultPort}, nil)
	assert.NoError(t, err)

	_, err = NewServer(&ServerConfig{Port: 0}, nil)
	assert.Error(t, err)
}

package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:           "db.internal",
		Port:           3306,
		User:           "analyst",
		Password:       "s3cret",
		Database:       "frauddetection",
		ConnectTimeout: 5 * time.Second,
	}
	dsn := cfg.DSN()

	assert.Contains(t, dsn, "analyst:s3cret@tcp(db.internal:3306)/frauddetection")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
}

func TestMaskDSN(t *testing.T) {
	masked := maskDSN("analyst:s3cret@tcp(db.internal:3306)/frauddetection?parseTime=true")
	assert.Equal(t, "analyst:*****@tcp(db.internal:3306)/frauddetection?parseTime=true", masked)
	assert.NotContains(t, masked, "s3cret")

	// no credentials, nothing to hide
	assert.Equal(t, "tcp(db.internal:3306)/frauddetection", maskDSN("tcp(db.internal:3306)/frauddetection"))
}

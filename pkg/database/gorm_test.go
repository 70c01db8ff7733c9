package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithConnectTimeout(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		timeout time.Duration
		want    string
	}{
		{"url without query", "postgres://u:p@db:5432/matrix", 5 * time.Second, "postgres://u:p@db:5432/matrix?connect_timeout=5"},
		{"url with query", "postgresql://db/matrix?sslmode=disable", 3 * time.Second, "postgresql://db/matrix?sslmode=disable&connect_timeout=3"},
		{"key value", "host=db user=u dbname=matrix ", 2 * time.Second, "host=db user=u dbname=matrix connect_timeout=2"},
		{"already set", "host=db connect_timeout=10", 2 * time.Second, "host=db connect_timeout=10"},
		{"sub second rounds up", "host=db", 200 * time.Millisecond, "host=db connect_timeout=1"},
		{"no timeout", "host=db", 0, "host=db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithConnectTimeout(tt.dsn, tt.timeout))
		})
	}
}

func TestOpenWithTimeout_UnreachableHostFailsFast(t *testing.T) {
	start := time.Now()
	db, err := OpenWithTimeout(context.Background(), "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable", 2*time.Second)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

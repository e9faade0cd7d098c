package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCell(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{[]byte("readmitted"), "readmitted"},
		{"F", "F"},
		{int64(42), "42"},
		{3.25, "3.25"},
		{true, "true"},
		{stamp, "2024-03-01T12:00:00Z"},
		{int32(7), "7"},
		{struct{}{}, "{}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCell(tt.in))
	}
}

func TestOpen_BadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Open(ctx, "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}

func TestFrameSource_Load(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, url)
	require.NoError(t, err)
	defer db.Close()

	frame, err := NewFrameSource(db,
		`SELECT * FROM (VALUES ('yes', 10.5), ('no', NULL)) AS t(readmitted, length_of_stay)`,
	).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"readmitted", "length_of_stay"}, frame.Columns())
	col, err := frame.Column("length_of_stay")
	require.NoError(t, err)
	assert.Equal(t, "", col[1])
}

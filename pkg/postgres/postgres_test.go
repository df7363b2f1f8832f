package postgres_test

import (
	"testing"

	"github.com/Astemirdum/book-tracker/pkg/postgres"
	"github.com/stretchr/testify/require"
)

func TestDB_ConnString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  postgres.DB
		want string
	}{
		{
			name: "fields",
			cfg: postgres.DB{
				Host:     "db",
				Port:     "5433",
				Username: "books",
				Password: "p@ss",
				NameDB:   "library",
				SSLMode:  "disable",
			},
			want: "postgres://books:p%40ss@db:5433/library?sslmode=disable",
		},
		{
			name: "dsn wins",
			cfg: postgres.DB{
				DSN:  "postgres://u:p@h:1/d",
				Host: "ignored",
			},
			want: "postgres://u:p@h:1/d",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.cfg.ConnString())
		})
	}
}

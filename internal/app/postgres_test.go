package app

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/tradesync/config"
)

func TestInitPostgres_OpenError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected error from InitPostgres when open fails")
	}
}

func TestInitPostgres_PingErrorClosesHandle(t *testing.T) {
	var mock sqlmock.Sqlmock
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		db, m, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		m.ExpectPing().WillReturnError(errors.New("ping failed"))
		m.ExpectClose()
		mock = m
		return db, nil
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected ping error from InitPostgres")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitPostgres_DSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.PostgresConfig
		want string
	}{
		{
			name: "explicit url wins",
			cfg:  config.PostgresConfig{URL: "postgres://a:b@db:5433/x?sslmode=require", Host: "ignored"},
			want: "postgres://a:b@db:5433/x?sslmode=require",
		},
		{
			name: "assembled from fields",
			cfg:  config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"},
			want: "postgres://u:p@h:5432/d?sslmode=disable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotDriver, gotDSN string
			old := sqlOpener
			sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
				gotDriver, gotDSN = driverName, dataSourceName
				db, _, err := sqlmock.New()
				return db, err
			}
			t.Cleanup(func() { sqlOpener = old })

			db, err := InitPostgres(config.Config{Postgres: tc.cfg})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_ = db.Close()
			if gotDriver != "postgres" || gotDSN != tc.want {
				t.Fatalf("opened %s %q, want postgres %q", gotDriver, gotDSN, tc.want)
			}
		})
	}
}

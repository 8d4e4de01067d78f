package repository

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		denied bool
	}{
		{"nil", nil, false},
		{"insufficient_privilege", &pq.Error{Code: "42501", Message: "permission denied for table student_registrations"}, true},
		{"rls_message", &pq.Error{Code: "P0001", Message: `new row violates row-level security policy for table "tutor_registrations"`}, true},
		{"unique_violation", &pq.Error{Code: "23505", Message: "duplicate key value"}, false},
		{"wrapped_rls_text", errors.New("exec: new row violates row-level security policy"), true},
		{"connection", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyWriteError(tt.err)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if got := errors.Is(err, ports.ErrPersistenceDenied); got != tt.denied {
				t.Errorf("expected denied=%v, got %v (%v)", tt.denied, got, err)
			}
		})
	}
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name       string
		filter     domain.RegistrationFilter
		expectArgs []any
		expectSQL  string
	}{
		{
			name:       "default_limit",
			filter:     domain.RegistrationFilter{},
			expectArgs: []any{defaultListLimit},
			expectSQL:  "ORDER BY created_at DESC LIMIT $1",
		},
		{
			name:       "status_filter",
			filter:     domain.RegistrationFilter{Status: domain.StatusNew, Limit: 20},
			expectArgs: []any{domain.StatusNew, 20},
			expectSQL:  "WHERE status = $1 ORDER BY created_at DESC LIMIT $2",
		},
		{
			name:       "limit_clamped",
			filter:     domain.RegistrationFilter{Limit: 10000},
			expectArgs: []any{defaultListLimit},
			expectSQL:  "LIMIT $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := listQuery(studentTable, "id", tt.filter)
			if !strings.HasPrefix(q, "SELECT id FROM student_registrations") {
				t.Errorf("unexpected query %q", q)
			}
			if !strings.HasSuffix(q, tt.expectSQL) {
				t.Errorf("expected query to end with %q, got %q", tt.expectSQL, q)
			}
			if !reflect.DeepEqual(args, tt.expectArgs) {
				t.Errorf("expected args %v, got %v", tt.expectArgs, args)
			}
		})
	}
}

package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if EnvFromContext(ctx) != env {
		t.Error("EnvFromContext() returned another environment")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Second)}
	if up := env.Uptime(); up < time.Second {
		t.Errorf("Uptime() = %v, expected at least 1s", up)
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	tests := []struct {
		name   string
		log    *zap.Logger
		expect bool
	}{
		{"with logger", zaptest.NewLogger(t), true},
		{"without logger", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Log: tt.log}
			for range 2 {
				env.RedirectStdLog()
				if (env.restoreStdLog != nil) != tt.expect {
					t.Errorf("restoreStdLog set = %v, want %v", env.restoreStdLog != nil, tt.expect)
				}
				env.RestoreStdLog()
			}
		})
	}
}

func TestLocalEnv_PrepareFonts(t *testing.T) {
	env := newLocalEnv()
	reg, err := env.PrepareFonts()
	if err != nil {
		t.Fatalf("PrepareFonts() error = %v", err)
	}
	again, err := env.PrepareFonts()
	if err != nil {
		t.Fatalf("PrepareFonts() error = %v", err)
	}
	if reg != again {
		t.Error("registry loaded twice")
	}
}

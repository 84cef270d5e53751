package config

import (
	"log/slog"
	"strings"
	"testing"
)

// setRequired sets the two variables without which Load fails, so each test
// only varies what it is about.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/klinik")
	t.Setenv("QDRANT_VECTOR_SIZE", "384")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.QdrantVectorSize != 384 {
		t.Errorf("QdrantVectorSize = %d", cfg.QdrantVectorSize)
	}
	if cfg.LLMMaxTokens != 1024 {
		t.Errorf("LLMMaxTokens = %d", cfg.LLMMaxTokens)
	}
	if cfg.LLMTemperature != 0.2 {
		t.Errorf("LLMTemperature = %v", cfg.LLMTemperature)
	}
	if cfg.RetrievalLimit != 10 {
		t.Errorf("RetrievalLimit = %d", cfg.RetrievalLimit)
	}
	if cfg.ScoreThreshold != 0.3 {
		t.Errorf("ScoreThreshold = %v", cfg.ScoreThreshold)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("API_PORT", "8088")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RETRIEVAL_LIMIT", "25")
	t.Setenv("SCORE_THRESHOLD", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8088" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RetrievalLimit != 25 || cfg.ScoreThreshold != 0.5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing dsn",
			env:     map[string]string{"QDRANT_VECTOR_SIZE": "384"},
			wantErr: "MYSQL_DSN",
		},
		{
			name:    "missing vector size",
			env:     map[string]string{"MYSQL_DSN": "dsn"},
			wantErr: "QDRANT_VECTOR_SIZE",
		},
		{
			name:    "non-numeric vector size",
			env:     map[string]string{"MYSQL_DSN": "dsn", "QDRANT_VECTOR_SIZE": "large"},
			wantErr: "QDRANT_VECTOR_SIZE",
		},
		{
			name:    "zero vector size",
			env:     map[string]string{"MYSQL_DSN": "dsn", "QDRANT_VECTOR_SIZE": "0"},
			wantErr: "greater than 0",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"MYSQL_DSN": "dsn", "QDRANT_VECTOR_SIZE": "384", "LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "zero retrieval limit",
			env:     map[string]string{"MYSQL_DSN": "dsn", "QDRANT_VECTOR_SIZE": "384", "RETRIEVAL_LIMIT": "0"},
			wantErr: "RETRIEVAL_LIMIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Make sure the required pair is controlled per case.
			t.Setenv("MYSQL_DSN", "")
			t.Setenv("QDRANT_VECTOR_SIZE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

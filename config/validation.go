package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_HOST", "host and database name are required for postgres"})
		}
	case "sqlite":
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		field := "JWT_SECRET"
		if cfg.Environment != CI {
			field = "jwt_secret"
		}
		errs = append(errs, ValidationError{field, "is required"})
	}
	if cfg.Environment == Production && cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		errs = append(errs, ValidationError{"db_password", "secret is required in production"})
	}

	if cfg.CandidateLimit < 1 {
		errs = append(errs, ValidationError{"CANDIDATE_LIMIT", "must be at least 1"})
	}
	if cfg.AnonymousFeedTTL < 0 {
		errs = append(errs, ValidationError{"ANONYMOUS_FEED_TTL", "must not be negative"})
	}
	if cfg.ReactionRateLimit < 1 || cfg.ReactionRateWindow <= 0 {
		errs = append(errs, ValidationError{"REACTION_RATE_LIMIT", "limit and window must be positive"})
	}
	if cfg.PublicRatePerSecond <= 0 || cfg.PublicRateBurst < 1 {
		errs = append(errs, ValidationError{"PUBLIC_RATE_PER_SECOND", "rate and burst must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

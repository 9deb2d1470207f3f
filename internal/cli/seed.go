package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/config"
	"daily-trivia-service/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by `seed`.
type seedFile struct {
	Questions []domain.QuestionInput `yaml:"questions"`
}

// NewSeedCmd imports questions from a YAML file into the bank.
func NewSeedCmd(configPath, envFile *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import questions from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, *envFile)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			store, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.close()

			admin := app.NewAdminService(store.questions, store.refs, store.scores, store.stats)
			n, err := seedQuestions(cmd.Context(), admin, file)
			if err != nil {
				return err
			}
			log.Printf("seeded %d questions from %s", n, file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "config/questions.yaml", "YAML file with questions")
	return cmd
}

// seedQuestions validates every entry before inserting any of them.
func seedQuestions(ctx context.Context, admin *app.AdminService, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, in := range f.Questions {
		if _, err := domain.ValidateQuestion(in); err != nil {
			return 0, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	for i, in := range f.Questions {
		if _, err := admin.Create(ctx, in); err != nil {
			return i, fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}
	return len(f.Questions), nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"wine-cellar/backend/app/db"
	"wine-cellar/backend/app/repo"
	"wine-cellar/backend/app/services"
	"wine-cellar/backend/config"
	"wine-cellar/cmd/useradmin/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the yaml config file")
	envFile := flag.String("env", ".env", "Optional dotenv file loaded before the config")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run opens the configured store, shows the form and always closes the
// store before returning.
func run(configPath, envFile string) (err error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gdb, err := db.Connect(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(gdb); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close db: %w", cerr))
		}
	}()
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	users := services.NewUserService(repo.NewUserRepository(gdb))
	if _, err := tea.NewProgram(ui.NewFormModel(users)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/abdidvp/rackmap/internal/adapters/outbound/config"
	"github.com/abdidvp/rackmap/internal/adapters/outbound/storage"
	"github.com/abdidvp/rackmap/internal/application"
	"github.com/abdidvp/rackmap/internal/domain"
	"github.com/abdidvp/rackmap/internal/logger"
)

// session wires configuration, logging and storage on first use and
// holds them for the rest of the command.
type session struct {
	configDir string
	dbPath    string
	verbose   bool

	once  sync.Once
	cfg   domain.Config
	log   *zap.Logger
	store *storage.Store
	svc   *application.InventoryService
	err   error
}

func (s *session) service(ctx context.Context) (*application.InventoryService, error) {
	s.once.Do(func() { s.err = s.open(ctx) })
	return s.svc, s.err
}

func (s *session) open(ctx context.Context) error {
	cfg, err := config.New().Load(s.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if s.dbPath != "" {
		cfg.Database = s.dbPath
	}

	level := cfg.LogLevel
	if s.verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.log = log
	s.store = store
	s.svc = application.NewInventoryService(store, log).WithConfig(cfg)
	return nil
}

func (s *session) close() error {
	if s.store == nil {
		return nil
	}
	_ = s.log.Sync()
	err := s.store.Close()
	s.store = nil
	return err
}

func parseFloorNumber(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, domain.Reject(domain.RuleFloorNumber, "floor number must be a positive integer, got %q", text)
	}
	return n, nil
}

func parseProductID(text string) (int64, error) {
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id must be a positive integer, got %q", text)
	}
	return id, nil
}

func parsePosition(text string) (string, error) {
	pos, ok := domain.CanonicalPosition(text)
	if !ok {
		return "", domain.Reject(domain.RulePositionFormat, "position %q must look like L1-1 or R3-2", text)
	}
	return pos, nil
}

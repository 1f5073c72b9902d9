package cli

import (
	"context"
	"fmt"

	"orgsh/internal/config"
	"orgsh/internal/store"
)

// RunInitDB creates the database schema.
func RunInitDB(ctx context.Context) error {
	s, err := store.New(config.GetConnectionString())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.InitDB(ctx); err != nil {
		return err
	}
	fmt.Println("Database initialized successfully.")
	return nil
}

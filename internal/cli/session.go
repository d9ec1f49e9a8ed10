package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lazypower/tended/internal/db"
	"github.com/lazypower/tended/internal/model"
	"github.com/lazypower/tended/internal/store"
)

// openDB is a helper that opens the database for CLI commands. The --db
// flag wins over database.path from config.
func openDB() (*db.DB, error) {
	dbPath := dbFlag
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(dbPath, logger)
}

// readStore loads the saved state into a fresh store for a read-only command.
func readStore(fn func(*store.Store) error) error {
	return withStore(false, fn)
}

// writeStore loads the saved state, runs fn and saves the result when fn
// succeeds.
func writeStore(fn func(*store.Store) error) error {
	return withStore(true, fn)
}

func withStore(save bool, fn func(*store.Store) error) error {
	database, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer database.Close()

	snap, err := database.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	st := store.New(store.WithLogger(logger))
	if err := st.Restore(snap); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if err := fn(st); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := database.SaveSnapshot(st.Snapshot()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

var errNoGarden = errors.New("no active garden; create one with `tended garden create <name>` or try `tended demo`")

func activeGarden(st *store.Store) (model.Garden, error) {
	g, ok := st.ActiveGarden()
	if !ok {
		return model.Garden{}, errNoGarden
	}
	return g, nil
}

// resolveGarden finds a garden by id, id prefix or case-insensitive name.
func resolveGarden(st *store.Store, ref string) (model.Garden, error) {
	var matches []model.Garden
	for _, g := range st.Gardens() {
		if g.ID == ref {
			return g, nil
		}
		if strings.EqualFold(g.Name, ref) || (len(ref) >= minPrefix && strings.HasPrefix(g.ID, ref)) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return model.Garden{}, fmt.Errorf("no garden matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Garden{}, fmt.Errorf("%q matches %d gardens; use the id", ref, len(matches))
	}
}

// resolveFriend finds a friend by id in any garden, or by id prefix or
// case-insensitive name in the active garden.
func resolveFriend(st *store.Store, ref string) (model.Friend, error) {
	if f, ok := st.Friend(ref); ok {
		return f, nil
	}
	var matches []model.Friend
	for _, f := range st.Friends() {
		if strings.EqualFold(f.Name, ref) || (len(ref) >= minPrefix && strings.HasPrefix(f.ID, ref)) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return model.Friend{}, fmt.Errorf("no friend matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Friend{}, fmt.Errorf("%q matches %d friends; use the id", ref, len(matches))
	}
}

// resolveInteraction finds a logged contact by full id or unique id prefix.
func resolveInteraction(st *store.Store, ref string) (string, error) {
	var matches []string
	for _, it := range st.Snapshot().Interactions {
		if it.ID == ref {
			return it.ID, nil
		}
		if len(ref) >= minPrefix && strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no interaction %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d interactions; use the id", ref, len(matches))
	}
}

const minPrefix = 4

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

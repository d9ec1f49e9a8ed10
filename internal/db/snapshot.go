package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lazypower/tended/internal/model"
)

const metaActiveGarden = "active_garden_id"

// SaveSnapshot replaces everything stored with snap in a single transaction.
func (db *DB) SaveSnapshot(snap model.Snapshot) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// children first so foreign keys hold throughout
	for _, table := range []string{"appearances", "interactions", "tier_history", "friends", "gardens", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, g := range snap.Gardens {
		if _, err := tx.Exec(`
			INSERT INTO gardens (id, position, name, icon, description, is_demo, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, g.ID, i, g.Name, g.Icon, g.Description, g.IsDemo, toMillis(g.CreatedAt)); err != nil {
			return fmt.Errorf("insert garden %s: %w", g.ID, err)
		}
	}

	for i, f := range snap.Friends {
		if err := insertFriend(tx, i, f); err != nil {
			return err
		}
	}

	for i, it := range snap.Interactions {
		if _, err := tx.Exec(`
			INSERT INTO interactions (id, position, friend_id, type, at, note, initiated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, it.ID, i, it.FriendID, it.Type, toMillis(it.At), it.Note, it.InitiatedBy); err != nil {
			return fmt.Errorf("insert interaction %s: %w", it.ID, err)
		}
	}

	for _, a := range snap.Appearances {
		if _, err := tx.Exec(`
			INSERT INTO appearances (friend_id, species, pot_style, pot_color)
			VALUES (?, ?, ?, ?)
		`, a.FriendID, a.Species, a.PotStyle, a.PotColor); err != nil {
			return fmt.Errorf("insert appearance %s: %w", a.FriendID, err)
		}
	}

	if snap.ActiveGardenID != "" {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", metaActiveGarden, snap.ActiveGardenID); err != nil {
			return fmt.Errorf("insert meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	db.log.Debug("snapshot saved",
		zap.Int("gardens", len(snap.Gardens)),
		zap.Int("friends", len(snap.Friends)),
		zap.Int("interactions", len(snap.Interactions)))
	return nil
}

func insertFriend(tx *sql.Tx, pos int, f model.Friend) error {
	roles, err := jsonColumn(f.Roles, "[]")
	if err != nil {
		return fmt.Errorf("encode roles for %s: %w", f.ID, err)
	}
	dates, err := jsonColumn(f.ImportantDates, "[]")
	if err != nil {
		return fmt.Errorf("encode dates for %s: %w", f.ID, err)
	}
	var location, profile, birthday sql.NullString
	if f.Location != nil {
		if location.String, err = jsonColumn(f.Location, ""); err != nil {
			return fmt.Errorf("encode location for %s: %w", f.ID, err)
		}
		location.Valid = true
	}
	if f.Profile != nil {
		if profile.String, err = jsonColumn(f.Profile, ""); err != nil {
			return fmt.Errorf("encode profile for %s: %w", f.ID, err)
		}
		profile.Valid = true
	}
	if f.Birthday != nil {
		birthday = sql.NullString{String: f.Birthday.String(), Valid: true}
	}

	if _, err := tx.Exec(`
		INSERT INTO friends (id, position, garden_id, name, photo, tier, roles, location, birthday,
		                     important_dates, profile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, pos, f.GardenID, f.Name, f.Photo, int(f.Tier), roles, location, birthday,
		dates, profile, toMillis(f.CreatedAt), toMillis(f.UpdatedAt)); err != nil {
		return fmt.Errorf("insert friend %s: %w", f.ID, err)
	}

	for seq, c := range f.TierHistory {
		if _, err := tx.Exec(`
			INSERT INTO tier_history (friend_id, seq, tier, changed_at, reason)
			VALUES (?, ?, ?, ?, ?)
		`, f.ID, seq, int(c.Tier), toMillis(c.At), c.Reason); err != nil {
			return fmt.Errorf("insert tier history for %s: %w", f.ID, err)
		}
	}
	return nil
}

// LoadSnapshot reads the stored state. An empty database yields an empty
// snapshot.
func (db *DB) LoadSnapshot() (model.Snapshot, error) {
	snap := model.Snapshot{
		Gardens:      []model.Garden{},
		Friends:      []model.Friend{},
		Interactions: []model.Interaction{},
		Appearances:  []model.Appearance{},
	}

	if err := db.loadGardens(&snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := db.loadFriends(&snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := db.loadInteractions(&snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := db.loadAppearances(&snap); err != nil {
		return model.Snapshot{}, err
	}

	err := db.QueryRow("SELECT value FROM meta WHERE key = ?", metaActiveGarden).Scan(&snap.ActiveGardenID)
	if err != nil && err != sql.ErrNoRows {
		return model.Snapshot{}, fmt.Errorf("load active garden: %w", err)
	}
	return snap, nil
}

func (db *DB) loadGardens(snap *model.Snapshot) error {
	rows, err := db.Query(`
		SELECT id, name, icon, description, is_demo, created_at
		FROM gardens ORDER BY position
	`)
	if err != nil {
		return fmt.Errorf("load gardens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g model.Garden
		var created int64
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.Description, &g.IsDemo, &created); err != nil {
			return fmt.Errorf("scan garden: %w", err)
		}
		g.CreatedAt = fromMillis(created)
		snap.Gardens = append(snap.Gardens, g)
	}
	return rows.Err()
}

func (db *DB) loadFriends(snap *model.Snapshot) error {
	history, err := db.loadTierHistory()
	if err != nil {
		return err
	}

	rows, err := db.Query(`
		SELECT id, garden_id, name, photo, tier, roles, location, birthday,
		       important_dates, profile, created_at, updated_at
		FROM friends ORDER BY position
	`)
	if err != nil {
		return fmt.Errorf("load friends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Friend
		var tier int
		var roles, dates string
		var location, birthday, profile sql.NullString
		var created, updated int64
		if err := rows.Scan(&f.ID, &f.GardenID, &f.Name, &f.Photo, &tier, &roles, &location, &birthday,
			&dates, &profile, &created, &updated); err != nil {
			return fmt.Errorf("scan friend: %w", err)
		}
		f.Tier = model.Tier(tier)
		f.CreatedAt = fromMillis(created)
		f.UpdatedAt = fromMillis(updated)
		f.TierHistory = history[f.ID]

		if err := json.Unmarshal([]byte(roles), &f.Roles); err != nil {
			return fmt.Errorf("decode roles for %s: %w", f.ID, err)
		}
		if err := json.Unmarshal([]byte(dates), &f.ImportantDates); err != nil {
			return fmt.Errorf("decode dates for %s: %w", f.ID, err)
		}
		if len(f.Roles) == 0 {
			f.Roles = nil
		}
		if len(f.ImportantDates) == 0 {
			f.ImportantDates = nil
		}
		if location.Valid {
			f.Location = &model.Location{}
			if err := json.Unmarshal([]byte(location.String), f.Location); err != nil {
				return fmt.Errorf("decode location for %s: %w", f.ID, err)
			}
		}
		if profile.Valid {
			f.Profile = &model.Profile{}
			if err := json.Unmarshal([]byte(profile.String), f.Profile); err != nil {
				return fmt.Errorf("decode profile for %s: %w", f.ID, err)
			}
		}
		if birthday.Valid {
			md, err := model.ParseMonthDay(birthday.String)
			if err != nil {
				return fmt.Errorf("decode birthday for %s: %w", f.ID, err)
			}
			f.Birthday = &md
		}
		snap.Friends = append(snap.Friends, f)
	}
	return rows.Err()
}

func (db *DB) loadTierHistory() (map[string][]model.TierChange, error) {
	rows, err := db.Query(`
		SELECT friend_id, tier, changed_at, reason
		FROM tier_history ORDER BY friend_id, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("load tier history: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.TierChange)
	for rows.Next() {
		var friendID string
		var tier int
		var at int64
		var c model.TierChange
		if err := rows.Scan(&friendID, &tier, &at, &c.Reason); err != nil {
			return nil, fmt.Errorf("scan tier history: %w", err)
		}
		c.Tier = model.Tier(tier)
		c.At = fromMillis(at)
		out[friendID] = append(out[friendID], c)
	}
	return out, rows.Err()
}

func (db *DB) loadInteractions(snap *model.Snapshot) error {
	rows, err := db.Query(`
		SELECT id, friend_id, type, at, note, initiated_by
		FROM interactions ORDER BY position
	`)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.Interaction
		var at int64
		if err := rows.Scan(&it.ID, &it.FriendID, &it.Type, &at, &it.Note, &it.InitiatedBy); err != nil {
			return fmt.Errorf("scan interaction: %w", err)
		}
		it.At = fromMillis(at)
		snap.Interactions = append(snap.Interactions, it)
	}
	return rows.Err()
}

func (db *DB) loadAppearances(snap *model.Snapshot) error {
	rows, err := db.Query(`
		SELECT a.friend_id, a.species, a.pot_style, a.pot_color
		FROM appearances a JOIN friends f ON f.id = a.friend_id
		ORDER BY f.position
	`)
	if err != nil {
		return fmt.Errorf("load appearances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Appearance
		if err := rows.Scan(&a.FriendID, &a.Species, &a.PotStyle, &a.PotColor); err != nil {
			return fmt.Errorf("scan appearance: %w", err)
		}
		snap.Appearances = append(snap.Appearances, a)
	}
	return rows.Err()
}

func jsonColumn(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" && empty != "" {
		return empty, nil
	}
	return string(b), nil
}

// Times are stored as unix milliseconds and read back in UTC.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

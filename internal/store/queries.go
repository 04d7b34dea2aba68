package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Gate failures for token redemption. Callers surface these as inline menu
// text rather than generic errors.
var (
	ErrAlreadyCollected = errors.New("item has already been collected")
	ErrNoTokens         = errors.New("no world drop tokens available")
	ErrUnknownBalance   = errors.New("balance is not in the catalog")
)

// CollectionNotice is what the HUD shows after a confirmed collection. The
// first time an item is collected the duration scales with its point
// value, so the valuable stuff hangs around a bit longer.
type CollectionNotice struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Duration int    `json:"duration"`
}

// IsBalanceTracked reports whether the balance is a known catalog item.
func (s *Store) IsBalanceTracked(balance string) (bool, error) {
	return s.existsQuery("SELECT EXISTS (SELECT 1 FROM Items WHERE Balance = ?)", balance)
}

// MayWorldDrop reports whether any world drop of this balance counts.
func (s *Store) MayWorldDrop(balance string) (bool, error) {
	return s.existsQuery(
		"SELECT EXISTS (SELECT 1 FROM Drops WHERE ItemBalance = ? and EnemyClass IS NULL)",
		balance,
	)
}

// IsValidDrop reports whether a drop of balance from the given enemy class
// counts. A rule with a qualifier only matches when the request carried
// the same extra item pool.
func (s *Store) IsValidDrop(balance, enemyClass string, extraItemPool *string) (bool, error) {
	var pool sql.NullString
	if extraItemPool != nil {
		pool = sql.NullString{String: *extraItemPool, Valid: true}
	}
	return s.existsQuery(
		`SELECT EXISTS (
			SELECT 1 FROM Drops
			WHERE ItemBalance = ?
			  and EnemyClass = ?
			  and (ExtraItemPool IS NULL or ExtraItemPool = ?)
		)`,
		balance, enemyClass, pool,
	)
}

// ExpandBalance maps an expandable root balance to the specific variant
// named by the item's parts. Non-expandable balances come back unchanged.
func (s *Store) ExpandBalance(root string, parts []string) (string, error) {
	expanded := root
	err := s.Read(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			"SELECT ExpandedBalance FROM ExpandableBalances WHERE RootBalance = ? and Part = ?",
		)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, part := range parts {
			var name string
			switch err := stmt.QueryRow(root, part).Scan(&name); err {
			case nil:
				expanded = name
				return nil
			case sql.ErrNoRows:
				continue
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to expand balance: %w", err)
	}
	return expanded, nil
}

// RecordCollection appends one Collected row for the item with this
// balance and returns the HUD notice, all in a single transaction.
func (s *Store) RecordCollection(balance string) (CollectionNotice, error) {
	var notice CollectionNotice
	err := s.Write(func(tx *sql.Tx) error {
		if err := insertCollected(tx, balance); err != nil {
			return err
		}
		var err error
		notice, err = collectionNotice(tx, balance)
		return err
	})
	return notice, err
}

func insertCollected(tx *sql.Tx, balance string) error {
	res, err := tx.Exec(
		"INSERT INTO Collected (ItemID) SELECT ID FROM Items WHERE Balance = ?",
		balance,
	)
	if err != nil {
		return fmt.Errorf("failed to record collection: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrUnknownBalance
	}
	return nil
}

func collectionNotice(tx *sql.Tx, balance string) (CollectionNotice, error) {
	var notice CollectionNotice
	err := tx.QueryRow(
		`SELECT
			IIF(NumCollected > 1, 'Duplicate ' || Name, Name),
			IIF(NumCollected > 1,
				'Collected ' || NumCollected || ' times',
				'+' || Points || ' point' || IIF(Points > 1, 's', '')
			),
			IIF(NumCollected > 1, 4, MAX(4, MIN(8, Points)))
		FROM CollectedItems WHERE Balance = ?`,
		balance,
	).Scan(&notice.Title, &notice.Message, &notice.Duration)
	if err != nil {
		return notice, fmt.Errorf("failed to build collection notice: %w", err)
	}
	return notice, nil
}

// AlreadyCollected reports whether any Collected row exists for the item.
func (s *Store) AlreadyCollected(balance string) (bool, error) {
	return s.existsQuery(
		`SELECT EXISTS (
			SELECT 1 FROM Collected as c
			LEFT JOIN Items as i ON c.ItemID = i.ID
			WHERE i.Balance = ?
		)`,
		balance,
	)
}

// AvailableTokens evaluates the token balance: 1 baseline, plus mission
// grants, minus redeems.
func (s *Store) AvailableTokens() (int, error) {
	var tokens int
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow("SELECT Tokens FROM AvailableTokens").Scan(&tokens)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count available tokens: %w", err)
	}
	return tokens, nil
}

// RecordMission appends a completion row for the mission class and returns
// how many tokens it granted. Missions without a token rule still get
// recorded, they just grant zero.
func (s *Store) RecordMission(missionClass string) (int, error) {
	granted := 0
	err := s.Write(func(tx *sql.Tx) error {
		var prior int
		err := tx.QueryRow(
			"SELECT COUNT(*) FROM CompletedMissions WHERE MissionClass = ?",
			missionClass,
		).Scan(&prior)
		if err != nil {
			return err
		}

		var initial, subsequent sql.NullInt64
		err = tx.QueryRow(
			"SELECT InitialTokens, SubsequentTokens FROM MissionTokens WHERE MissionClass = ?",
			missionClass,
		).Scan(&initial, &subsequent)
		switch {
		case err == sql.ErrNoRows:
			// fine, no token rule
		case err != nil:
			return err
		case prior == 0:
			granted = int(initial.Int64)
		default:
			granted = int(subsequent.Int64)
		}

		_, err = tx.Exec(
			"INSERT INTO CompletedMissions (MissionClass) VALUES (?)",
			missionClass,
		)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record mission completion: %w", err)
	}
	return granted, nil
}

// RedeemWithToken spends a token on the item with this balance. The gates
// (not already collected, tokens available) are re-checked inside the same
// transaction as the inserts, so token accounting and the item's collected
// status can never diverge.
func (s *Store) RedeemWithToken(balance string) (CollectionNotice, error) {
	var notice CollectionNotice
	err := s.Write(func(tx *sql.Tx) error {
		var alreadyCollected bool
		var tokens int
		err := tx.QueryRow(
			`SELECT
				EXISTS (
					SELECT 1 FROM Collected as c
					LEFT JOIN Items as i ON c.ItemID = i.ID
					WHERE i.Balance = ?
				),
				(SELECT Tokens FROM AvailableTokens)`,
			balance,
		).Scan(&alreadyCollected, &tokens)
		if err != nil {
			return err
		}
		if alreadyCollected {
			return ErrAlreadyCollected
		}
		if tokens <= 0 {
			return ErrNoTokens
		}

		res, err := tx.Exec(
			"INSERT INTO Collected (ItemID) SELECT ID FROM Items WHERE Balance = ?",
			balance,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrUnknownBalance
		}

		collectedID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO TokenRedeems (CollectedID) VALUES (?)", collectedID,
		); err != nil {
			return err
		}

		notice, err = collectionNotice(tx, balance)
		return err
	})
	return notice, err
}

// RecordSaveQuit appends one save-quit event.
func (s *Store) RecordSaveQuit(mapName, station string) error {
	err := s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO SaveQuits (Map, Station) VALUES (?, ?)",
			mapName, station,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record save quit: %w", err)
	}
	return nil
}

// MetaValue reads one key from the MetaData table.
func (s *Store) MetaValue(key string) (string, error) {
	var value string
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow("SELECT Value FROM MetaData WHERE Key = ?", key).Scan(&value)
	})
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %q: %w", key, err)
	}
	return value, nil
}

// Scalar evaluates a query returning a single value and renders it as
// text. The stats catalog is built entirely on this.
func (s *Store) Scalar(query string) (string, error) {
	var value sql.NullString
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(query).Scan(&value)
	})
	if err != nil {
		return "", err
	}
	return value.String, nil
}

func (s *Store) existsQuery(query string, args ...any) (bool, error) {
	var exists bool
	err := s.Read(func(tx *sql.Tx) error {
		return tx.QueryRow(query, args...).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to run existence query: %w", err)
	}
	return exists, nil
}
